package escape

import "github.com/willbeason/escape-time/pkg/numeric"

// A Map is an iterated function applied in place to a batch of values.
//
// Apply must be elementwise-independent: the new value of xs[i] may depend
// only on the old xs[i]. The evaluator relies on this to apply the map to
// arbitrary sub-slices of the still-active values, possibly from several
// goroutines at once on disjoint sub-slices. This is not checked; a map that
// mixes elements yields meaningless counts.
type Map[T numeric.Number] interface {
	Apply(xs []T)
}

// Func adapts a function of a single value to a Map.
type Func[T numeric.Number] func(T) T

// Apply replaces every element of xs with f of that element.
func (f Func[T]) Apply(xs []T) {
	for i, x := range xs {
		xs[i] = f(x)
	}
}

var _ Map[complex128] = Func[complex128](nil)
