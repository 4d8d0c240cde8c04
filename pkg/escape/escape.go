// Package escape computes escape-time fields: for each starting value, how
// many applications of a map it takes for the iterate's magnitude to exceed
// a threshold.
package escape

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/willbeason/escape-time/pkg/numeric"
)

// ErrInvalidIterationBudget is returned when maxIt is not positive.
var ErrInvalidIterationBudget = errors.New("invalid iteration budget")

// Time returns, for every element of x0, the number of applications of f
// after which the element's magnitude first exceeds threshold.
//
// Counts are in [1, maxIt+1]. An element whose magnitude stays at or below
// threshold for all maxIt iterations gets maxIt+1. Divergence is only ever
// tested after f has been applied, so an element of x0 that is already
// beyond threshold still needs one application to be counted.
//
// Once an element diverges it is frozen: f is never applied to it again.
// This keeps escaped trajectories from overflowing into Inf and NaN.
//
// The result has the shape of x0. x0 is not modified.
func Time[T numeric.Number](x0 numeric.Array[T], f Map[T], threshold float64, maxIt int, opts ...Option) (numeric.Array[uint], error) {
	return TimeContext(context.Background(), x0, f, threshold, maxIt, opts...)
}

// TimeContext is Time with cancellation. ctx is checked before every
// iteration; if it is done, TimeContext returns ctx.Err().
func TimeContext[T numeric.Number](ctx context.Context, x0 numeric.Array[T], f Map[T], threshold float64, maxIt int, opts ...Option) (numeric.Array[uint], error) {
	if err := validateBudget(maxIt); err != nil {
		return numeric.Array[uint]{}, err
	}

	cfg := newConfig(opts)

	counts := make([]uint, x0.Len())
	never := uint(maxIt) + 1
	for i := range counts {
		counts[i] = never
	}

	result, err := numeric.New(counts, x0.Shape()...)
	if err != nil {
		return numeric.Array[uint]{}, err
	}

	s := &state[T]{
		values:    append([]T(nil), x0.Data()...),
		indices:   make([]int, x0.Len()),
		counts:    counts,
		f:         f,
		magnitude: numeric.MagnitudeFunc[T](),
		threshold: threshold,
	}
	for i := range s.indices {
		s.indices[i] = i
	}

	for n := 1; n <= maxIt; n++ {
		if err := ctx.Err(); err != nil {
			return numeric.Array[uint]{}, err
		}

		if len(s.values) > 0 {
			s.step(cfg.chunks(len(s.values)), uint(n))
		}

		if cfg.progress != nil {
			cfg.progress.Step(n, maxIt)
		}
	}

	return result, nil
}

// state holds the still-active trajectories of one evaluation, compacted:
// values[i] is the current iterate of the element at counts[indices[i]].
type state[T numeric.Number] struct {
	values  []T
	indices []int
	counts  []uint

	f         Map[T]
	magnitude func(T) float64
	threshold float64
}

// step applies f once to every active value, records elements that diverge
// at step n, and drops them from the active set.
//
// Each chunk is advanced and compacted independently; the survivors are then
// moved together. All chunks finish before step returns.
func (s *state[T]) step(chunks [][2]int, n uint) {
	kept := make([]int, len(chunks))

	if len(chunks) == 1 {
		kept[0] = s.advance(0, len(s.values), n)
	} else {
		wg := sync.WaitGroup{}
		wg.Add(len(chunks))
		for i, c := range chunks {
			go func() {
				defer wg.Done()
				kept[i] = s.advance(c[0], c[1], n)
			}()
		}
		wg.Wait()
	}

	w := kept[0]
	for i := 1; i < len(chunks); i++ {
		lo := chunks[i][0]
		copy(s.values[w:], s.values[lo:lo+kept[i]])
		copy(s.indices[w:], s.indices[lo:lo+kept[i]])
		w += kept[i]
	}

	s.values = s.values[:w]
	s.indices = s.indices[:w]
}

// advance handles values[lo:hi] and returns how many of them are still
// active. Survivors are moved to the front of the range.
func (s *state[T]) advance(lo, hi int, n uint) int {
	values := s.values[lo:hi]
	indices := s.indices[lo:hi]

	s.f.Apply(values)

	k := 0
	for i, v := range values {
		// Strictly greater; NaN never counts as diverged.
		if s.magnitude(v) > s.threshold {
			s.counts[indices[i]] = n
			continue
		}
		values[k] = v
		indices[k] = indices[i]
		k++
	}

	return k
}

func validateBudget(maxIt int) error {
	if maxIt <= 0 {
		return fmt.Errorf("%w: max iterations must be positive, got %d", ErrInvalidIterationBudget, maxIt)
	}
	return nil
}

// Invert maps counts onto maxIt+1-count, so points that never diverged are
// 0 and points that diverged after the first iteration are maxIt. This is
// the usual scale for coloring the outside of a Julia set. Counts above
// maxIt+1 are treated as maxIt+1.
func Invert(counts numeric.Array[uint], maxIt int) (numeric.Array[uint], error) {
	if err := validateBudget(maxIt); err != nil {
		return numeric.Array[uint]{}, err
	}

	inverted := counts.Clone()
	top := uint(maxIt) + 1

	data := inverted.Data()
	for i, c := range data {
		if c > top {
			c = top
		}
		data[i] = top - c
	}

	return inverted, nil
}

// Histogram returns how many elements have each count. Index k holds the
// number of elements with count k, for k in [0, maxIt+1]; larger counts are
// not included.
func Histogram(counts numeric.Array[uint], maxIt int) ([]int, error) {
	if err := validateBudget(maxIt); err != nil {
		return nil, err
	}

	hist := make([]int, maxIt+2)
	for _, c := range counts.Data() {
		if c < uint(len(hist)) {
			hist[c]++
		}
	}
	return hist, nil
}
