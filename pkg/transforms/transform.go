// Package transforms provides iterated maps of the complex plane for
// escape-time evaluation.
package transforms

import "github.com/willbeason/escape-time/pkg/escape"

// A Transform maps a point to the next point of its trajectory.
type Transform interface {
	Next(z complex128) complex128
}

// Alternating applies its transforms in turn, advancing every point by one
// full cycle per Next.
type Alternating []Transform

func (a Alternating) Next(z complex128) complex128 {
	for _, t := range a {
		z = t.Next(z)
	}
	return z
}

func (a Alternating) Apply(zs []complex128) {
	for i, z := range zs {
		zs[i] = a.Next(z)
	}
}

var (
	_ escape.Map[complex128] = Julia2{}
	_ escape.Map[complex128] = JuliaN{}
	_ escape.Map[complex128] = Linear{}
	_ escape.Map[complex128] = Polynomial{}
	_ escape.Map[complex128] = Alternating{}
)
