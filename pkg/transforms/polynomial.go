package transforms

import (
	"math"
	"math/cmplx"
)

// Polynomial is the map sum(Coefficients[k] * z^k).
// Coefficients are in increasing order of degree.
type Polynomial struct {
	Coefficients []complex128
}

func (p Polynomial) Next(z complex128) complex128 {
	// Horner's method, from the highest degree down.
	var result complex128
	for k := len(p.Coefficients) - 1; k >= 0; k-- {
		result = result*z + p.Coefficients[k]
	}
	return result
}

func (p Polynomial) Apply(zs []complex128) {
	for i, z := range zs {
		zs[i] = p.Next(z)
	}
}

// Degree is the index of the highest non-zero coefficient, or -1 for the zero
// polynomial.
func (p Polynomial) Degree() int {
	for k := len(p.Coefficients) - 1; k >= 0; k-- {
		if p.Coefficients[k] != 0 {
			return k
		}
	}
	return -1
}

// JuliaFamily returns z^4 - 1.3z + 0.2e^(i*theta). Sweeping theta over
// [0, 2pi) moves the constant term once around a circle, which animates well.
func JuliaFamily(theta float64) Polynomial {
	c := 0.2 * cmplx.Exp(complex(0, theta))
	return Polynomial{Coefficients: []complex128{c, -1.3, 0, 0, 1}}
}

// FullTurn is the parameter range of one revolution of JuliaFamily.
const FullTurn = 2 * math.Pi
