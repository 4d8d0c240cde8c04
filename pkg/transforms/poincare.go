package transforms

import (
	"math"

	"github.com/willbeason/diffeq-go/pkg/equations"
	"github.com/willbeason/diffeq-go/pkg/models"
	"github.com/willbeason/diffeq-go/pkg/solvers/order2"
)

// DefaultPoincareSteps is the number of solver steps per forcing period.
const DefaultPoincareSteps = 50

// Poincare is the stroboscopic map of a forced Duffing oscillator: it
// advances a phase-space point by one forcing period.
//
// Points are encoded as y + i*y', so the magnitude of a point is its
// distance from the origin of phase space.
type Poincare struct {
	Oscillator models.DuffingOscillator

	// Steps is the number of RK4 steps per period. Zero means
	// DefaultPoincareSteps.
	Steps int
}

// Period is the forcing period of the oscillator.
func (p Poincare) Period() float64 {
	return 2 * math.Pi / p.Oscillator.Frequency
}

func (p Poincare) steps() int {
	if p.Steps <= 0 {
		return DefaultPoincareSteps
	}
	return p.Steps
}

func (p Poincare) Next(z complex128) complex128 {
	var solver order2.Solver = order2.RK4
	var eq equations.SecondOrder = p.Oscillator.Acceleration

	// The forcing is periodic, so every period starts at t = 0.
	y, yp := order2.Solve(solver, eq, 0.0, real(z), imag(z), p.Period(), p.steps())
	return complex(y, yp)
}

// Apply advances every point by one period. The solver is stateless, so
// concurrent calls on disjoint slices are safe.
func (p Poincare) Apply(zs []complex128) {
	for i, z := range zs {
		zs[i] = p.Next(z)
	}
}
