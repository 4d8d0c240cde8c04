// Package grid samples rectangular regions of the complex plane.
package grid

import (
	"errors"
	"fmt"

	"github.com/willbeason/escape-time/pkg/numeric"
)

var (
	// ErrInvalidDomain is returned for an extent with non-positive width or height.
	ErrInvalidDomain = errors.New("invalid domain")

	// ErrInvalidResolution is returned when fewer than one sample per axis is requested.
	ErrInvalidResolution = errors.New("invalid resolution")
)

// An Extent is an axis-aligned rectangle of the complex plane.
// Real parts span [XMin, XMax] and imaginary parts span [YMin, YMax].
type Extent struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Validate reports ErrInvalidDomain unless XMin < XMax and YMin < YMax.
func (e Extent) Validate() error {
	// Negated comparisons so NaN bounds are rejected too.
	if !(e.XMin < e.XMax) {
		return fmt.Errorf("%w: xmin %v is not less than xmax %v", ErrInvalidDomain, e.XMin, e.XMax)
	}
	if !(e.YMin < e.YMax) {
		return fmt.Errorf("%w: ymin %v is not less than ymax %v", ErrInvalidDomain, e.YMin, e.YMax)
	}
	return nil
}

// Generate returns a resolution x resolution grid over e.
//
// Entry (row, col) is x[col] + i*y[row], where x and y are evenly spaced
// from the minimum to the maximum of their axis inclusive. Rows go up in y
// and columns go up in x.
func Generate(e Extent, resolution int) (numeric.Array[complex128], error) {
	return GenerateXY(e, resolution, resolution)
}

// GenerateXY is Generate with independent resolutions per axis. The result
// has shape (ny, nx).
func GenerateXY(e Extent, nx, ny int) (numeric.Array[complex128], error) {
	if err := e.Validate(); err != nil {
		return numeric.Array[complex128]{}, err
	}
	if nx < 1 || ny < 1 {
		return numeric.Array[complex128]{}, fmt.Errorf("%w: %d x %d samples", ErrInvalidResolution, nx, ny)
	}

	xs := numeric.Linspace(e.XMin, e.XMax, nx)
	ys := numeric.Linspace(e.YMin, e.YMax, ny)

	data := make([]complex128, 0, nx*ny)
	for _, y := range ys {
		for _, x := range xs {
			data = append(data, complex(x, y))
		}
	}

	return numeric.New(data, ny, nx)
}
