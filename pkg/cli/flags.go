// Package cli holds the flag groups and output helpers shared by the
// executables under cmd/.
package cli

import (
	"github.com/spf13/pflag"
	"github.com/willbeason/escape-time/pkg/escape"
	"github.com/willbeason/escape-time/pkg/grid"
	"github.com/willbeason/escape-time/pkg/numeric"
)

// ExtentFlags is the sampled region of the plane.
type ExtentFlags struct {
	XMin, XMax float64
	YMin, YMax float64
	Resolution int
}

// Register adds the extent flags to fs with the given default half-width.
func (f *ExtentFlags) Register(fs *pflag.FlagSet, halfWidth float64) {
	fs.Float64Var(&f.XMin, "xmin", -halfWidth, "lower bound of the real axis")
	fs.Float64Var(&f.XMax, "xmax", halfWidth, "upper bound of the real axis")
	fs.Float64Var(&f.YMin, "ymin", -halfWidth, "lower bound of the imaginary axis")
	fs.Float64Var(&f.YMax, "ymax", halfWidth, "upper bound of the imaginary axis")
	fs.IntVarP(&f.Resolution, "resolution", "r", 200, "samples per axis")
}

func (f *ExtentFlags) Extent() grid.Extent {
	return grid.Extent{XMin: f.XMin, XMax: f.XMax, YMin: f.YMin, YMax: f.YMax}
}

// Sample returns the grid over the configured extent.
func (f *ExtentFlags) Sample() (numeric.Array[complex128], error) {
	return grid.Generate(f.Extent(), f.Resolution)
}

// EvalFlags configures the escape-time evaluation.
type EvalFlags struct {
	Threshold     float64
	MaxIterations int
	Workers       int
}

// Register adds the evaluation flags to fs.
func (f *EvalFlags) Register(fs *pflag.FlagSet, threshold float64, maxIterations int) {
	fs.Float64VarP(&f.Threshold, "threshold", "t", threshold, "divergence threshold on the magnitude")
	fs.IntVarP(&f.MaxIterations, "max-iterations", "n", maxIterations, "iterations before a point counts as bounded")
	fs.IntVarP(&f.Workers, "workers", "w", 0, "goroutines per iteration; 0 uses every CPU")
}

// Options converts the flags to evaluator options.
func (f *EvalFlags) Options() []escape.Option {
	return []escape.Option{escape.WithWorkers(f.Workers)}
}
