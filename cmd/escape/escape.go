package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/willbeason/escape-time/pkg/cli"
	"github.com/willbeason/escape-time/pkg/escape"
	"github.com/willbeason/escape-time/pkg/transforms"
)

var (
	extent cli.ExtentFlags
	eval   cli.EvalFlags

	cRe, cIm float64
	power    float64

	mapName        string
	alternatePower float64
	mulRe, mulIm   float64
)

const (
	mapJulia       = "julia"
	mapAlternating = "alternating"
	mapLinear      = "linear"
)

func mainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "escape",
		Short: "Escape-time field of an iterated map over a grid",
		Long: "Maps:\n" +
			"  julia        z^power + c\n" +
			"  alternating  z^power + c, then z^alternate-power + c\n" +
			"  linear       (multiply)z + c",
		Args:  cobra.ExactArgs(0),
		RunE:  runCmd,
	}

	extent.Register(cmd.Flags(), 2.0)
	eval.Register(cmd.Flags(), 2.0, 100)
	cmd.Flags().Float64Var(&cRe, "c-re", -0.8, "real part of c")
	cmd.Flags().Float64Var(&cIm, "c-im", 0.156, "imaginary part of c")
	cmd.Flags().Float64VarP(&power, "power", "p", 2.0, "exponent of z")
	cmd.Flags().StringVarP(&mapName, "map", "m", mapJulia, "iterated map: julia, alternating or linear")
	cmd.Flags().Float64Var(&alternatePower, "alternate-power", 6.0, "second exponent of the alternating map")
	cmd.Flags().Float64Var(&mulRe, "multiply-re", 1.1, "real part of the linear map's multiplier")
	cmd.Flags().Float64Var(&mulIm, "multiply-im", 0.2, "imaginary part of the linear map's multiplier")

	return cmd
}

func runCmd(cmd *cobra.Command, _ []string) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	x0, err := extent.Sample()
	if err != nil {
		return err
	}

	f, err := buildMap()
	if err != nil {
		return err
	}

	opts := cli.WithProgress(eval.Options(), cli.NewProgress(cmd.ErrOrStderr(), int(os.Stderr.Fd()), "iteration"))

	counts, err := escape.TimeContext[complex128](cmd.Context(), x0, f, eval.Threshold, eval.MaxIterations, opts...)
	if err != nil {
		return err
	}

	summary, err := cli.Summarize(counts, eval.MaxIterations)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", mapName, describe())
	summary.Print(cmd.OutOrStdout())

	return nil
}

// iterated is a map usable both point by point and in batches.
type iterated interface {
	transforms.Transform
	escape.Map[complex128]
}

func julia(n float64, c complex128) iterated {
	if n == 2.0 {
		return transforms.Julia2{C: c}
	}
	return transforms.JuliaN{N: complex(n, 0), C: c}
}

func buildMap() (escape.Map[complex128], error) {
	c := complex(cRe, cIm)

	switch mapName {
	case mapJulia:
		return julia(power, c), nil
	case mapAlternating:
		return transforms.Alternating{julia(power, c), julia(alternatePower, c)}, nil
	case mapLinear:
		return transforms.Linear{Multiply: complex(mulRe, mulIm), Add: c}, nil
	}

	return nil, fmt.Errorf("unknown map %q, want %s, %s or %s", mapName, mapJulia, mapAlternating, mapLinear)
}

func describe() string {
	c := complex(cRe, cIm)

	switch mapName {
	case mapAlternating:
		return fmt.Sprintf("z^%v + %v, then z^%v + %v", power, c, alternatePower, c)
	case mapLinear:
		return fmt.Sprintf("%vz + %v", complex(mulRe, mulIm), c)
	}
	return fmt.Sprintf("z^%v + %v", power, c)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
