package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/willbeason/escape-time/pkg/cli"
	"github.com/willbeason/escape-time/pkg/escape"
	"github.com/willbeason/escape-time/pkg/numeric"
	"github.com/willbeason/escape-time/pkg/transforms"
)

const (
	Threshold     = 2
	MaxIterations = 20
)

var (
	extent cli.ExtentFlags
	eval   cli.EvalFlags

	frames int
)

func mainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "julia",
		Short: "Sweep z^4 - 1.3z + 0.2e^(i*theta) once around theta and summarize each frame",
		Args:  cobra.ExactArgs(0),
		RunE:  runCmd,
	}

	extent.Register(cmd.Flags(), 2.0)
	eval.Register(cmd.Flags(), Threshold, MaxIterations)
	cmd.Flags().IntVarP(&frames, "frames", "f", 100, "number of theta values")

	return cmd
}

func runCmd(cmd *cobra.Command, _ []string) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	if frames < 1 {
		return fmt.Errorf("--frames must be positive, got %d", frames)
	}

	// The grid is the same for every frame.
	x0, err := extent.Sample()
	if err != nil {
		return err
	}

	progress := cli.NewProgress(cmd.ErrOrStderr(), int(os.Stderr.Fd()), "frame")

	thetas := numeric.Linspace(0, transforms.FullTurn, frames)
	for i, theta := range thetas {
		f := transforms.JuliaFamily(theta)

		counts, err := escape.TimeContext[complex128](cmd.Context(), x0, f, eval.Threshold, eval.MaxIterations, eval.Options()...)
		if err != nil {
			return err
		}

		s, err := cli.Summarize(counts, eval.MaxIterations)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%4d theta=%.4f bounded=%.4f\n", i, theta, s.BoundedShare())

		if progress != nil {
			progress.Step(i+1, len(thetas))
		}
	}

	return nil
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
