package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/willbeason/diffeq-go/pkg/models"
	"github.com/willbeason/escape-time/pkg/cli"
	"github.com/willbeason/escape-time/pkg/escape"
	"github.com/willbeason/escape-time/pkg/transforms"
)

var (
	extent cli.ExtentFlags
	eval   cli.EvalFlags

	spring = models.DuffingOscillator{
		Delta:     0.018,
		Alpha:     0.22,
		Beta:      3.3,
		Gamma:     32.657,
		Frequency: 2.03,
	}
	steps int
)

func mainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "poincare",
		Short: "Escape time of the stroboscopic map of a forced Duffing oscillator",
		Long: "Samples initial conditions y + i*y' and counts forcing periods until\n" +
			"the state leaves the disk of radius --threshold in phase space.",
		Args: cobra.ExactArgs(0),
		RunE: runCmd,
	}

	extent.Register(cmd.Flags(), 30.0)
	eval.Register(cmd.Flags(), 100.0, 50)
	cmd.Flags().Float64Var(&spring.Delta, "delta", spring.Delta, "damping")
	cmd.Flags().Float64Var(&spring.Alpha, "alpha", spring.Alpha, "linear stiffness")
	cmd.Flags().Float64Var(&spring.Beta, "beta", spring.Beta, "cubic stiffness")
	cmd.Flags().Float64Var(&spring.Gamma, "gamma", spring.Gamma, "forcing amplitude")
	cmd.Flags().Float64Var(&spring.Frequency, "frequency", spring.Frequency, "forcing angular frequency")
	cmd.Flags().IntVar(&steps, "steps", transforms.DefaultPoincareSteps, "RK4 steps per forcing period")

	return cmd
}

func runCmd(cmd *cobra.Command, _ []string) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	x0, err := extent.Sample()
	if err != nil {
		return err
	}

	f := transforms.Poincare{Oscillator: spring, Steps: steps}
	fmt.Fprintf(cmd.OutOrStdout(), "period %.4f, %d steps\n", f.Period(), steps)

	opts := cli.WithProgress(eval.Options(), cli.NewProgress(cmd.ErrOrStderr(), int(os.Stderr.Fd()), "period"))

	counts, err := escape.TimeContext[complex128](cmd.Context(), x0, f, eval.Threshold, eval.MaxIterations, opts...)
	if err != nil {
		return err
	}

	summary, err := cli.Summarize(counts, eval.MaxIterations)
	if err != nil {
		return err
	}
	summary.Print(cmd.OutOrStdout())

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
