package cmd

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/on-the-ground/continuation_go/continuation"
	"github.com/on-the-ground/continuation_go/effects/binding"
	"github.com/on-the-ground/continuation_go/effects/configkeys"
	"github.com/on-the-ground/continuation_go/effects/log"
	"github.com/on-the-ground/continuation_go/effects/task"
	"github.com/spf13/cobra"
)

type factorialFlags struct {
	x         float64
	prec      int
	threshold int64
	tol       float64
	bench     bool
	precList  []int
	timeout   time.Duration
}

func (a *app) newFactorialCmd() *cobra.Command {
	var f factorialFlags
	cmd := &cobra.Command{
		Use:   "factorial",
		Short: "Evaluate x! for real x through Γ(x+1)",
		Long: `Evaluate x! for real x.

Non-negative integers give the exact integer, unless --threshold is set and
x is at or above it. Exact results are limited to about four million digits
(x near 800000); set --threshold to evaluate larger integers through Γ.
Negative integers are poles of Γ(x+1) and fail. Every other x is Γ(x+1) at
--prec decimal digits (at least 20).

With --bench, Γ(x+1) is timed once per precision in --prec-list instead.`,
		Example: `  continuo factorial --x -0.5
  continuo factorial --x -3.7 --prec 80
  continuo factorial --x 150
  continuo factorial --x 1e9 --threshold 1000
  continuo factorial --bench --x -0.5 --prec-list 30,60,120,240`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch {
			case f.threshold < 0 || f.tol < 0:
				return fmt.Errorf("--threshold and --tol must not be negative")
			case math.IsNaN(f.tol) || math.IsInf(f.tol, 0):
				return fmt.Errorf("--tol must be a finite number, got %v", f.tol)
			}
			ctx, end := bindFlags(cmd, map[string]flagBinding{
				"prec":      {configkeys.ConfigContinuationPrecision, func() any { return f.prec }},
				"threshold": {configkeys.ConfigContinuationThreshold, func() any { return f.threshold }},
				"tol":       {configkeys.ConfigContinuationTolerance, func() any { return f.tol }},
				"prec-list": {configkeys.ConfigBenchPrecisions, func() any { return f.precList }},
			})
			defer end()

			if f.bench {
				return runBenchmark(ctx, cmd, f.x)
			}
			return a.runFactorial(ctx, cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&f.x, "x", -0.5, "input x for x!")
	flags.IntVar(&f.prec, "prec", continuation.DefaultPrecision, "decimal digits for Γ evaluation")
	flags.Int64Var(&f.threshold, "threshold", continuation.ThresholdUnset, "integers at or above it use Γ instead of exact multiplication, 0 is unset")
	flags.Float64Var(&f.tol, "tol", 0, "distance within which x counts as an integer")
	flags.BoolVar(&f.bench, "bench", false, "time Γ(x+1) over --prec-list")
	flags.IntSliceVar(&f.precList, "prec-list", []int{30, 60, 120, 240}, "precisions for --bench")
	flags.DurationVar(&f.timeout, "timeout", 0, "abandon the evaluation after this long, 0 waits forever")
	return cmd
}

func (a *app) runFactorial(ctx context.Context, cmd *cobra.Command, f factorialFlags) error {
	opts, err := continuation.OptionsFromBinding(ctx)
	if err != nil {
		return err
	}

	start := time.Now()
	r, err := await(ctx, f.timeout, func(context.Context) (continuation.Result, error) {
		return a.evaluator.Factorial(f.x, opts...)
	})
	if err != nil {
		return report(cmd, err)
	}

	log.LogEff(ctx, log.LogDebug, "factorial evaluated", map[string]interface{}{
		"x":         f.x,
		"kind":      r.Kind().String(),
		"precision": r.Precision(),
		"elapsed":   time.Since(start).String(),
	})
	fmt.Fprintf(cmd.OutOrStdout(), "%s!  =  %s\n", strconv.FormatFloat(f.x, 'g', -1, 64), r)
	return nil
}

func runBenchmark(ctx context.Context, cmd *cobra.Command, x float64) error {
	precisions, err := binding.GetTyped[[]int](ctx, configkeys.ConfigBenchPrecisions)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "[Benchmark] Evaluating Gamma(x+1) at x=%s for precisions: %v\n",
		strconv.FormatFloat(x, 'g', -1, 64), precisions)

	timings, err := continuation.Benchmark(x, precisions)
	for _, tm := range timings {
		fmt.Fprintf(out, "  p=%4d digits  ->  %.6f s\n", tm.Precision, tm.Span.Duration().Seconds())
	}
	if err != nil {
		return report(cmd, err)
	}
	return nil
}

// await runs fn through the task effect so that timeout can abandon it.
func await[R any](ctx context.Context, timeout time.Duration, fn task.Payload[R]) (R, error) {
	ctx, endOfTaskHandler := task.WithEffectHandler[R](ctx, 1)
	defer endOfTaskHandler()

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return task.Await(ctx, fn)
}

// report prints err the way the command line presents failures.
func report(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.OutOrStdout(), "Error: %v\n", err)
	return reportedError{err: err}
}

type flagBinding struct {
	key   string
	value func() any
}

// bindFlags opens a binding scope holding the flags the user set, so they
// shadow the configuration for this command only.
func bindFlags(cmd *cobra.Command, bindings map[string]flagBinding) (context.Context, func() context.Context) {
	overrides := make(map[string]any)
	for name, b := range bindings {
		if cmd.Flags().Changed(name) {
			overrides[b.key] = b.value()
		}
	}
	return binding.WithEffectHandler(cmd.Context(), 1, 1, overrides)
}
