package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/on-the-ground/continuation_go/continuation"
	"github.com/on-the-ground/continuation_go/effects/configkeys"
	"github.com/on-the-ground/continuation_go/effects/log"
	"github.com/spf13/cobra"
)

func (a *app) newZetaCmd() *cobra.Command {
	var (
		re, im  float64
		prec    int
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "zeta",
		Short: "Evaluate the Riemann zeta function ζ(s) at s = re + im·i",
		Long: `Evaluate ζ(s) by analytic continuation. Every complex s except the pole
s = 1 is accepted.`,
		Example: `  continuo zeta --re -1
  continuo zeta --re 0.5 --im 14.134725141734693790 --prec 30`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, end := bindFlags(cmd, map[string]flagBinding{
				"prec": {configkeys.ConfigContinuationPrecision, func() any { return prec }},
			})
			defer end()

			opts, err := continuation.OptionsFromBinding(ctx)
			if err != nil {
				return err
			}

			s := complex(re, im)
			z, err := await(ctx, timeout, func(context.Context) (continuation.ComplexResult, error) {
				return a.evaluator.Zeta(s, opts...)
			})
			if err != nil {
				return report(cmd, err)
			}

			log.LogEff(ctx, log.LogDebug, "zeta evaluated", map[string]interface{}{
				"s":         strconv.FormatComplex(s, 'g', -1, 128),
				"precision": z.Precision(),
			})
			fmt.Fprintf(cmd.OutOrStdout(), "ζ(%s)  =  %s\n", formatS(s), z)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&re, "re", 2, "real part of s")
	flags.Float64Var(&im, "im", 0, "imaginary part of s")
	flags.IntVar(&prec, "prec", continuation.DefaultPrecision, "decimal digits per part")
	flags.DurationVar(&timeout, "timeout", 0, "abandon the evaluation after this long, 0 waits forever")
	return cmd
}

func formatS(s complex128) string {
	if imag(s) == 0 {
		return strconv.FormatFloat(real(s), 'g', -1, 64)
	}
	return strconv.FormatComplex(s, 'g', -1, 128)
}
