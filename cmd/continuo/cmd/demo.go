package cmd

import (
	"strings"

	"github.com/on-the-ground/continuation_go/continuation"
	"github.com/on-the-ground/continuation_go/effects/configkeys"
	"github.com/on-the-ground/continuation_go/internal/showcase"
	"github.com/spf13/cobra"
)

func (a *app) newDemoCmd() *cobra.Command {
	var (
		demo string
		prec int
	)
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Print the analytic continuation demonstrations",
		Long: `Print one demonstration, or all of them:

  zeta       famous values of ζ(s)
  sum        1 + 2 + 3 + ... = ζ(-1) = -1/12
  factorial  x! through Γ(x+1), poles included
  sampling   ζ sampled concurrently over its convergent and continued regions`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, end := bindFlags(cmd, map[string]flagBinding{
				"prec": {configkeys.ConfigContinuationPrecision, func() any { return prec }},
			})
			defer end()
			return showcase.Run(ctx, cmd.OutOrStdout(), demo)
		},
	}

	cmd.Flags().StringVar(&demo, "demo", "all", "one of "+strings.Join(showcase.Demos, ", ")+" or all")
	cmd.Flags().IntVar(&prec, "prec", continuation.DefaultPrecision, "decimal digits")
	return cmd
}

func newCangjieCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cangjie",
		Short: "Print algebraic data types told through Chinese character composition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showcase.Cangjie(cmd.OutOrStdout())
		},
	}
}
