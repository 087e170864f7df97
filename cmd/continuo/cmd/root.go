package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/on-the-ground/continuation_go/continuation"
	"github.com/on-the-ground/continuation_go/effects/binding"
	"github.com/on-the-ground/continuation_go/effects/log"
	"github.com/on-the-ground/continuation_go/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app is the state one invocation shares between the root and its subcommands.
type app struct {
	cfgFile  string
	logLevel string

	cfg       *config.Config
	evaluator *continuation.Evaluator
	cleanups  []func()
}

// reportedError has already been printed for the user.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }

func (e reportedError) Unwrap() error { return e.err }

// Run executes continuo with args, writing results to out and failures to errOut.
// A non-nil error means the process should exit with status 1.
func Run(ctx context.Context, args []string, out, errOut io.Writer) error {
	a := &app{}
	defer a.close()

	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.ExecuteContext(ctx)
	var reported reportedError
	if err != nil && !errors.As(err, &reported) {
		fmt.Fprintf(errOut, "Error: %v\n", err)
	}
	return err
}

func (a *app) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "continuo",
		Short: "Analytic continuation of factorial and the Riemann zeta function",
		Long: `continuo evaluates x! through the Gamma function and ζ(s) through its
analytic continuation, at any number of decimal digits.

Configuration is read from --config (TOML or YAML) and CONTINUO_* environment
variables; flags override both for a single run.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (.toml or .yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error (default from config)")

	root.AddCommand(
		a.newFactorialCmd(),
		a.newZetaCmd(),
		a.newDemoCmd(),
		newCangjieCmd(),
		a.newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

// setup loads the configuration and installs the logger, the log effect and
// the configuration bindings around the command being run.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg

	logger, err := cfg.Log.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	restoreGlobals := zap.ReplaceGlobals(logger)
	a.onClose(func() {
		restoreGlobals()
		_ = logger.Sync()
	})

	evaluator, err := continuation.NewEvaluator(cfg.Cache.Evaluator())
	if err != nil {
		return err
	}
	a.evaluator = evaluator
	a.onClose(evaluator.Close)

	ctx, endOfLogHandler := log.WithZapEffectHandler(cmd.Context(), cfg.Log.BufferSize, logger)
	a.onClose(func() { endOfLogHandler() })

	ctx, endOfBindingHandler := binding.WithEffectHandler(ctx, 1, 1, cfg.Bindings())
	a.onClose(func() { endOfBindingHandler() })

	log.LogEff(ctx, log.LogDebug, "configuration loaded", map[string]interface{}{
		"file":      a.cfgFile,
		"precision": cfg.Precision,
		"threshold": cfg.Threshold,
	})
	cmd.SetContext(ctx)
	return nil
}

func (a *app) onClose(fn func()) {
	a.cleanups = append(a.cleanups, fn)
}

// close runs the cleanups in reverse order of registration.
func (a *app) close() {
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		a.cleanups[i]()
	}
	a.cleanups = nil
}
