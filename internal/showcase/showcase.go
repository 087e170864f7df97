// Package showcase prints the textual demonstrations of analytic
// continuation: zeta values, the 1+2+3+… identity, the factorial through
// Γ, a concurrent sampling of ζ, and the character-composition analogy for
// algebraic data types.
//
// Evaluation options come from the binding effect in ctx, so a caller
// scopes precision and threshold by installing a binding handler.
package showcase

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/on-the-ground/continuation_go/continuation"
	"github.com/on-the-ground/continuation_go/effects/log"
)

// Demos lists the names Run accepts, in the order "all" runs them.
var Demos = []string{"zeta", "sum", "factorial", "sampling"}

var (
	colorTitle   = lipgloss.Color("#8B5CF6")
	colorSection = lipgloss.Color("#06B6D4")
	colorMuted   = lipgloss.Color("#94A3B8")

	titleStyle   = lipgloss.NewStyle().Foreground(colorTitle).Bold(true)
	sectionStyle = lipgloss.NewStyle().Foreground(colorSection).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
)

// Run prints the banner, the demo named by demo (or every demo for "all"),
// and the closing line.
func Run(ctx context.Context, w io.Writer, demo string) error {
	selected, err := selectDemos(demo)
	if err != nil {
		return err
	}

	p := newPrinter(w)
	rule := strings.Repeat("=", 70)
	p.println(rule)
	p.println(titleStyle.Render("Data 解析延拓 (Analytic Continuation of Data)"))
	p.println(rule)
	if p.err != nil {
		return p.err
	}

	for _, name := range selected {
		logIfInstalled(ctx, log.LogDebug, "running demo", map[string]interface{}{"demo": name})
		var err error
		switch name {
		case "zeta":
			err = ZetaValues(ctx, w, nil)
		case "sum":
			err = SumIdentity(ctx, w)
		case "factorial":
			err = FactorialContinuation(ctx, w)
		case "sampling":
			err = Sampling(ctx, w)
		}
		if err != nil {
			return fmt.Errorf("showcase: %s: %w", name, err)
		}
	}

	p.println()
	p.println(rule)
	p.println("解析延拓：將數學從已知的領域延伸到未知的世界")
	p.println(mutedStyle.Render("Analytic Continuation: Extending mathematics from known to unknown realms"))
	p.println(rule)
	p.println()
	return p.err
}

func selectDemos(demo string) ([]string, error) {
	if demo == "all" {
		return Demos, nil
	}
	for _, d := range Demos {
		if d == demo {
			return []string{d}, nil
		}
	}
	return nil, fmt.Errorf("showcase: unknown demo %q, want one of %s or all", demo, strings.Join(Demos, ", "))
}

// evalOptions are the options bound in ctx, if any.
func evalOptions(ctx context.Context) ([]continuation.Option, error) {
	return continuation.OptionsFromBinding(ctx)
}

// printer remembers the first write error so a block of output can be
// checked once.
type printer struct {
	w   io.Writer
	err error
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: w}
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) println(args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, args...)
}

func (p *printer) section(title string) {
	p.println()
	p.println(sectionStyle.Render(title))
}

func logIfInstalled(ctx context.Context, level log.LogLevel, msg string, fields map[string]interface{}) {
	if log.Installed(ctx) {
		log.LogEff(ctx, level, msg, fields)
	}
}
