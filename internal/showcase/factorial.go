package showcase

import (
	"context"
	"errors"
	"io"

	"github.com/on-the-ground/continuation_go/continuation"
)

// FactorialValues are the points FactorialContinuation prints.
var FactorialValues = []float64{5, 3.5, 0.5, -0.5, -1.5}

// FactorialContinuation prints x! = Γ(x+1) for FactorialValues and marks
// negative integers as poles.
func FactorialContinuation(ctx context.Context, w io.Writer) error {
	opts, err := evalOptions(ctx)
	if err != nil {
		return err
	}

	p := newPrinter(w)
	p.section("=== Factorial Analytic Continuation via Gamma Function ===")
	p.println("Factorial n! is defined for n ≥ 0")
	p.println("Through Γ(n+1), we extend to all numbers except negative integers")
	p.println()

	for _, x := range FactorialValues {
		r, err := continuation.Factorial(x, opts...)
		switch {
		case errors.Is(err, continuation.ErrPole):
			p.printf("%6.2f! = undefined (pole of Gamma function)\n", x)
		case err != nil:
			p.printf("%6.2f! = error: %v\n", x, err)
		default:
			p.printf("%6.2f! = Γ(%6.2f) = %s\n", x, x+1, r)
		}
	}
	return p.err
}
