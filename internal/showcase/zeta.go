package showcase

import (
	"cmp"
	"context"
	"errors"
	"io"

	"github.com/on-the-ground/continuation_go/continuation"
	"github.com/on-the-ground/continuation_go/effects/binding"
	"github.com/on-the-ground/continuation_go/effects/concurrency"
	"github.com/on-the-ground/continuation_go/effects/configkeys"
	"github.com/on-the-ground/continuation_go/effects/log"
	"github.com/on-the-ground/continuation_go/shared/orderedbuffer"
	"gonum.org/v1/gonum/mathext"
)

// DefaultZetaValues are the points ZetaValues prints when given none.
var DefaultZetaValues = []float64{-1, 0, 2, -3, -0.5}

// ZetaValues prints ζ(s) for each s, or for DefaultZetaValues when values is empty.
func ZetaValues(ctx context.Context, w io.Writer, values []float64) error {
	if len(values) == 0 {
		values = DefaultZetaValues
	}
	opts, err := evalOptions(ctx)
	if err != nil {
		return err
	}

	p := newPrinter(w)
	p.section("=== Riemann Zeta Function - Analytic Continuation ===")
	p.println("Original definition: ζ(s) = Σ(n=1 to ∞) 1/n^s for Re(s) > 1")
	p.println("Through analytic continuation, extends to all s ≠ 1")
	p.println()

	for _, s := range values {
		z, err := continuation.Zeta(complex(s, 0), opts...)
		if errors.Is(err, continuation.ErrPole) {
			p.printf("ζ(%6.2f) = undefined (pole of the zeta function)\n", s)
			continue
		}
		if err != nil {
			return err
		}
		v := z.Complex128()
		p.printf("ζ(%6.2f) = %20.10f + %20.10fi\n", s, real(v), imag(v))
	}

	p.println()
	p.println("Famous result: 1 + 2 + 3 + 4 + ... = ζ(-1) = -1/12")
	p.println("This is through analytic continuation, not ordinary summation!")
	return p.err
}

// SumIdentity prints the regularized value of 1 + 2 + 3 + … and its poem.
func SumIdentity(ctx context.Context, w io.Writer) error {
	opts, err := evalOptions(ctx)
	if err != nil {
		return err
	}
	v, err := continuation.ZetaReal(-1, opts...)
	if err != nil {
		return err
	}

	p := newPrinter(w)
	p.section("=== The Famous Sum Identity ===")
	p.println("Direct sum: S = 1 + 2 + 3 + 4 + ... (diverges to +∞)")
	p.println()
	p.println("But through analytic continuation of ζ(s) = Σ(1/n^s):")
	p.println("We can assign a 'regularized' value to this divergent series")
	p.println()
	p.printf("ζ(-1) = %.15f\n", v)
	p.println()
	p.println("This is used in:")
	p.println("- Quantum field theory (Casimir effect)")
	p.println("- String theory (critical dimension)")
	p.println("- Regularization of divergent series")
	p.println()
	p.println("詩曰：")
	p.println("說是無窮，卻被 ζ(−1) 惡整成 −1⁄12；")
	p.println("時間在哭，空間在笑，")
	p.println("真空的能量還得繳稅給正則化的帝王。")
	return p.err
}

// Sample is one evaluated point of a sampling region.
type Sample struct {
	Index int
	S     float64
	Value float64
	Err   error
}

// Linspace returns n evenly spaced points from start to stop inclusive.
func Linspace(start, stop float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{start}
	}
	step := (stop - start) / float64(n-1)
	points := make([]float64, n)
	for i := range points {
		points[i] = start + float64(i)*step
	}
	points[n-1] = stop
	return points
}

// SampleZeta evaluates ζ at every point concurrently and returns the samples
// in the order of points.
//
// Each point runs in its own child of a concurrency scope; the results
// arrive in completion order and are re-ordered through a bounded ordered
// buffer. The concurrency handler's buffer size is read from the binding
// effect when bound.
func SampleZeta(ctx context.Context, points []float64) ([]Sample, error) {
	opts, err := evalOptions(ctx)
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, nil
	}

	buf := orderedbuffer.NewOrderedBoundedBuffer(len(points), func(a, b Sample) int {
		return cmp.Compare(a.Index, b.Index)
	})

	children := make([]func(context.Context), len(points))
	for i, s := range points {
		children[i] = func(childCtx context.Context) {
			v, err := continuation.ZetaReal(s, opts...)
			buf.Insert(childCtx, Sample{Index: i, S: s, Value: v, Err: err})
		}
	}

	scopeCtx, endOfConcurrency := concurrency.WithEffectHandler(ctx, concurrencyBufferSize(ctx))
	concurrency.Effect(scopeCtx, children...)
	endOfConcurrency()
	buf.Close(ctx)

	samples := make([]Sample, 0, len(points))
	for sample := range buf.Source() {
		samples = append(samples, sample)
	}
	logIfInstalled(ctx, log.LogDebug, "sampled zeta", map[string]interface{}{
		"points":  len(points),
		"samples": len(samples),
	})
	return samples, ctx.Err()
}

func concurrencyBufferSize(ctx context.Context) int {
	if !binding.Installed(ctx) {
		return 1
	}
	size, err := binding.GetTyped[int](ctx, configkeys.ConfigEffectConcurrencyHandlerBufferSize)
	if err != nil || size < 1 {
		return 1
	}
	return size
}

// Sampling prints ζ over the convergent region [2, 5] next to a float64
// Hurwitz-zeta reference, then over the continuation region [-3, 0.5].
func Sampling(ctx context.Context, w io.Writer) error {
	convergent, err := SampleZeta(ctx, Linspace(2, 5, 5))
	if err != nil {
		return err
	}
	continued, err := SampleZeta(ctx, Linspace(-3, 0.5, 5))
	if err != nil {
		return err
	}

	p := newPrinter(w)
	p.section("=== Data Sampling and Continuation ===")
	p.println("Sampling the Riemann zeta function at various points")
	p.println("and showing how values continue beyond the original domain")
	p.println()

	p.println("Convergent region (Re(s) > 1):")
	for _, sm := range convergent {
		if sm.Err != nil {
			return sm.Err
		}
		p.printf("  s = %5.2f: ζ(s) = %15.10f   (float64 series: %.10f)\n", sm.S, sm.Value, mathext.Zeta(sm.S, 1))
	}

	p.println()
	p.println("Continuation region (Re(s) ≤ 1):")
	for _, sm := range continued {
		if sm.Err != nil {
			return sm.Err
		}
		p.printf("  s = %5.2f: ζ(s) = %15.10f\n", sm.S, sm.Value)
	}
	return p.err
}
