package continuation

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"strconv"

	"github.com/on-the-ground/continuation_go/bigmath"
)

// Zeta returns the Riemann zeta function ζ(s), continued analytically to
// every s ≠ 1, rounded to max(precision, MinPrecision) digits per part.
//
// s = 1 fails with a KindPole DomainError; NaN or infinite parts fail with
// KindInvalidInput. Arguments whose |Im s| is too large to sum, or whose
// value leaves the exponent range, fail with KindOverflow.
func Zeta(s complex128, opts ...Option) (ComplexResult, error) {
	cfg := newConfig(opts...)
	input := formatComplex(s)
	if cmplx.IsNaN(s) || cmplx.IsInf(s) {
		return ComplexResult{}, invalidInput(input)
	}
	if s == 1 {
		return ComplexResult{}, poleError(input, "zeta undefined at s=1: pole of the Riemann zeta function")
	}

	digits := cfg.digits()
	prec := bigmath.Bits(digits)
	z, err := bigmath.Zeta(bigmath.ComplexOf(s, prec+64), prec)
	switch {
	case errors.Is(err, bigmath.ErrPole):
		return ComplexResult{}, poleError(input, "zeta undefined at s=1: pole of the Riemann zeta function")
	case errors.Is(err, bigmath.ErrOverflow):
		return ComplexResult{}, overflowError(input, fmt.Sprintf("ζ(%s) is out of range", input), err)
	case err != nil:
		return ComplexResult{}, fmt.Errorf("continuation: zeta at %s: %w", input, err)
	}
	re, im, err := bigmath.Parts(z, prec)
	if err != nil {
		return ComplexResult{}, overflowError(input, fmt.Sprintf("ζ(%s) is out of range", input), err)
	}
	return ComplexResult{re: re, im: im, precision: digits}, nil
}

func formatComplex(s complex128) string {
	if imag(s) == 0 {
		return strconv.FormatFloat(real(s), 'g', -1, 64)
	}
	return strconv.FormatComplex(s, 'g', -1, 128)
}

// ZetaReal is Zeta restricted to the real axis.
func ZetaReal(s float64, opts ...Option) (float64, error) {
	z, err := Zeta(complex(s, 0), opts...)
	if err != nil {
		return math.NaN(), err
	}
	return real(z.Complex128()), nil
}
