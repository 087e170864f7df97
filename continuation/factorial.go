package continuation

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/on-the-ground/continuation_go/bigmath"
)

// Factorial returns x!, extended to real x through Γ(x+1).
//
//   - non-negative integers give an exact result, unless a threshold is set
//     and x ≥ threshold, in which case they take the approximate path;
//     exact results longer than about four million digits fail with
//     KindOverflow instead;
//   - negative integers fail with a KindPole DomainError;
//   - everything else is Γ(x+1) rounded to max(precision, MinPrecision) digits.
//
// NaN and ±Inf fail with KindInvalidInput.
func Factorial(x float64, opts ...Option) (Result, error) {
	cfg := newConfig(opts...)
	input := formatInput(x)
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return Result{}, invalidInput(input)
	}

	if n, ok := cfg.integral(x); ok {
		if n < 0 {
			return Result{}, poleError(input, fmt.Sprintf(
				"factorial undefined for negative integers: x=%s is a pole of the Gamma function Γ(x+1)", input))
		}
		if cfg.threshold == ThresholdUnset || n < float64(cfg.threshold) {
			return exactFactorial(n, input)
		}
	}
	return approximateFactorial(x, cfg.digits(), input)
}

// integral reports whether x counts as an integer, returning that integer.
func (c config) integral(x float64) (float64, bool) {
	n := math.Round(x)
	if c.tolerance == 0 {
		return n, x == n
	}
	return n, math.Abs(x-n) <= c.tolerance
}

// maxExactDigits caps the decimal length of an exact factorial, reached
// near n = 800000.
const maxExactDigits = 1 << 22

func exactFactorial(n float64, input string) (Result, error) {
	if lg, _ := math.Lgamma(n + 1); lg/math.Ln10 > maxExactDigits {
		return Result{}, overflowError(input, fmt.Sprintf(
			"exact factorial of %s is out of range; set a threshold to use the Gamma function", input), nil)
	}
	v := new(big.Int).MulRange(1, int64(n))
	return exactResult(v), nil
}

func approximateFactorial(x float64, digits int, input string) (Result, error) {
	prec := bigmath.Bits(digits)
	// wide enough that forming x+1 rounds below the result precision
	arg := new(big.Float).SetPrec(prec + 64).SetFloat64(x)
	arg.Add(arg, big.NewFloat(1))

	g, err := bigmath.Gamma(arg, prec)
	switch {
	case errors.Is(err, bigmath.ErrPole):
		return Result{}, poleError(input, fmt.Sprintf(
			"factorial undefined at x=%s: pole of the Gamma function Γ(x+1)", input))
	case errors.Is(err, bigmath.ErrOverflow):
		return Result{}, overflowError(input, fmt.Sprintf("%s! is out of range", input), err)
	case err != nil:
		return Result{}, fmt.Errorf("continuation: factorial of %s: %w", input, err)
	}
	return approximateResult(g, digits), nil
}

func formatInput(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
