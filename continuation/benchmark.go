package continuation

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/on-the-ground/continuation_go/bigmath"
	"github.com/rickb777/date/v2/timespan"
)

// Timing is the wall-clock cost of one Γ(x+1) evaluation.
type Timing struct {
	Precision int
	Elapsed   time.Duration
	Span      timespan.TimeSpan
}

// Benchmark evaluates Γ(x+1) once at DefaultPrecision to warm the constant
// tables, then once per entry of precisions, timing each call. Timings come
// back in the order of precisions. Precisions are used as given, without the
// MinPrecision floor.
func Benchmark(x float64, precisions []int) ([]Timing, error) {
	input := formatInput(x)
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil, invalidInput(input)
	}
	if x < 0 && x == math.Round(x) {
		return nil, poleError(input, fmt.Sprintf(
			"factorial undefined for negative integers: x=%s is a pole of the Gamma function Γ(x+1)", input))
	}

	if _, err := gammaAt(x, DefaultPrecision); err != nil {
		return nil, benchmarkError(input, err)
	}

	timings := make([]Timing, 0, len(precisions))
	for _, p := range precisions {
		start := time.Now()
		_, err := gammaAt(x, p)
		span := timespan.BetweenTimes(start, time.Now())
		if err != nil {
			return timings, benchmarkError(input, err)
		}
		timings = append(timings, Timing{Precision: p, Elapsed: span.Duration(), Span: span})
	}
	return timings, nil
}

func gammaAt(x float64, digits int) (*big.Float, error) {
	prec := bigmath.Bits(digits)
	arg := new(big.Float).SetPrec(prec + 64).SetFloat64(x)
	arg.Add(arg, big.NewFloat(1))
	return bigmath.Gamma(arg, prec)
}

func benchmarkError(input string, err error) error {
	if errors.Is(err, bigmath.ErrOverflow) {
		return overflowError(input, fmt.Sprintf("%s! is out of range", input), err)
	}
	return fmt.Errorf("continuation: benchmark at %s: %w", input, err)
}
