package continuation

import (
	"fmt"
	"math"
	"strconv"
)

const (
	// DefaultPrecision is the number of decimal digits used when none is given.
	DefaultPrecision = 50
	// MinPrecision is the floor applied to every approximate evaluation.
	MinPrecision = 20
	// ThresholdUnset disables the exact-integer size guard.
	ThresholdUnset int64 = 0
)

// Option configures a single evaluation.
type Option func(*config)

type config struct {
	precision int
	threshold int64
	tolerance float64
}

func newConfig(opts ...Option) config {
	c := config{precision: DefaultPrecision, threshold: ThresholdUnset}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// digits is the precision actually used, never below MinPrecision.
func (c config) digits() int {
	return max(c.precision, MinPrecision)
}

func (c config) key(fn string, args ...float64) string {
	key := fn
	for _, a := range args {
		key += "|" + strconv.FormatUint(math.Float64bits(a), 16)
	}
	return fmt.Sprintf("%s|p%d|t%d|e%x", key, c.digits(), c.threshold, math.Float64bits(c.tolerance))
}

// WithPrecision sets the number of significant decimal digits.
// Values below MinPrecision are raised to it.
func WithPrecision(digits int) Option {
	return func(c *config) {
		c.precision = digits
	}
}

// WithThreshold makes non-negative integers n ≥ threshold take the
// approximate path instead of exact multiplication.
// It panics if threshold is not positive; use WithoutThreshold to clear it.
func WithThreshold(threshold int64) Option {
	if threshold <= 0 {
		panic("continuation: WithThreshold requires a positive threshold")
	}
	return func(c *config) {
		c.threshold = threshold
	}
}

// WithoutThreshold clears any threshold set by an earlier option.
func WithoutThreshold() Option {
	return func(c *config) {
		c.threshold = ThresholdUnset
	}
}

// WithIntegerTolerance treats x as the integer n when |x − n| ≤ tol.
// It panics if tol is negative, NaN or infinite.
func WithIntegerTolerance(tol float64) Option {
	if !validTolerance(tol) {
		panic("continuation: WithIntegerTolerance requires a finite non-negative tolerance")
	}
	return func(c *config) {
		c.tolerance = tol
	}
}

func validTolerance(tol float64) bool {
	return tol >= 0 && !math.IsInf(tol, 1)
}
