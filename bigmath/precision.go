package bigmath

import (
	"math"
	"math/big"
)

const log2Of10 = 3.32192809488736234787031942948939017586483139302458

// Bits returns the mantissa length, in bits, carrying digits significant
// decimal digits. Digit counts below 1 are treated as 1.
func Bits(digits int) uint {
	if digits < 1 {
		digits = 1
	}
	return uint(math.Ceil(float64(digits) * log2Of10))
}

// Digits returns the number of decimal digits bits can carry, rounded down.
func Digits(bits uint) int {
	return int(float64(bits) / log2Of10)
}

func newFloat(prec uint) *big.Float {
	return new(big.Float).SetPrec(prec)
}

func intFloat(v int64, prec uint) *big.Float {
	return newFloat(prec).SetInt64(v)
}

// exponent returns e with |x| = m·2^e, 0.5 ≤ m < 1. x must be finite and non-zero.
func exponent(x *big.Float) int {
	return x.MantExp(nil)
}
