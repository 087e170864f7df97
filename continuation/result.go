package continuation

import (
	"fmt"
	"math/big"
)

// Kind tags a successful Result.
type Kind int

const (
	KindExactInteger Kind = iota + 1
	KindApproximateReal
)

func (k Kind) String() string {
	switch k {
	case KindExactInteger:
		return "exact integer"
	case KindApproximateReal:
		return "approximate real"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Result is the value of a factorial evaluation: an exact integer, or a
// real rounded to Precision decimal digits. Accessors return copies.
type Result struct {
	kind      Kind
	exact     *big.Int
	approx    *big.Float
	precision int
}

func exactResult(v *big.Int) Result {
	return Result{kind: KindExactInteger, exact: v}
}

func approximateResult(v *big.Float, digits int) Result {
	return Result{kind: KindApproximateReal, approx: v, precision: digits}
}

func (r Result) Kind() Kind {
	return r.kind
}

// Int returns the exact value, or nil for an approximate result.
func (r Result) Int() *big.Int {
	if r.exact == nil {
		return nil
	}
	return new(big.Int).Set(r.exact)
}

// Float returns the value as a big.Float. Exact results convert without rounding.
func (r Result) Float() *big.Float {
	switch {
	case r.exact != nil:
		return new(big.Float).SetInt(r.exact)
	case r.approx != nil:
		return new(big.Float).Copy(r.approx)
	default:
		return nil
	}
}

// Float64 returns the nearest float64, ±Inf when out of range.
func (r Result) Float64() float64 {
	f := r.Float()
	if f == nil {
		return 0
	}
	v, _ := f.Float64()
	return v
}

// Precision is the number of decimal digits of an approximate result, 0 for exact ones.
func (r Result) Precision() int {
	return r.precision
}

func (r Result) Sign() int {
	switch {
	case r.exact != nil:
		return r.exact.Sign()
	case r.approx != nil:
		return r.approx.Sign()
	default:
		return 0
	}
}

// String prints exact results in full and approximate ones with Precision significant digits.
func (r Result) String() string {
	switch {
	case r.exact != nil:
		return r.exact.String()
	case r.approx != nil:
		return r.approx.Text('g', r.precision)
	default:
		return "<nil>"
	}
}

// ComplexResult is the value of a zeta evaluation.
type ComplexResult struct {
	re, im    *big.Float
	precision int
}

func (c ComplexResult) Real() *big.Float {
	return new(big.Float).Copy(c.re)
}

func (c ComplexResult) Imag() *big.Float {
	return new(big.Float).Copy(c.im)
}

func (c ComplexResult) Precision() int {
	return c.precision
}

func (c ComplexResult) Complex128() complex128 {
	re, _ := c.re.Float64()
	im, _ := c.im.Float64()
	return complex(re, im)
}

// String formats the value as "re + im i".
func (c ComplexResult) String() string {
	sign := "+"
	im := new(big.Float).Copy(c.im)
	if im.Signbit() {
		sign = "-"
		im.Neg(im)
	}
	return fmt.Sprintf("%s %s %si", c.re.Text('g', c.precision), sign, im.Text('g', c.precision))
}
