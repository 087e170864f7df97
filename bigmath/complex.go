package bigmath

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	ap "github.com/lukaszgryglicki/apcomplex"
)

// NewComplex returns re + i·im as an MPC value of prec bits.
// The conversion is exact when prec covers both mantissas.
func NewComplex(re, im *big.Float, prec uint) *ap.Complex {
	z := ap.New(prec)
	if err := z.SetBase(hexText(re), hexText(im), 16); err != nil {
		panic(err)
	}
	return z
}

// ComplexOf returns c as an MPC value of prec bits. It panics if c has a NaN part.
func ComplexOf(c complex128, prec uint) *ap.Complex {
	return NewComplex(big.NewFloat(real(c)), big.NewFloat(imag(c)), prec)
}

func realComplex(x *big.Float, prec uint) *ap.Complex {
	return NewComplex(x, new(big.Float), prec)
}

func intComplex(v int64, prec uint) *ap.Complex {
	return setInt(ap.New(prec), v)
}

// setInt sets z to the integer v and returns z.
func setInt(z *ap.Complex, v int64) *ap.Complex {
	if err := z.SetBase(strconv.FormatInt(v, 10), "0", 10); err != nil {
		panic(err)
	}
	return z
}

// Parts returns the real and imaginary parts of z rounded to prec bits.
// A part that is infinite or NaN fails with ErrNotFinite.
func Parts(z *ap.Complex, prec uint) (re, im *big.Float, err error) {
	text := strings.TrimSuffix(z.StringScientific(Digits(prec)+3), "i")
	cut := imagSign(text)
	if cut < 0 {
		return nil, nil, fmt.Errorf("bigmath: unreadable complex %q", text)
	}
	if re, err = parsePart(text[:cut], prec); err != nil {
		return nil, nil, err
	}
	if im, err = parsePart(text[cut:], prec); err != nil {
		return nil, nil, err
	}
	return re, im, nil
}

// realPart is Parts for values known to be real.
func realPart(z *ap.Complex, prec uint) (*big.Float, error) {
	re, _, err := Parts(z, prec)
	return re, err
}

// hexText renders x as an integer mantissa in base 16 with a binary
// exponent, the literal form MPFR reads back without rounding.
func hexText(x *big.Float) string {
	switch {
	case x.IsInf() && x.Signbit():
		return "-@inf@"
	case x.IsInf():
		return "@inf@"
	case x.Sign() == 0:
		return "0"
	}
	bits := int(x.MinPrec())
	m := new(big.Float)
	e := x.MantExp(m)
	mant, _ := m.SetMantExp(m, bits).Int(nil)
	return mant.Text(16) + "p" + strconv.Itoa(e-bits)
}

// imagSign finds the sign joining the two parts of a "re±imi" string.
func imagSign(s string) int {
	for i := 1; i < len(s); i++ {
		if (s[i] == '+' || s[i] == '-') && s[i-1] != 'e' && s[i-1] != 'E' {
			return i
		}
	}
	return -1
}

func parsePart(s string, prec uint) (*big.Float, error) {
	f, _, err := big.ParseFloat(s, 10, prec, big.ToNearestEven)
	if err != nil || f.IsInf() {
		return nil, fmt.Errorf("%w: %s", ErrNotFinite, s)
	}
	if f.Sign() == 0 {
		// MPC's signed zeros carry no meaning for callers
		f.SetInt64(0)
	}
	return f, nil
}

// magnitude returns the binary exponent of the larger part of z.
// ok is false for zero; non-finite values report a huge exponent.
func magnitude(z *ap.Complex) (exp int, ok bool) {
	re, im, err := Parts(z, 24)
	if err != nil {
		return big.MaxExp, true
	}
	switch {
	case re.Sign() == 0 && im.Sign() == 0:
		return 0, false
	case re.Sign() == 0:
		return exponent(im), true
	case im.Sign() == 0:
		return exponent(re), true
	}
	return max(exponent(re), exponent(im)), true
}

// negligibleComplex reports whether adding term to sum can no longer change
// sum at prec bits, measured against the larger part of sum.
func negligibleComplex(term, sum *ap.Complex, prec uint) bool {
	te, ok := magnitude(term)
	if !ok {
		return true
	}
	se, ok := magnitude(sum)
	if !ok {
		return false
	}
	return te < se-int(prec)-1
}
