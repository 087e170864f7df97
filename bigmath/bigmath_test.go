package bigmath_test

import (
	"fmt"
	"math"
	"math/big"
	"testing"

	"github.com/on-the-ground/continuation_go/bigmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	piDigits  = "3.14159265358979323846264338327950288419716939937510582097494459"
	ln2Digits = "0.693147180559945309417232121458176568075500134360255254120680009"
	sqrtPi    = "1.77245385090551602729816748334114518279754945612238712821380779"
)

func parse(t *testing.T, s string) *big.Float {
	t.Helper()
	f, ok := new(big.Float).SetPrec(512).SetString(s)
	require.True(t, ok, "bad literal %q", s)
	return f
}

// assertDigits checks that got matches want to within 10^-digits relative error.
func assertDigits(t *testing.T, want string, got *big.Float, digits int) {
	t.Helper()
	w := parse(t, want)
	diff := new(big.Float).SetPrec(512).Sub(w, got)
	if w.Sign() != 0 {
		diff.Quo(diff, w)
	}
	diff.Abs(diff)
	tol := parse(t, fmt.Sprintf("1e-%d", digits))
	assert.Truef(t, diff.Cmp(tol) <= 0, "want %s, got %s", want, got.Text('g', digits+5))
}

func TestBitsAndDigitsRoundTrip(t *testing.T) {
	assert.Equal(t, uint(167), bigmath.Bits(50))
	assert.Equal(t, uint(4), bigmath.Bits(0))
	for _, d := range []int{20, 30, 50, 120, 240} {
		assert.GreaterOrEqual(t, bigmath.Digits(bigmath.Bits(d)), d)
	}
}

func TestConstants(t *testing.T) {
	for _, digits := range []int{20, 50} {
		prec := bigmath.Bits(digits)
		assertDigits(t, piDigits, bigmath.Pi(prec), digits)
		assertDigits(t, ln2Digits, bigmath.Ln2(prec), digits)
		assert.Equal(t, prec, bigmath.Pi(prec).Prec())
	}
}

func TestConstantsAreCopies(t *testing.T) {
	prec := bigmath.Bits(30)
	p := bigmath.Pi(prec)
	p.SetInt64(3)
	assertDigits(t, piDigits, bigmath.Pi(prec), 30)
}

func TestComplexRoundTrip(t *testing.T) {
	for _, c := range []complex128{0, 1, complex(-2.5, 0.1), complex(1e-300, -3e250), complex(0.1, 1.0/3)} {
		re, im, err := bigmath.Parts(bigmath.ComplexOf(c, 64), 64)
		require.NoError(t, err)
		r, _ := re.Float64()
		i, _ := im.Float64()
		assert.Equal(t, c, complex(r, i))
	}

	// the base-16 conversion keeps every bit of a wide mantissa
	third := new(big.Float).SetPrec(400).Quo(big.NewFloat(1), big.NewFloat(3))
	re, _, err := bigmath.Parts(bigmath.NewComplex(third, new(big.Float), 400), 400)
	require.NoError(t, err)
	assert.Equal(t, 0, third.Cmp(re))
}

func TestPartsRejectsInfinity(t *testing.T) {
	_, _, err := bigmath.Parts(bigmath.ComplexOf(complex(math.Inf(1), 0), 64), 64)
	assert.ErrorIs(t, err, bigmath.ErrNotFinite)
}

func TestBernoulli(t *testing.T) {
	cases := map[int]*big.Rat{
		0:  big.NewRat(1, 1),
		1:  big.NewRat(-1, 2),
		2:  big.NewRat(1, 6),
		3:  new(big.Rat),
		4:  big.NewRat(-1, 30),
		12: big.NewRat(-691, 2730),
		20: big.NewRat(-174611, 330),
	}
	for n, want := range cases {
		assert.Equalf(t, 0, want.Cmp(bigmath.Bernoulli(n)), "B_%d = %s", n, bigmath.Bernoulli(n).RatString())
	}
	assert.Panics(t, func() { bigmath.Bernoulli(-1) })
}

func TestGamma(t *testing.T) {
	prec := bigmath.Bits(50)

	g, err := bigmath.Gamma(big.NewFloat(0.5), prec)
	require.NoError(t, err)
	assertDigits(t, sqrtPi, g, 50)

	g, err = bigmath.Gamma(big.NewFloat(5), prec)
	require.NoError(t, err)
	assertDigits(t, "24", g, 50)

	// reflection: Γ(−1/2) = −2√π
	g, err = bigmath.Gamma(big.NewFloat(-0.5), prec)
	require.NoError(t, err)
	assertDigits(t, "-3.54490770181103205459633496668229036559509891224477425642761558", g, 50)

	// Γ(4.5) = 105√π/16
	g, err = bigmath.Gamma(big.NewFloat(4.5), prec)
	require.NoError(t, err)
	assertDigits(t, "11.6317283965674489291442241094262652621089183058031655289031136", g, 50)
}

func TestGammaLargeArgument(t *testing.T) {
	g, err := bigmath.Gamma(big.NewFloat(101), bigmath.Bits(30))
	require.NoError(t, err)
	// 100! = 9.33262154439441526816992388562667004907159682643816214685929...e157
	assertDigits(t, "9.332621544394415268169923885626670049071596826438e157", g, 30)
}

func TestGammaPolesAndRange(t *testing.T) {
	for _, x := range []float64{0, -1, -7} {
		_, err := bigmath.Gamma(big.NewFloat(x), 64)
		assert.ErrorIs(t, err, bigmath.ErrPole)
	}
	for _, x := range []float64{1e9, 1e300, 1.5e308} {
		_, err := bigmath.Gamma(big.NewFloat(x), 64)
		assert.ErrorIs(t, err, bigmath.ErrOverflow, "x=%v", x)
	}

	_, err := bigmath.Gamma(new(big.Float).SetInf(false), 64)
	assert.ErrorIs(t, err, bigmath.ErrNotFinite)
}

func TestZetaRealValues(t *testing.T) {
	prec := bigmath.Bits(40)
	cases := []struct {
		s    float64
		want string
	}{
		{2, "1.64493406684822643647241516664602518921894990120679843773555822"},
		{3, "1.20205690315959428539973816151144999076498629234049888179227155"},
		{0.5, "-1.46035450880958681288949915251529801246722933101258149054288609"},
		{-1, "-0.0833333333333333333333333333333333333333333333333333333333333"},
		{0, "-0.5"},
		{-3, "0.00833333333333333333333333333333333333333333333333333333333333"},
		{-0.5, "-0.207886224977354566017306725397049302226268531287672537610113557"},
	}
	for _, c := range cases {
		re, im := zeta(t, complex(c.s, 0), prec)
		assertDigits(t, c.want, re, 38)
		assert.Equal(t, 0, im.Sign(), "ζ(%v) should be real", c.s)
	}
}

func TestZetaTrivialZeros(t *testing.T) {
	prec := bigmath.Bits(30)
	for _, s := range []float64{-2, -4, -10, -1e300} {
		re, im := zeta(t, complex(s, 0), prec)
		assert.Equal(t, 0, re.Sign(), "ζ(%v) = %s", s, re.Text('g', 10))
		assert.Equal(t, 0, im.Sign())
	}
}

func TestZetaFunctionalEquation(t *testing.T) {
	prec := bigmath.Bits(30)
	// ζ(−41) = −B_42/42
	want := bigmath.Bernoulli(42)
	want.Quo(want, big.NewRat(-42, 1))
	re, im := zeta(t, complex(-41, 0), prec)
	assertDigits(t, want.FloatString(40), re, 28)
	assert.Equal(t, 0, im.Sign())

	// both sides of the switch agree on the conjugate symmetry
	a1, b1 := zeta(t, complex(-40.5, 3), prec)
	a2, b2 := zeta(t, complex(-40.5, -3), prec)
	assertDigits(t, a1.Text('g', 40), a2, 28)
	assertDigits(t, b1.Text('g', 40), new(big.Float).Neg(b2), 28)
}

func TestZetaFarRightIsOne(t *testing.T) {
	for _, s := range []float64{1e6, 1e300} {
		re, im := zeta(t, complex(s, 0), 64)
		assert.Equal(t, 0, re.Cmp(big.NewFloat(1)))
		assert.Equal(t, 0, im.Sign())
	}
}

func TestZetaOutOfRange(t *testing.T) {
	for _, s := range []complex128{complex(-1e15-0.5, 0), complex(0.5, 1e5), complex(-1e300, 1)} {
		_, err := bigmath.Zeta(bigmath.ComplexOf(s, 64), 64)
		assert.ErrorIs(t, err, bigmath.ErrOverflow, "s=%v", s)
	}
}

func zeta(t *testing.T, s complex128, prec uint) (re, im *big.Float) {
	t.Helper()
	z, err := bigmath.Zeta(bigmath.ComplexOf(s, prec+64), prec)
	require.NoError(t, err)
	re, im, err = bigmath.Parts(z, prec)
	require.NoError(t, err)
	return re, im
}

func TestZetaFirstNontrivialZero(t *testing.T) {
	prec := bigmath.Bits(30)
	re, im := zeta(t, complex(0.5, 14.134725141734693790), prec)
	r, _ := re.Float64()
	i, _ := im.Float64()
	assert.Less(t, math.Abs(r)+math.Abs(i), 1e-13)
}

func TestZetaPole(t *testing.T) {
	_, err := bigmath.Zeta(bigmath.ComplexOf(1, 64), 64)
	assert.ErrorIs(t, err, bigmath.ErrPole)
}
