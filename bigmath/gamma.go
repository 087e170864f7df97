package bigmath

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"math/bits"

	ap "github.com/lukaszgryglicki/apcomplex"

	"github.com/on-the-ground/continuation_go/pure"
)

var (
	// ErrPole is returned at the poles of Γ and ζ.
	ErrPole = errors.New("bigmath: pole")
	// ErrOverflow is returned when a result's binary exponent leaves the representable range,
	// or when an argument is too large to evaluate in bounded work.
	ErrOverflow = errors.New("bigmath: result exponent out of range")
	// ErrNotFinite is returned for infinite arguments.
	ErrNotFinite = errors.New("bigmath: argument is not finite")
)

// maxExp2 bounds |log2| of any result. MPFR's default exponent range is
// about ±2^30, narrower than big.Float's.
const maxExp2 = 1<<30 - 64

var stirlingTable = pure.TableizeI2O1(computeStirlingCoef, 4096)

// Gamma returns Γ(x) rounded to prec bits.
//
// Arguments below 1/2 go through the reflection Γ(x) = π / (sin(πx)·Γ(1−x));
// the rest shift x upward until Stirling's series converges at prec bits and
// divide the rising product back out.
func Gamma(x *big.Float, prec uint) (*big.Float, error) {
	if x.IsInf() {
		return nil, ErrNotFinite
	}
	if x.Sign() <= 0 && x.IsInt() {
		return nil, fmt.Errorf("%w: Γ(%s)", ErrPole, x.Text('g', 20))
	}

	guard := uint(32)
	xf, _ := x.Float64()
	lg, _ := math.Lgamma(xf)
	switch {
	case math.IsInf(lg, 1) && xf > 0:
		return nil, fmt.Errorf("%w: Γ(%s) ≈ 2^+Inf", ErrOverflow, x.Text('g', 20))
	case !math.IsInf(lg, 0):
		if lg2 := lg / math.Ln2; math.Abs(lg2) > maxExp2 {
			return nil, fmt.Errorf("%w: Γ(%s) ≈ 2^%.0f", ErrOverflow, x.Text('g', 20), lg2)
		}
		// ln|Γ| loses its integer bits when exponentiated
		guard += uint(bits.Len64(uint64(math.Abs(lg))))
	}
	if e := exponent(x); e > 0 {
		guard += uint(e)
	}
	wp := prec + guard

	var g *big.Float
	if x.Cmp(big.NewFloat(0.5)) >= 0 {
		var err error
		if g, err = gammaPositive(x, wp); err != nil {
			return nil, err
		}
	} else {
		// Γ(x) = π / (sin(πx)·Γ(1−x))
		y := newFloat(wp+x.Prec()).Sub(intFloat(1, wp), x)
		den, err := gammaPositive(y, wp)
		if err != nil {
			return nil, err
		}
		s, err := sinPi(x, wp)
		if err != nil {
			return nil, err
		}
		g = newFloat(wp).Quo(Pi(wp), den.Mul(den, s))
	}
	if g.IsInf() || g.Sign() == 0 {
		return nil, fmt.Errorf("%w: Γ(%s)", ErrOverflow, x.Text('g', 20))
	}
	return newFloat(prec).Set(g), nil
}

// gammaPositive evaluates Γ(x) for x ≥ 1/2 at prec bits.
func gammaPositive(x *big.Float, prec uint) (*big.Float, error) {
	xf, _ := x.Float64()
	shift := int64(0)
	if minArg := stirlingMinArg(prec); xf < minArg {
		shift = int64(math.Ceil(minArg - xf))
	}

	y := newFloat(prec).Add(x, intFloat(shift, prec))
	g, err := realPart(ap.New(prec).Exp(lnGammaStirling(realComplex(y, prec), prec)), prec)
	if err != nil {
		return nil, fmt.Errorf("%w: Γ(%s)", ErrOverflow, x.Text('g', 20))
	}
	if shift == 0 {
		return g, nil
	}

	// Γ(x) = Γ(x+N) / (x(x+1)…(x+N−1))
	p := newFloat(prec).Set(x)
	t := newFloat(prec)
	for i := int64(1); i < shift; i++ {
		t.Add(x, intFloat(i, prec))
		p.Mul(p, t)
	}
	return g.Quo(g, p), nil
}

// stirlingMinArg is the |z| past which Stirling's terms shrink below 2^-prec,
// about prec·ln2/(2π).
func stirlingMinArg(prec uint) float64 {
	return 0.12*float64(prec) + 10
}

// lnGammaStirling returns ln Γ(z) for |z| ≥ stirlingMinArg(prec), Re z > 0:
// (z−½)·ln z − z + ½·ln 2π + Σ B_2k / (2k(2k−1)·z^(2k−1)).
func lnGammaStirling(z *ap.Complex, prec uint) *ap.Complex {
	half := ap.New(prec).Div(intComplex(1, prec), intComplex(2, prec))
	res := ap.New(prec).Sub(z, half)
	res.Mul(res, ap.New(prec).Log(z))
	res.Sub(res, z)

	twoPi := ap.New(prec).Mul(piComplex(prec), intComplex(2, prec))
	halfLog2Pi := ap.New(prec).Log(twoPi)
	res.Add(res, halfLog2Pi.Mul(halfLog2Pi, half))

	maxTerms := 1
	if re, im, err := Parts(z, 53); err == nil {
		rf, _ := re.Float64()
		imf, _ := im.Float64()
		maxTerms = int(math.Pi*math.Hypot(rf, imf)) + 1
	}
	inv := ap.New(prec).Inv(z)
	inv2 := ap.New(prec).Mul(inv, inv)
	power := inv.Clone()
	term := ap.New(prec)
	for k := 1; k <= maxTerms; k++ {
		term.Mul(power, realComplex(stirlingTable(k, prec), prec))
		res.Add(res, term)
		if negligibleComplex(term, res, prec) {
			break
		}
		power.Mul(power, inv2)
	}
	return res
}

// computeStirlingCoef returns B_2k / (2k(2k−1)).
func computeStirlingCoef(k int, prec uint) *big.Float {
	c := newFloat(prec).SetRat(Bernoulli(2 * k))
	return c.Quo(c, intFloat(int64(2*k*(2*k-1)), prec))
}

// sinPi returns sin(πx), exactly zero at the integers.
func sinPi(x *big.Float, prec uint) (*big.Float, error) {
	return realPart(sinPiComplex(x, new(big.Float), prec), prec)
}

// sinPiComplex returns sin(π(re + i·im)). The integer part of re is
// removed exactly first, so huge real parts keep full precision.
func sinPiComplex(re, im *big.Float, prec uint) *ap.Complex {
	n, _ := re.Int(nil)
	// re − n is exact: it has no more significant bits than re
	frac := newFloat(max(re.Prec(), prec)).Sub(re, newFloat(max(re.Prec(), uint(n.BitLen())+1)).SetInt(n))
	if frac.Sign() == 0 && im.Sign() == 0 {
		return intComplex(0, prec)
	}
	wp := prec + 16
	arg := ap.New(wp).Mul(piComplex(wp), NewComplex(frac, im, wp))
	s := ap.New(wp).Sin(arg)
	if n.Bit(0) == 1 {
		s.Neg(s)
	}
	return ap.New(prec).Set(s)
}
