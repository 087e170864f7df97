package bigmath

import (
	"fmt"
	"math"
	"math/big"
	"math/bits"
	"math/cmplx"

	ap "github.com/lukaszgryglicki/apcomplex"

	"github.com/on-the-ground/continuation_go/pure"
)

// maxZetaTerms bounds the direct part of the Euler–Maclaurin sum. N grows
// with |s|, so this is what limits |Im s|.
const maxZetaTerms = 1 << 15

var zetaCoefTable = pure.TableizeI2O1(computeZetaCoef, 4096)

// Zeta returns the Riemann zeta function ζ(s) rounded to prec bits.
//
// Right of Re s = prec+2 the result rounds to 1. Far enough left of the
// critical strip it applies the functional equation
//
//	ζ(s) = 2^s·π^(s−1)·sin(πs/2)·Γ(1−s)·ζ(1−s)
//
// and everywhere else it sums the first N−1 terms of Σ n^(−s) directly and
// corrects the tail by Euler–Maclaurin summation:
//
//	ζ(s) ≈ Σ_{n<N} n^(−s) + N^(1−s)/(s−1) + N^(−s)/2
//	       + Σ_k B_2k/(2k)! · s(s+1)…(s+2k−2) · N^(1−s−2k)
//
// The trivial zeros at negative even integers are returned as exact zeros.
// Arguments whose |Im s| would need more than maxZetaTerms direct terms,
// or whose result leaves the exponent range, fail with ErrOverflow.
func Zeta(s *ap.Complex, prec uint) (*ap.Complex, error) {
	sre, sim, err := Parts(s, max(s.Prec(), 64))
	if err != nil {
		return nil, err
	}
	if sim.Sign() == 0 && sre.IsInt() {
		switch {
		case sre.Cmp(big.NewFloat(1)) == 0:
			return nil, fmt.Errorf("%w: ζ(1)", ErrPole)
		case sre.Sign() < 0 && isEven(sre):
			return intComplex(0, prec), nil
		}
	}

	sr, _ := sre.Float64()
	si, _ := sim.Float64()
	switch {
	case sr > float64(prec)+2:
		// |ζ(s) − 1| < 2^(1−σ)
		return intComplex(1, prec), nil
	case sr < 0 && math.Hypot(1-sr, si) >= stirlingMinArg(prec+32):
		return zetaReflected(sre, sim, prec)
	}
	return zetaSum(s, sr, si, prec)
}

func zetaSum(s *ap.Complex, sr, si float64, prec uint) (*ap.Complex, error) {
	size := math.Hypot(sr, si)
	digits := Digits(prec)
	terms := float64(digits) + math.Ceil(size) + 10
	if terms > maxZetaTerms {
		return nil, fmt.Errorf("%w: ζ(%g%+gi) needs more than %d terms", ErrOverflow, sr, si, maxZetaTerms)
	}
	n := int64(terms)
	maxK := 2*digits + int(math.Ceil(size)) + 20

	// left of σ = 1 the partial sum and N^(1−s) cancel in their leading bits
	guard := uint(32)
	if sr < 1 {
		guard += uint(math.Ceil((1 - sr) * math.Log2(float64(n))))
	}
	wp := prec + guard
	s = ap.New(wp).Set(s)
	negS := ap.New(wp).Neg(s)

	sum := intComplex(0, wp)
	k := ap.New(wp)
	term := ap.New(wp)
	for i := int64(1); i < n; i++ {
		sum.Add(sum, term.Pow(setInt(k, i), negS))
	}

	nz := intComplex(n, wp)
	nNeg := ap.New(wp).Pow(nz, negS)
	tail := ap.New(wp).Mul(nNeg, nz)
	tail.Div(tail, ap.New(wp).Sub(s, intComplex(1, wp)))
	sum.Add(sum, tail)
	sum.Add(sum, ap.New(wp).Div(nNeg, intComplex(2, wp)))

	// rising = s(s+1)…(s+2k−2), power = N^(1−s−2k)
	rising := s.Clone()
	power := ap.New(wp).Div(nNeg, nz)
	invN2 := ap.New(wp).Inv(intComplex(n*n, wp))
	step := ap.New(wp)
	for j := 1; j <= maxK; j++ {
		term.Mul(rising, power)
		term.Mul(term, realComplex(zetaCoefTable(j, wp), wp))
		sum.Add(sum, term)
		if negligibleComplex(term, sum, wp) {
			break
		}
		rising.Mul(rising, step.Add(s, setInt(k, int64(2*j-1))))
		rising.Mul(rising, step.Add(s, setInt(k, int64(2*j))))
		power.Mul(power, invN2)
	}
	return ap.New(prec).Set(sum), nil
}

// zetaReflected evaluates ζ(s) for Re s < 0 through the functional equation.
// |1−s| is large enough there that Stirling's series gives Γ(1−s) unshifted.
func zetaReflected(sre, sim *big.Float, prec uint) (*ap.Complex, error) {
	sr, _ := sre.Float64()
	si, _ := sim.Float64()
	z := complex(1-sr, -si)
	// log2 |2^s·π^(s−1)·Γ(1−s)|, plus the e^(π|t|/2) growth of sin(πs/2)
	lnG := real((z-0.5)*cmplx.Log(z)-z) + 0.5*math.Log(2*math.Pi)
	est := (sr*math.Ln2 + (sr-1)*math.Log(math.Pi) + lnG + math.Pi/2*math.Abs(si)) / math.Ln2
	if math.IsNaN(est) || math.Abs(est) > maxExp2 {
		return nil, fmt.Errorf("%w: ζ(%.10g%+.10gi) ≈ 2^%.0f", ErrOverflow, sre, sim, est)
	}

	// the exponent below is formed in absolute terms
	wp := prec + 32 + uint(bits.Len64(uint64(math.Abs(est)+math.Abs(si)+2)))
	s := NewComplex(sre, sim, wp)
	oneMinus := ap.New(wp).Sub(intComplex(1, wp), s)
	zr, err := Zeta(oneMinus, wp)
	if err != nil {
		return nil, err
	}

	l := ap.New(wp).Mul(s, realComplex(ln2Table(wp), wp))
	sMinus1 := ap.New(wp).Sub(s, intComplex(1, wp))
	l.Add(l, sMinus1.Mul(sMinus1, ap.New(wp).Log(piComplex(wp))))
	l.Add(l, lnGammaStirling(oneMinus, wp))

	res := ap.New(wp).Exp(l)
	halfRe := new(big.Float).SetMantExp(sre, -1)
	halfIm := new(big.Float).SetMantExp(sim, -1)
	res.Mul(res, sinPiComplex(halfRe, halfIm, wp))
	res.Mul(res, zr)
	return ap.New(prec).Set(res), nil
}

// computeZetaCoef returns B_2k / (2k)!.
func computeZetaCoef(k int, prec uint) *big.Float {
	c := newFloat(prec).SetRat(Bernoulli(2 * k))
	fact := newFloat(prec).SetInt(new(big.Int).MulRange(1, int64(2*k)))
	return c.Quo(c, fact)
}

func isEven(x *big.Float) bool {
	n, _ := x.Int(nil)
	return n.Bit(0) == 0
}
