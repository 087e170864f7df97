package bigmath

import (
	"math/big"

	ap "github.com/lukaszgryglicki/apcomplex"

	"github.com/on-the-ground/continuation_go/pure"
)

var (
	piTable  = pure.TableizeI1O1(computePi, 64)
	ln2Table = pure.TableizeI1O1(computeLn2, 64)
)

// Pi returns π rounded to prec bits.
func Pi(prec uint) *big.Float {
	return newFloat(prec).Set(piTable(prec))
}

// Ln2 returns ln 2 rounded to prec bits.
func Ln2(prec uint) *big.Float {
	return newFloat(prec).Set(ln2Table(prec))
}

// computePi reads π off the principal logarithm log(−1) = iπ.
func computePi(prec uint) *big.Float {
	wp := prec + 16
	_, im, err := Parts(ap.New(wp).Log(intComplex(-1, wp)), wp)
	if err != nil {
		panic(err)
	}
	return im
}

func computeLn2(prec uint) *big.Float {
	wp := prec + 16
	re, err := realPart(ap.New(wp).Log(intComplex(2, wp)), wp)
	if err != nil {
		panic(err)
	}
	return re
}

// piComplex returns π as an MPC value of prec bits.
func piComplex(prec uint) *ap.Complex {
	return realComplex(piTable(prec), prec)
}
