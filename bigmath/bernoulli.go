package bigmath

import (
	"math/big"

	"github.com/on-the-ground/continuation_go/pure"
)

var bernoulliTable func(int) *big.Rat

func init() {
	bernoulliTable = pure.TableizeI1O1(computeBernoulli, 1024)
}

// Bernoulli returns the exact Bernoulli number B_n, with B_1 = −1/2.
// Bernoulli panics if n is negative.
func Bernoulli(n int) *big.Rat {
	if n < 0 {
		panic("bigmath: Bernoulli of a negative index")
	}
	return new(big.Rat).Set(bernoulliTable(n))
}

// computeBernoulli solves Σ_{j=0}^{n} C(n+1, j)·B_j = 0 for B_n.
func computeBernoulli(n int) *big.Rat {
	switch {
	case n == 0:
		return big.NewRat(1, 1)
	case n == 1:
		return big.NewRat(-1, 2)
	case n%2 == 1:
		return new(big.Rat)
	}

	sum := new(big.Rat)
	term := new(big.Rat)
	binom := big.NewInt(1)
	for j := 0; j < n; j++ {
		if j == 1 || j%2 == 0 {
			term.SetInt(binom)
			term.Mul(term, bernoulliTable(j))
			sum.Add(sum, term)
		}
		// C(n+1, j+1) = C(n+1, j)·(n+1−j)/(j+1)
		binom.Mul(binom, big.NewInt(int64(n+1-j)))
		binom.Quo(binom, big.NewInt(int64(j+1)))
	}
	sum.Quo(sum, big.NewRat(int64(n+1), 1))
	return sum.Neg(sum)
}
