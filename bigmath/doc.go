// Package bigmath evaluates special functions at arbitrary precision.
//
// Real arguments and results are math/big floats; complex ones are GNU MPC
// values through apcomplex, which also supplies the elementary functions.
// Every function takes the working precision in bits explicitly and
// returns a value rounded to that precision. Intermediate steps run
// with guard bits; callers never need to add their own.
//
// Constants, Bernoulli numbers and the series coefficients built from them
// are memoized per precision, so repeated evaluations at the same precision
// only pay for the series itself.
package bigmath
