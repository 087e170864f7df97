// Package continuation evaluates factorial and the Riemann zeta function
// beyond their original domains.
//
// Factorial(x) is exact for non-negative integers (optionally only below a
// threshold), fails with a pole error at negative integers, and otherwise
// evaluates Γ(x+1) at the requested number of decimal digits. Zeta(s) is the
// analytic continuation of Σ n^(−s) to every s ≠ 1.
//
// Precision is passed with each call through options; there is no shared
// precision state, so evaluations at different precisions may run
// concurrently.
//
//	r, err := continuation.Factorial(-0.5, continuation.WithPrecision(80))
//	if errors.Is(err, continuation.ErrPole) {
//		...
//	}
//	fmt.Println(r) // √π to 80 digits
package continuation
