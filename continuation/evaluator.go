package continuation

import (
	"fmt"

	ristretto "github.com/dgraph-io/ristretto/v2"
)

// CacheConfig sizes the result cache of an Evaluator.
type CacheConfig struct {
	NumCounters int64 // keys tracked for admission, about 10x the expected entries
	MaxCost     int64 // entries held, each result costs 1
	BufferItems int64
}

// DefaultCacheConfig holds about a thousand results.
var DefaultCacheConfig = CacheConfig{
	NumCounters: 1e4,
	MaxCost:     1 << 10,
	BufferItems: 64,
}

// Evaluator memoizes Factorial and Zeta. Results are keyed by input and the
// effective options, so the same input at two precisions is cached twice.
// Errors are never cached.
//
// Sets are admitted asynchronously; call Wait before relying on a hit.
type Evaluator struct {
	cache    *ristretto.Cache[string, any]
	defaults []Option
}

// NewEvaluator builds an Evaluator whose calls start from opts.
// Per-call options are applied after them and win.
func NewEvaluator(cc CacheConfig, opts ...Option) (*Evaluator, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, any]{
		NumCounters:        cc.NumCounters,
		MaxCost:            cc.MaxCost,
		BufferItems:        cc.BufferItems,
		Metrics:            true,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("continuation: result cache: %w", err)
	}
	return &Evaluator{cache: cache, defaults: opts}, nil
}

func (e *Evaluator) options(opts []Option) []Option {
	all := make([]Option, 0, len(e.defaults)+len(opts))
	all = append(all, e.defaults...)
	return append(all, opts...)
}

// Factorial is the cached form of the package-level Factorial.
func (e *Evaluator) Factorial(x float64, opts ...Option) (Result, error) {
	all := e.options(opts)
	key := newConfig(all...).key("factorial", x)
	if v, ok := e.cache.Get(key); ok {
		return v.(Result), nil
	}

	r, err := Factorial(x, all...)
	if err != nil {
		return Result{}, err
	}
	e.cache.Set(key, r, 1)
	return r, nil
}

// Zeta is the cached form of the package-level Zeta.
func (e *Evaluator) Zeta(s complex128, opts ...Option) (ComplexResult, error) {
	all := e.options(opts)
	key := newConfig(all...).key("zeta", real(s), imag(s))
	if v, ok := e.cache.Get(key); ok {
		return v.(ComplexResult), nil
	}

	z, err := Zeta(s, all...)
	if err != nil {
		return ComplexResult{}, err
	}
	e.cache.Set(key, z, 1)
	return z, nil
}

// Hits is the number of lookups answered from the cache.
func (e *Evaluator) Hits() uint64 {
	return e.cache.Metrics.Hits()
}

// Wait blocks until pending sets are visible to Get.
func (e *Evaluator) Wait() {
	e.cache.Wait()
}

func (e *Evaluator) Close() {
	e.cache.Close()
}
