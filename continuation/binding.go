package continuation

import (
	"context"
	"errors"
	"fmt"

	"github.com/on-the-ground/continuation_go/effects/binding"
	"github.com/on-the-ground/continuation_go/effects/configkeys"
)

// OptionsFromBinding reads precision, threshold and tolerance from the
// binding effect in ctx. Keys no scope binds are skipped, as are zero
// threshold and tolerance values. A bound value of the wrong type, or a
// tolerance that is negative or not finite, is an error. Without a binding handler in scope the result is empty.
//
// Bound types: precision int, threshold int64, tolerance float64.
func OptionsFromBinding(ctx context.Context) ([]Option, error) {
	if !binding.Installed(ctx) {
		return nil, nil
	}

	var opts []Option

	precision, found, err := lookup[int](ctx, configkeys.ConfigContinuationPrecision)
	if err != nil {
		return nil, err
	}
	if found {
		opts = append(opts, WithPrecision(precision))
	}

	threshold, found, err := lookup[int64](ctx, configkeys.ConfigContinuationThreshold)
	if err != nil {
		return nil, err
	}
	if found && threshold > 0 {
		opts = append(opts, WithThreshold(threshold))
	}

	tolerance, found, err := lookup[float64](ctx, configkeys.ConfigContinuationTolerance)
	if err != nil {
		return nil, err
	}
	if found && !validTolerance(tolerance) {
		return nil, fmt.Errorf("continuation: binding %s: want a finite non-negative tolerance, got %v",
			configkeys.ConfigContinuationTolerance, tolerance)
	}
	if found && tolerance > 0 {
		opts = append(opts, WithIntegerTolerance(tolerance))
	}

	return opts, nil
}

func lookup[T any](ctx context.Context, key string) (T, bool, error) {
	v, err := binding.GetTyped[T](ctx, key)
	switch {
	case errors.Is(err, binding.ErrKeyNotFound):
		return v, false, nil
	case err != nil:
		return v, false, fmt.Errorf("continuation: binding %s: %w", key, err)
	}
	return v, true, nil
}
