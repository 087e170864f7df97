package binding_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/on-the-ground/continuation_go/effects/binding"
	"github.com/on-the-ground/continuation_go/effects/log"
	"github.com/stretchr/testify/assert"
)

func TestBindingEffect_BasicLookup(t *testing.T) {
	ctx := context.Background()

	ctx, endOfLogHandler := log.WithTestEffectHandler(ctx, t)
	defer endOfLogHandler()

	ctx, closeFn := binding.WithEffectHandler(
		ctx,
		1, 1,
		map[string]any{
			"foo": 123,
		},
	)
	defer closeFn()

	v, err := binding.Effect(ctx, "foo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 123 {
		t.Fatalf("expected 123, got %v", v)
	}
}

func TestBindingEffect_KeyNotFound(t *testing.T) {
	ctx := context.Background()
	ctx, endOfLogHandler := log.WithTestEffectHandler(ctx, t)
	defer endOfLogHandler()
	ctx, closeFn := binding.WithEffectHandler(
		ctx,
		1, 1,
		map[string]any{
			"foo": 123,
		},
	)
	defer closeFn()

	_, err := binding.Effect(ctx, "bar")
	if err == nil || !strings.Contains(err.Error(), "key not found") {
		t.Fatalf("expected key-not-found error, got: %v", err)
	}
	if !errors.Is(err, binding.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got: %v", err)
	}
}

func TestBindingEffect_GetTyped(t *testing.T) {
	ctx, closeFn := binding.WithEffectHandler(
		context.Background(),
		1, 1,
		map[string]any{
			"config.continuation.precision": 80,
			"config.continuation.threshold": int64(1000),
		},
	)
	defer closeFn()

	digits, err := binding.GetTyped[int](ctx, "config.continuation.precision")
	assert.NoError(t, err)
	assert.Equal(t, 80, digits)

	_, err = binding.GetTyped[int](ctx, "config.continuation.threshold")
	assert.ErrorContains(t, err, "unexpected type: int64")

	assert.Equal(t, int64(1000), binding.MustGetTyped[int64](ctx, "config.continuation.threshold"))
	assert.Panics(t, func() { binding.MustGetTyped[int](ctx, "config.continuation.tolerance") })
}

func TestBindingEffect_InnerScopeShadowsOuter(t *testing.T) {
	outer, endOuter := binding.WithEffectHandler(context.Background(), 1, 1, map[string]any{"precision": 50})
	defer endOuter()
	inner, endInner := binding.WithEffectHandler(outer, 1, 1, map[string]any{"precision": 120})

	v, err := binding.Effect(inner, "precision")
	assert.NoError(t, err)
	assert.Equal(t, 120, v)

	outer = endInner()
	v, err = binding.Effect(outer, "precision")
	assert.NoError(t, err)
	assert.Equal(t, 50, v)
}

func TestBindingEffect_DelegatesToUpperScope(t *testing.T) {
	ctx := context.Background()

	ctx, endOfLogHandler := log.WithTestEffectHandler(ctx, t)
	defer endOfLogHandler()

	upperCtx, upperClose := binding.WithEffectHandler(
		ctx,
		1, 1,
		map[string]any{
			"upper": "delegated",
		},
	)
	defer upperClose()

	lowerCtx := context.WithValue(upperCtx, "dummy", 1)
	lowerCtx, lowerClose := binding.WithEffectHandler(
		lowerCtx,
		1, 1,
		nil,
	)
	defer lowerClose()

	v, err := binding.Effect(lowerCtx, "upper")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "delegated" {
		t.Fatalf("expected delegated, got %v", v)
	}
}

func TestBindingEffect_ConcurrentPartitionedAccess(t *testing.T) {
	ctx := context.Background()

	ctx, endOfLogHandler := log.WithTestEffectHandler(ctx, t)
	defer endOfLogHandler()

	// prepare key-value map
	bindings := make(map[string]any)
	for i := 0; i < 10; i++ {
		key := fmt.Sprintf("key%d", i)
		bindings[key] = fmt.Sprintf("value%d", i)
	}

	// register the binding handler with partitioning
	ctx, cancel := binding.WithEffectHandler(ctx, 10, 10, bindings)
	defer cancel()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make(map[string]int) // key => hit count
		errs    int
	)

	numRequests := 1000
	wg.Add(numRequests)

	for i := 0; i < numRequests; i++ {
		go func(i int) {
			defer wg.Done()

			// pick a key randomly
			keyIdx := i % len(bindings) // deterministic but shuffled
			key := fmt.Sprintf("key%d", keyIdx)

			v, err := binding.Effect(ctx, key)
			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				t.Errorf("unexpected error for key %s: %v", key, err)
				errs++
				return
			}
			expected := fmt.Sprintf("value%d", keyIdx)
			if v != expected {
				t.Errorf("unexpected value for key %s: got %v, want %v", key, v, expected)
			}
			results[key]++
		}(i)
	}

	wg.Wait()

	// verify that all keys were hit at least once
	for i := 0; i < 10; i++ {
		key := fmt.Sprintf("key%d", i)
		if count := results[key]; count == 0 {
			t.Errorf("key %s was never used", key)
		} else {
			t.Logf("key %s was used %d times", key, count)
		}
	}

	if errs > 0 {
		t.Errorf("Total error count: %d", errs)
	}
}
