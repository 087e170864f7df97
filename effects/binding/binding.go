package binding

import (
	"context"
	"errors"
	"fmt"

	"github.com/on-the-ground/continuation_go/effects"
	effectmodel "github.com/on-the-ground/continuation_go/effects/internal/model"
)

// ErrKeyNotFound is returned when neither this scope nor any enclosing one binds a key.
var ErrKeyNotFound = errors.New("key not found")

// Payload is the key looked up by the Binding effect.
type Payload string

func (bp Payload) PartitionKey() string {
	return string(bp)
}

// WithEffectHandler registers a resumable, partitionable effect handler for bindings.
//
//   - bufferSize and numWorkers below 1 fall back to 1.
//   - Keys missing from bindingMap are looked up in the enclosing binding scope, if any.
//   - The returned function closes the handler and returns the enclosing context.
func WithEffectHandler(
	ctx context.Context,
	bufferSize, numWorkers int,
	bindingMap map[string]any,
) (context.Context, func() context.Context) {
	bh := bindingHandler{
		bindingMap: normalizeBindingMap(bindingMap),
	}
	return effects.WithResumablePartitionableEffectHandler[Payload, any](
		ctx,
		effectmodel.NewEffectScopeConfig(bufferSize, numWorkers),
		effectmodel.EffectBinding,
		bh.handle,
	)
}

// Installed reports whether a binding handler is in scope.
func Installed(ctx context.Context) bool {
	return effects.HasHandler(ctx, effectmodel.EffectBinding)
}

// Effect performs a key-based lookup using the Binding effect handler.
//
// Returns the bound value, or an error wrapping ErrKeyNotFound if no scope binds key.
// Panics if no binding handler is in scope.
func Effect(ctx context.Context, key string) (val any, err error) {
	resultCh := effects.PerformResumableEffect[Payload, any](ctx, effectmodel.EffectBinding, Payload(key))
	select {
	case res, ok := <-resultCh:
		if ok {
			return res.Value, res.Err
		}
	case <-ctx.Done():
	}
	if err = ctx.Err(); err == nil {
		err = fmt.Errorf("binding handler closed while looking up %q", key)
	}
	return nil, err
}

func normalizeBindingMap(bm map[string]any) map[string]any {
	if bm == nil {
		bm = make(map[string]any)
	}
	return bm
}

// delegateBindingEffect asks the enclosing scope, turning a missing handler into ErrKeyNotFound.
func delegateBindingEffect(upperCtx context.Context, key string) (res any, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("%w: %s", ErrKeyNotFound, key)
		}
	}()

	return Effect(upperCtx, key)
}

type bindingHandler struct {
	bindingMap map[string]any
}

// handle answers from the local map, then from the enclosing scope.
func (bh bindingHandler) handle(ctx context.Context, payload Payload) (any, error) {
	key := string(payload)
	v, ok := bh.bindingMap[key]
	if !ok {
		return delegateBindingEffect(ctx, key)
	}
	return v, nil
}
