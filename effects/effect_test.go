package effects_test

import (
	"context"
	"testing"

	"github.com/on-the-ground/continuation_go/effects"
	"github.com/on-the-ground/continuation_go/effects/binding"
	"github.com/stretchr/testify/assert"
)

func TestHasHandler_ReflectsScope(t *testing.T) {
	ctx := context.Background()
	assert.False(t, binding.Installed(ctx))

	ctx, end := binding.WithEffectHandler(ctx, 1, 1, map[string]any{"k": 1})
	assert.True(t, binding.Installed(ctx))

	outer := end()
	assert.False(t, binding.Installed(outer))
}

func TestPerformWithoutHandlerPanics(t *testing.T) {
	assert.Panics(t, func() {
		_ = effects.PerformResumableEffect[binding.Payload, any](context.Background(), "missing", binding.Payload("k"))
	})
}
