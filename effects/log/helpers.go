package log

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// WithTestEffectHandler installs a debug-level logger that writes through t.Log,
// so the output of a passing test stays quiet.
func WithTestEffectHandler(
	ctx context.Context,
	t zaptest.TestingT,
) (context.Context, func() context.Context) {
	return WithZapEffectHandler(
		ctx,
		1,
		zaptest.NewLogger(t, zaptest.Level(zap.DebugLevel)),
	)
}
