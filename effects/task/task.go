package task

import (
	"context"
	"errors"

	"github.com/on-the-ground/continuation_go/effects"
	effectmodel "github.com/on-the-ground/continuation_go/effects/internal/model"
)

// Payload is an asynchronous operation producing an R.
type Payload[R any] func(context.Context) (R, error)

// WithEffectHandler registers a task handler for operations returning R.
// Tasks run one at a time in submission order.
func WithEffectHandler[R any](
	ctx context.Context,
	bufferSize int,
) (context.Context, func() context.Context) {
	return effects.WithResumableEffectHandler(
		ctx,
		bufferSize,
		effectmodel.EffectTask,
		func(ctx context.Context, asyncFn Payload[R]) (R, error) {
			done := make(chan effects.ResumableResult[R], 1)
			go func() {
				defer close(done)
				if ctx.Err() != nil {
					return
				}
				v, err := asyncFn(ctx)
				done <- effects.ResumableResult[R]{Value: v, Err: err}
			}()

			select {
			case res, ok := <-done:
				if !ok {
					var zero R
					return zero, errors.New("task abandoned before it started")
				}
				return res.Value, res.Err
			case <-ctx.Done():
				var zero R
				return zero, ctx.Err()
			}
		},
	)
}

// Effect submits payload to the task handler in ctx and returns the channel its result arrives on.
func Effect[R any](ctx context.Context, payload Payload[R]) <-chan effects.ResumableResult[R] {
	return effects.PerformResumableEffect[Payload[R], R](ctx, effectmodel.EffectTask, payload)
}

// Await runs payload through the task handler and waits for its result or for ctx to end.
func Await[R any](ctx context.Context, payload Payload[R]) (R, error) {
	var zero R
	select {
	case res, ok := <-Effect(ctx, payload):
		if !ok {
			if err := ctx.Err(); err != nil {
				return zero, err
			}
			return zero, errors.New("task handler closed")
		}
		return res.Value, res.Err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
