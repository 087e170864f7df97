package handlers

import (
	"context"
)

// NewFireAndForgetHandler serves payloads on a single worker without replying.
// Close cancels the worker, waits for it to handle what was already
// queued, and then runs teardown.
func NewFireAndForgetHandler[P any](
	ctx context.Context,
	bufferSize int,
	handleFn func(context.Context, P),
	teardown func(),
) FireAndForgetHandler[P] {
	ctx, cancelFn := context.WithCancel(ctx)
	dispatcher := NewSingleQueue(ctx, bufferSize, handleFn)
	return FireAndForgetHandler[P]{
		effectScope: newEffectScope(
			dispatcher,
			func() {
				cancelFn()
				<-dispatcher.Done()
				teardown()
			},
		),
	}
}

type FireAndForgetHandler[P any] struct {
	*effectScope[P]
}

func (ffh FireAndForgetHandler[P]) FireAndForgetEffect(ctx context.Context, payload P) {
	defer logClosedSend(ffh.EffectId, payload)

	select {
	case <-ctx.Done():
	case ffh.dispatcher.GetChannelOf(payload) <- payload:
	}
}
