package handlers

import (
	"context"

	effectmodel "github.com/on-the-ground/continuation_go/effects/internal/model"
)

// NewResumableHandler serves payloads on a single worker.
func NewResumableHandler[P any, R any](
	ctx context.Context,
	bufferSize int,
	handleFn func(context.Context, P) (R, error),
	teardown func(),
) ResumableHandler[P, R] {
	ctx, cancelFn := context.WithCancel(ctx)
	dispatcher := NewSingleQueue(ctx, bufferSize, resume(handleFn))
	return ResumableHandler[P, R]{
		effectScope: newEffectScope(
			dispatcher,
			func() {
				teardown()
				cancelFn()
				<-dispatcher.Done()
			},
		),
	}
}

// NewPartitionableResumableHandler serves payloads on config.NumWorkers workers
// partitioned by PartitionKey.
func NewPartitionableResumableHandler[P effectmodel.Partitionable, R any](
	ctx context.Context,
	config effectmodel.EffectScopeConfig,
	handleFn func(context.Context, P) (R, error),
	teardown func(),
) ResumableHandler[P, R] {
	ctx, cancelFn := context.WithCancel(ctx)
	dispatcher := NewPartitionedQueue(ctx, config.NumWorkers, config.BufferSize, resume(handleFn))
	return ResumableHandler[P, R]{
		effectScope: newEffectScope(
			dispatcher,
			func() {
				teardown()
				cancelFn()
				<-dispatcher.Done()
			},
		),
	}
}

func resume[P any, R any](
	handleFn func(context.Context, P) (R, error),
) func(context.Context, ResumableEffectMessage[P, R]) {
	return func(ctx context.Context, msg ResumableEffectMessage[P, R]) {
		// ResumeCh has room for exactly this one result
		msg.ResumeCh <- ResumableResultFrom(handleFn(ctx, msg.Payload))
		close(msg.ResumeCh)
	}
}

type ResumableHandler[P any, R any] struct {
	*effectScope[ResumableEffectMessage[P, R]]
}

// PerformEffect enqueues payload and returns the channel its result arrives on.
// The channel stays empty if ctx is done before the payload is accepted.
func (rh ResumableHandler[P, R]) PerformEffect(ctx context.Context, payload P) <-chan ResumableResult[R] {
	defer logClosedSend(rh.EffectId, payload)

	// buffered so the worker never blocks on a caller that stopped listening
	resumeCh := make(chan ResumableResult[R], 1)

	msg := ResumableEffectMessage[P, R]{
		Payload:  payload,
		ResumeCh: resumeCh,
	}
	select {
	case <-ctx.Done():
	case rh.dispatcher.GetChannelOf(msg) <- msg:
	}

	return resumeCh
}

// ResumableResult represents the result of handled effects.
type ResumableResult[T any] struct {
	Value T
	Err   error
}

func ResumableResultFrom[R any](res R, err error) ResumableResult[R] {
	return ResumableResult[R]{Value: res, Err: err}
}

var _ effectmodel.Partitionable = ResumableEffectMessage[any, any]{}

type ResumableEffectMessage[P any, R any] struct {
	Payload  P
	ResumeCh chan ResumableResult[R]
}

func (rem ResumableEffectMessage[P, R]) PartitionKey() string {
	if p, ok := any(rem.Payload).(effectmodel.Partitionable); ok {
		return p.PartitionKey()
	}
	return ""
}
