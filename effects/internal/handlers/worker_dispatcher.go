package handlers

import (
	"context"
	"sync"

	effectmodel "github.com/on-the-ground/continuation_go/effects/internal/model"
)

// WorkerDispatcher routes a message to the channel of the worker that owns it.
type WorkerDispatcher[T any] interface {
	GetChannelOf(msg T) chan T
	// Done is closed once every worker has handled what was queued when
	// the context ended and has exited.
	Done() <-chan struct{}
}

type singleQueue[T any] struct {
	effectCh chan T
	done     chan struct{}
}

func (q singleQueue[T]) GetChannelOf(_ T) chan T {
	return q.effectCh
}

func (q singleQueue[T]) Done() <-chan struct{} {
	return q.done
}

// NewSingleQueue starts one worker; messages are handled in send order.
func NewSingleQueue[T any](
	ctx context.Context,
	bufferSize int,
	handleFn func(context.Context, T),
) WorkerDispatcher[T] {
	effCh := make(chan T, bufferSize)
	ready := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		work(ctx, effCh, handleFn, func() { close(ready) })
	}()

	<-ready
	return singleQueue[T]{effectCh: effCh, done: done}
}

type partitionedQueue[T effectmodel.Partitionable] struct {
	effectChs []chan T
	done      chan struct{}
}

func (pq partitionedQueue[T]) GetChannelOf(msg T) chan T {
	return pq.effectChs[getIndexByHash(msg, len(pq.effectChs))]
}

func (pq partitionedQueue[T]) Done() <-chan struct{} {
	return pq.done
}

// NewPartitionedQueue starts numWorkers workers. Messages sharing a
// PartitionKey always land on the same worker and keep their order.
func NewPartitionedQueue[T effectmodel.Partitionable](
	ctx context.Context,
	numWorkers, bufferSize int,
	handleFn func(context.Context, T),
) WorkerDispatcher[T] {
	channels := make([]chan T, numWorkers)
	ready := sync.WaitGroup{}
	running := sync.WaitGroup{}
	for i := range channels {
		ready.Add(1)
		running.Add(1)
		channels[i] = make(chan T, bufferSize)
		go func(ch chan T) {
			defer running.Done()
			work(ctx, ch, handleFn, ready.Done)
		}(channels[i])
	}
	ready.Wait()

	done := make(chan struct{})
	go func() {
		running.Wait()
		close(done)
	}()
	return partitionedQueue[T]{effectChs: channels, done: done}
}

// work handles messages until ctx ends, then handles whatever is still
// queued and closes ch.
func work[T any](ctx context.Context, ch chan T, handleFn func(context.Context, T), started func()) {
	defer close(ch)
	started()
	for {
		select {
		case msg := <-ch:
			handleFn(ctx, msg)
		case <-ctx.Done():
			for {
				select {
				case msg := <-ch:
					handleFn(ctx, msg)
				default:
					return
				}
			}
		}
	}
}
