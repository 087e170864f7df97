package concurrency

import (
	"context"
	"sync"

	"github.com/on-the-ground/continuation_go/effects"
	effectmodel "github.com/on-the-ground/continuation_go/effects/internal/model"
	"github.com/on-the-ground/continuation_go/effects/log"
)

// WithEffectHandler installs a fire-and-forget concurrency effect handler.
//
// Effect(ctx, fns...) then runs each function in its own supervised goroutine.
//
//   - Cancelling the parent context cancels every child context.
//   - Ending the scope blocks until every child has returned.
//   - A panicking child is recovered and logged when a log handler is in scope.
func WithEffectHandler(
	ctx context.Context,
	bufferSize int,
) (context.Context, func() context.Context) {
	sv := &supervisor{
		doneCh: make(chan struct{}),
	}
	sv.watchParentCancel(ctx)

	return effects.WithFireAndForgetEffectHandler(
		ctx,
		bufferSize,
		effectmodel.EffectConcurrency,
		sv.spawnConcurrentChildren,
		func() {
			sv.waitChildren(ctx)
			close(sv.doneCh)
		},
	)
}

// Effect spawns fns under the supervisor in ctx.
func Effect(ctx context.Context, fns ...func(context.Context)) {
	effects.FireAndForgetEffect[Payload](ctx, effectmodel.EffectConcurrency, fns)
}

type Payload []func(context.Context)

// supervisor tracks the children spawned by one concurrency scope.
type supervisor struct {
	wg              sync.WaitGroup
	mu              sync.Mutex
	childrenCancels []context.CancelFunc
	doneCh          chan struct{}
}

// watchParentCancel cancels every child once the parent context ends.
func (s *supervisor) watchParentCancel(parentContext context.Context) {
	go func() {
		select {
		case <-parentContext.Done():
			logIfInstalled(parentContext, log.LogInfo, "context cancelled, cancelling children", nil)
			s.mu.Lock()
			defer s.mu.Unlock()
			for _, cancelFn := range s.childrenCancels {
				cancelFn()
			}
		case <-s.doneCh:
		}
	}()
}

// spawnConcurrentChildren starts each function in its own goroutine with its own context.
func (s *supervisor) spawnConcurrentChildren(
	parentContext context.Context,
	functions Payload,
) {
	ready := sync.WaitGroup{}

	for _, fn := range functions {
		childCtx, cancel := context.WithCancel(context.Background())
		s.mu.Lock()
		s.childrenCancels = append(s.childrenCancels, cancel)
		s.mu.Unlock()
		s.wg.Add(1)
		ready.Add(1)
		go func(f func(context.Context), ctx context.Context) {
			defer s.wg.Done()
			defer cancel()
			defer func() {
				if r := recover(); r != nil {
					logIfInstalled(parentContext, log.LogError, "panic in child routine", map[string]interface{}{
						"error": r,
					})
				}
			}()
			ready.Done()
			f(ctx)
		}(fn, childCtx)
	}

	ready.Wait()
}

// waitChildren blocks until all child goroutines complete.
func (s *supervisor) waitChildren(ctx context.Context) {
	logIfInstalled(ctx, log.LogDebug, "waiting for all routines to finish", nil)
	s.wg.Wait()
	logIfInstalled(ctx, log.LogDebug, "all routines finished", nil)
}

func logIfInstalled(ctx context.Context, level log.LogLevel, msg string, fields map[string]interface{}) {
	if log.Installed(ctx) {
		log.LogEff(ctx, level, msg, fields)
	}
}
