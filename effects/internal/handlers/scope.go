package handlers

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// effectScope owns a dispatcher and its teardown. Close is idempotent.
type effectScope[T any] struct {
	EffectId   string
	dispatcher WorkerDispatcher[T]
	closeOnce  sync.Once
	closeFn    func()
}

func (es *effectScope[T]) Close() {
	es.closeOnce.Do(func() {
		es.closeFn()
		zap.L().Debug("effect scope closed", zap.String("effectId", es.EffectId))
	})
}

func newEffectScope[T any](
	dispatcher WorkerDispatcher[T],
	teardown func(),
) *effectScope[T] {
	return &effectScope[T]{
		EffectId:   uuid.New().String(),
		dispatcher: dispatcher,
		closeFn:    teardown,
	}
}

func logClosedSend(effectId string, payload any) {
	if r := recover(); r != nil {
		zap.L().Warn("effect sent to a closed handler",
			zap.String("effectId", effectId),
			zap.Any("payload", payload),
			zap.Any("recovered", r),
		)
	}
}
