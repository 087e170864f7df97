package effectmodel

import "errors"

type EffectEnum string

const (
	EffectLog         EffectEnum = "continuation_go_effect_enum_log"
	EffectConcurrency EffectEnum = "continuation_go_effect_enum_concurrency"
	EffectBinding     EffectEnum = "continuation_go_effect_enum_binding"
	EffectTask        EffectEnum = "continuation_go_effect_enum_task"
)

// ErrNoEffectHandler is returned when no handler for an effect is registered in the context.
var ErrNoEffectHandler = errors.New("no effect handler registered")

type EffectScopeConfig struct {
	BufferSize int // default: 1
	NumWorkers int // default: 1
}

func NewEffectScopeConfig(bufferSize int, numWorkers int) EffectScopeConfig {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	if numWorkers <= 0 {
		numWorkers = 1
	}
	return EffectScopeConfig{
		BufferSize: bufferSize,
		NumWorkers: numWorkers,
	}
}

type Partitionable interface {
	PartitionKey() string
}
