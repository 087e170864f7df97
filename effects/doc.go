// Package effects scopes side effects to handlers carried by a context.
//
// A handler is registered with one of the With*EffectHandler functions, which
// returns the derived context and a function ending the handler's scope.
// Code below that context performs the effect through PerformResumableEffect
// (the handler replies on a channel) or FireAndForgetEffect (no reply).
// Performing an effect with no handler in scope panics.
//
// The sub-packages provide the handlers the evaluators and the command line
// use:
//   - binding: scoped configuration lookup with fallback to the enclosing scope
//   - log: structured logging through zap
//   - task: asynchronous evaluation with a result channel
//   - concurrency: supervised fan-out of goroutines
//
// Example:
//
//	ctx, endLog := log.WithZapEffectHandler(ctx, 16, zap.L())
//	defer endLog()
//
//	ctx, endBinding := binding.WithEffectHandler(ctx, 1, 1, map[string]any{"precision": 50})
//	defer endBinding()
//
//	digits, err := binding.GetTyped[int](ctx, "precision")
package effects
