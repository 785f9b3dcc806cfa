package rudder

import (
	"context"
	"time"

	"github.com/zoobzio/pipz"
)

// Option configures the dispatch pipeline of a Store.
// Pipeline options wrap the reducing terminal with middleware that can
// observe, transform, gate, or rate-limit dispatches before the reducer
// runs. A middleware error aborts the dispatch and leaves state unchanged.
//
// Instance configuration (seed state, metrics) is handled via chainable
// methods on the Store after New.
type Option[S any] func(pipz.Chainable[*Request[S]]) pipz.Chainable[*Request[S]]

// buildPipeline wraps a terminal with pipeline options.
func buildPipeline[S any](terminal Terminal[S], opts []Option[S]) pipz.Chainable[*Request[S]] {
	var pipeline pipz.Chainable[*Request[S]] = terminal
	for _, opt := range opts {
		pipeline = opt(pipeline)
	}
	return pipeline
}

// WithMiddleware wraps the pipeline with a sequence of processors.
// Processors execute in order, with the reducing terminal last.
//
// Use the Use* functions to create processors for common patterns, or
// provide custom pipz.Chainable implementations directly.
//
// Example:
//
//	store := rudder.New(reducer,
//	    rudder.WithMiddleware(
//	        rudder.UseEffect[Panel]("audit", auditFn),
//	        rudder.UseRateLimit[Panel](100, 10),
//	    ),
//	)
func WithMiddleware[S any](processors ...pipz.Chainable[*Request[S]]) Option[S] {
	return func(p pipz.Chainable[*Request[S]]) pipz.Chainable[*Request[S]] {
		all := make([]pipz.Chainable[*Request[S]], 0, len(processors)+1)
		all = append(all, processors...)
		all = append(all, p)
		return pipz.NewSequence("middleware", all...)
	}
}

// WithErrorHandler adds error observation to the pipeline.
// Errors from middleware are passed to the handler for logging, metrics,
// or alerting, but still abort the dispatch. Use this for observability,
// not recovery.
func WithErrorHandler[S any](handler pipz.Chainable[*pipz.Error[*Request[S]]]) Option[S] {
	return func(p pipz.Chainable[*Request[S]]) pipz.Chainable[*Request[S]] {
		return pipz.NewHandle("error-handler", p, handler)
	}
}

// UseEffect creates a processor that performs a side effect.
// The request passes through unchanged. Use for logging, metrics, or
// notifications that should not affect the dispatched action.
func UseEffect[S any](name string, fn func(context.Context, *Request[S]) error) pipz.Chainable[*Request[S]] {
	return pipz.Effect(pipz.Name(name), fn)
}

// UseTransform creates a processor that transforms the request.
// Cannot fail. Use for pure action rewrites that always succeed.
func UseTransform[S any](name string, fn func(context.Context, *Request[S]) *Request[S]) pipz.Chainable[*Request[S]] {
	return pipz.Transform(pipz.Name(name), fn)
}

// UseApply creates a processor that can transform the request and fail.
// A returned error aborts the dispatch with state unchanged.
func UseApply[S any](name string, fn func(context.Context, *Request[S]) (*Request[S], error)) pipz.Chainable[*Request[S]] {
	return pipz.Apply(pipz.Name(name), fn)
}

// UseMutate creates a processor that conditionally transforms the request.
// The transformer is only applied if the condition returns true.
func UseMutate[S any](name string, transformer func(context.Context, *Request[S]) *Request[S], condition func(context.Context, *Request[S]) bool) pipz.Chainable[*Request[S]] {
	return pipz.Mutate(pipz.Name(name), transformer, condition)
}

// UseFilter wraps a processor with a condition.
// If the condition returns false, the request skips the wrapped processor
// and passes through unchanged.
func UseFilter[S any](name string, condition func(context.Context, *Request[S]) bool, processor pipz.Chainable[*Request[S]]) pipz.Chainable[*Request[S]] {
	return pipz.NewFilter(pipz.Name(name), condition, processor)
}

// UseRetry wraps a processor with retry logic.
// Intended for effect middleware that talks to external systems; reducers
// themselves are total and never need retrying.
func UseRetry[S any](maxAttempts int, processor pipz.Chainable[*Request[S]]) pipz.Chainable[*Request[S]] {
	return pipz.NewRetry("retry", processor, maxAttempts)
}

// UseTimeout wraps a processor with a deadline.
// If the processor takes longer than the specified duration, the dispatch
// fails with a timeout error and state is unchanged.
func UseTimeout[S any](d time.Duration, processor pipz.Chainable[*Request[S]]) pipz.Chainable[*Request[S]] {
	return pipz.NewTimeout("timeout", processor, d)
}

// UseRateLimit creates a rate limiting processor.
// Uses a token bucket with the specified rate (dispatches per second) and
// burst size. When tokens are exhausted, dispatches wait for availability.
// Useful ahead of pump-driven dispatches from chatty sources.
func UseRateLimit[S any](rate float64, burst int) pipz.Chainable[*Request[S]] {
	return pipz.NewRateLimiter[*Request[S]]("rate-limiter", rate, burst)
}
