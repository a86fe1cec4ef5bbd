// Package fetch provides a generic request/loading/error/result wrapper
// around a no-argument asynchronous operation, mirroring how screens load
// remote data.
package fetch

import (
	"context"
	"fmt"
	"sync"
)

// Fetcher tracks one logical invocation of an operation producing T.
// Overlapping Run calls are the caller's responsibility to avoid: there is no
// internal de-duplication and no cancellation of in-flight calls, so a stale
// response can overwrite a newer one if two runs race.
type Fetcher[T any] struct {
	fn      func(ctx context.Context) (T, error)
	autoRun bool

	mu      sync.Mutex
	data    T
	err     error
	loading bool
	started bool
}

// Option configures a Fetcher.
type Option func(*options)

type options struct {
	autoRun bool
}

// WithAutoRun makes the first Activate call execute the operation once.
func WithAutoRun() Option {
	return func(o *options) { o.autoRun = true }
}

// New builds a Fetcher for the given operation.
func New[T any](fn func(ctx context.Context) (T, error), opts ...Option) *Fetcher[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Fetcher[T]{fn: fn, autoRun: o.autoRun}
}

// Run executes the operation: loading is set, the prior error cleared, and on
// success the result is stored and returned with ok=true. On failure the
// error is stored and the zero value returned with ok=false; failures are
// never re-raised, so callers must check ok or Err.
func (f *Fetcher[T]) Run(ctx context.Context) (T, bool) {
	f.mu.Lock()
	f.loading = true
	f.err = nil
	f.mu.Unlock()

	result, err := f.fn(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = false
	if err != nil {
		f.err = fmt.Errorf("fetch failed: %w", err)
		var zero T
		return zero, false
	}
	f.data = result
	return result, true
}

// Activate runs the operation once if the Fetcher was built with auto-run.
// Subsequent calls are no-ops.
func (f *Fetcher[T]) Activate(ctx context.Context) {
	f.mu.Lock()
	run := f.autoRun && !f.started
	f.started = true
	f.mu.Unlock()
	if run {
		f.Run(ctx)
	}
}

// Reset clears result, error, and the loading flag synchronously without
// invoking the operation.
func (f *Fetcher[T]) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	var zero T
	f.data = zero
	f.err = nil
	f.loading = false
}

// Data returns the last stored result (zero value if none).
func (f *Fetcher[T]) Data() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data
}

// Err returns the stored error from the last failed run, or nil.
func (f *Fetcher[T]) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Loading reports whether a run is in progress.
func (f *Fetcher[T]) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}
