package singleton

import "sync/atomic"

// defaultRegistry holds the process-wide registry returned by Default.
var defaultRegistry atomic.Pointer[Registry]

// Default returns the process-wide registry, creating it on first use.
// It is a convenience for package-level handle declarations; code that
// wants isolation should create its own registry with NewRegistry.
func Default() *Registry {
	if r := defaultRegistry.Load(); r != nil {
		return r
	}

	r := NewRegistry(WithName("default"))
	if defaultRegistry.CompareAndSwap(nil, r) {
		return r
	}
	return defaultRegistry.Load()
}

// SetDefault replaces the registry returned by Default. This is similar to
// slog.SetDefault. Handles already declared keep the registry they were
// declared against. Passing nil makes the next Default call create a new
// registry.
func SetDefault(r *Registry) {
	defaultRegistry.Store(r)
}
