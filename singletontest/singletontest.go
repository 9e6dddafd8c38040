// Package singletontest isolates singleton registries between tests.
package singletontest

import (
	"testing"

	"github.com/junioryono/singleton"
)

// Isolate clears r now and again when t and its subtests finish, so no
// committed value or injected factory leaks into or out of the test.
//
//	func TestStore(t *testing.T) {
//	    singletontest.Isolate(t, app.Registry)
//	    app.Store.MustInject(newFakeStore)
//	    ...
//	}
//
// Tests that share a registry must not run in parallel with each other.
func Isolate(tb testing.TB, r *singleton.Registry) {
	tb.Helper()

	r.Clear()
	tb.Cleanup(r.Clear)
}

// IsolateDefault isolates the registry returned by singleton.Default.
func IsolateDefault(tb testing.TB) {
	tb.Helper()
	Isolate(tb, singleton.Default())
}

// NewRegistry returns a fresh registry named after the test that is
// cleared when the test finishes. Tests using their own registry may run
// in parallel.
func NewRegistry(tb testing.TB, opts ...singleton.RegistryOption) *singleton.Registry {
	tb.Helper()

	opts = append([]singleton.RegistryOption{singleton.WithName(tb.Name())}, opts...)
	r := singleton.NewRegistry(opts...)
	Isolate(tb, r)
	return r
}
