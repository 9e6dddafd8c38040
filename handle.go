package singleton

import (
	"fmt"
	"path/filepath"
	"reflect"
	"runtime"
)

// creator is the creation strategy of a handle.
type creator[T any] interface {
	create() (T, error)
}

// fixedCreator runs a factory given at declaration time.
type fixedCreator[T any] struct {
	factory Factory[T]
}

func (c fixedCreator[T]) create() (T, error) {
	return c.factory()
}

// Handle is one declared singleton: the slot for a value of type T that is
// created lazily and committed once per registry clear.
//
// Handles are compared by identity. Two handles of the same type are
// different singletons.
//
// Example:
//
//	var clock = singleton.New(reg, func() (*Clock, error) {
//	    return NewClock(), nil
//	})
//
//	c, err := clock.Get()
type Handle[T any] struct {
	name     string
	registry *Registry
	value    *cell[T]
	creator  creator[T]
}

// New declares a handle whose value is built by factory. Declare handles
// once, typically as package-level variables. It panics with
// ErrRegistryNil or ErrFactoryNil when either is missing.
func New[T any](r *Registry, factory Factory[T], opts ...HandleOption) *Handle[T] {
	if factory == nil {
		panic(ErrFactoryNil)
	}

	h := newHandle[T](r, 2, opts)
	h.creator = fixedCreator[T]{factory: factory}
	return h
}

// newHandle builds and tracks the handle shell. skip is the number of
// frames between newHandle and the declaration site.
func newHandle[T any](r *Registry, skip int, opts []HandleOption) *Handle[T] {
	if r == nil {
		panic(ErrRegistryNil)
	}

	o := &handleOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(o)
		}
	}

	name := o.name
	if name == "" {
		name = declarationName(reflect.TypeFor[T](), skip+1)
	}

	h := &Handle[T]{
		name:     name,
		registry: r,
		value:    &cell[T]{},
	}
	r.instances.track(weakRef(h.value))
	return h
}

// declarationName names a handle after its type and the file and line
// that declared it, skip frames above declarationName.
func declarationName(t reflect.Type, skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return formatType(t)
	}
	return fmt.Sprintf("%s (%s:%d)", formatType(t), filepath.Base(file), line)
}

// Name returns the handle name used in errors and logs.
func (h *Handle[T]) Name() string {
	return h.name
}

// Registry returns the registry the handle was declared against.
func (h *Handle[T]) Registry() *Registry {
	return h.registry
}

// String implements fmt.Stringer.
func (h *Handle[T]) String() string {
	return h.name
}

// Get returns the singleton value, creating it on first call. Once any
// call returns successfully, every later call returns the same value until
// the registry is cleared.
//
// Errors returned by the creation strategy are returned unchanged and
// nothing is stored, so the next call tries again.
func (h *Handle[T]) Get() (T, error) {
	return getOrCreate(h.registry.instances, h.value, h.name, h.creator.create)
}

// Invoke is an alias for Get.
func (h *Handle[T]) Invoke() (T, error) {
	return h.Get()
}

// MustGet is like Get but panics if the value cannot be created.
func (h *Handle[T]) MustGet() T {
	v, err := h.Get()
	if err != nil {
		panic(err)
	}
	return v
}

// Func returns Get as a function value, for APIs that take a provider
// function.
func (h *Handle[T]) Func() func() (T, error) {
	return h.Get
}

// IsMaterialized reports whether a value is currently committed.
func (h *Handle[T]) IsMaterialized() bool {
	_, ok := h.value.load()
	return ok
}
