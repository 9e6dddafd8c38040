package singleton

// injectedCreator runs the factory registered for an injectable handle.
type injectedCreator[T any] struct {
	name string
	slot *factorySlot[T]
}

func (c injectedCreator[T]) create() (T, error) {
	f := getFactory(c.slot)
	if f == nil {
		var zero T
		return zero, NotConfiguredError{Handle: c.name}
	}
	return f()
}

// Injectable is a handle whose factory is supplied at runtime with Inject,
// typically by main or by a test, before the first Get.
//
// Example:
//
//	var Store = singleton.NewInjectable[Store](reg)
//
//	func main() {
//	    Store.MustInject(func() (Store, error) { return NewPostgresStore(dsn) })
//	    ...
//	}
type Injectable[T any] struct {
	*Handle[T]
	slot *factorySlot[T]
}

// NewInjectable declares an injectable handle. It panics with
// ErrRegistryNil when r is nil.
func NewInjectable[T any](r *Registry, opts ...HandleOption) *Injectable[T] {
	h := newHandle[T](r, 2, opts)
	slot := &factorySlot[T]{}
	h.creator = injectedCreator[T]{name: h.name, slot: slot}
	r.initializers.track(weakRef(slot))

	return &Injectable[T]{Handle: h, slot: slot}
}

// Inject registers factory as the sole initializer of the handle. It
// returns an AlreadyConfiguredError if a factory is already registered,
// whether or not it has been used. Of several concurrent calls exactly one
// succeeds.
func (h *Injectable[T]) Inject(factory Factory[T]) error {
	if factory == nil {
		return ErrFactoryNil
	}

	if _, ok := putIfAbsent(h.registry.initializers, h.slot, h.name, factory); !ok {
		return AlreadyConfiguredError{Handle: h.name}
	}
	return nil
}

// InjectValue registers a factory that returns v.
func (h *Injectable[T]) InjectValue(v T) error {
	return h.Inject(func() (T, error) { return v, nil })
}

// MustInject is like Inject but panics on error.
func (h *Injectable[T]) MustInject(factory Factory[T]) {
	if err := h.Inject(factory); err != nil {
		panic(err)
	}
}

// IsConfigured reports whether a factory has been injected.
func (h *Injectable[T]) IsConfigured() bool {
	return getFactory(h.slot) != nil
}
