package singleton

import (
	"io"

	"github.com/sirupsen/logrus"
)

// RegistryOption configures a Registry.
type RegistryOption interface {
	apply(*registryOptions)
}

// registryOptions holds registry configuration.
type registryOptions struct {
	name       string
	logger     logrus.FieldLogger
	serialized bool
}

// registryOptionFunc adapts a function to RegistryOption.
type registryOptionFunc func(*registryOptions)

func (f registryOptionFunc) apply(opts *registryOptions) {
	f(opts)
}

// WithName sets a human readable name used in logs and metrics.
func WithName(name string) RegistryOption {
	return registryOptionFunc(func(opts *registryOptions) {
		opts.name = name
	})
}

// WithLogger sets the logger the registry reports materializations,
// injections and clears to. Entries are logged at debug level.
func WithLogger(logger logrus.FieldLogger) RegistryOption {
	return registryOptionFunc(func(opts *registryOptions) {
		opts.logger = logger
	})
}

// WithSerializedConstruction makes the registry hold a per-handle lock while
// a value is being created, so concurrent first calls wait for a single
// construction instead of racing.
//
// By default construction is optimistic: several callers may run the
// creation strategy at once and all but one result is discarded.
func WithSerializedConstruction() RegistryOption {
	return registryOptionFunc(func(opts *registryOptions) {
		opts.serialized = true
	})
}

func newRegistryOptions(opts []RegistryOption) *registryOptions {
	o := &registryOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(o)
		}
	}

	if o.logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		o.logger = discard
	}

	return o
}

// HandleOption configures a handle declaration.
type HandleOption interface {
	apply(*handleOptions)
}

// handleOptions holds handle configuration.
type handleOptions struct {
	name string
}

// handleOptionFunc adapts a function to HandleOption.
type handleOptionFunc func(*handleOptions)

func (f handleOptionFunc) apply(opts *handleOptions) {
	f(opts)
}

// Named overrides the name used for the handle in errors and logs.
// By default a handle is named after its value type and declaration site.
func Named(name string) HandleOption {
	return handleOptionFunc(func(opts *handleOptions) {
		opts.name = name
	})
}
