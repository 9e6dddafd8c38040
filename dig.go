package singleton

import (
	"fmt"

	"go.uber.org/dig"
)

// ProvideTo registers h as a constructor of T in c, so code wired through
// dig can depend on the singleton.
//
// dig memoizes constructor results per container: c calls h.Get the first
// time T is resolved and keeps that value. Clearing the registry does not
// reach into the container, which goes on returning the value it captured
// while h.Get builds a new one. Use ProvideHandleTo when consumers must
// follow clears.
//
//	c := dig.New()
//	if err := singleton.ProvideTo(c, Logger); err != nil {
//	    return err
//	}
//	err := c.Invoke(func(l *Logger) { ... })
//
// For an injectable handle pass its embedded Handle.
func ProvideTo[T any](c *dig.Container, h *Handle[T], opts ...dig.ProvideOption) error {
	if err := c.Provide(h.Func(), opts...); err != nil {
		return fmt.Errorf("provide singleton %s: %w", h.name, err)
	}
	return nil
}

// ProvideHandleTo registers h itself in c. Consumers receive the
// *Handle[T] and call Get when they need the value, so they always see the
// value currently committed to h, including after a Clear.
func ProvideHandleTo[T any](c *dig.Container, h *Handle[T], opts ...dig.ProvideOption) error {
	provide := func() *Handle[T] { return h }
	if err := c.Provide(provide, opts...); err != nil {
		return fmt.Errorf("provide singleton handle %s: %w", h.name, err)
	}
	return nil
}
