package singleton

import (
	"errors"
	"fmt"
	"reflect"
)

// ========================================
// Core Error Values (Sentinel Errors)
// ========================================
// Match these with errors.Is. The typed errors below wrap them and add the
// handle name.

var (
	// Configuration errors.
	ErrAlreadyConfigured = errors.New("singleton already injected")
	ErrNotConfigured     = errors.New("singleton not injected")

	// Declaration errors.
	ErrRegistryNil = errors.New("singleton registry cannot be nil")
	ErrFactoryNil  = errors.New("singleton factory cannot be nil")
)

var (
	_ error = AlreadyConfiguredError{}
	_ error = NotConfiguredError{}
)

// AlreadyConfiguredError is returned by Inject when a factory is already
// registered for the handle, whether or not it has been used yet.
type AlreadyConfiguredError struct {
	Handle string
}

func (e AlreadyConfiguredError) Error() string {
	return fmt.Sprintf("singleton %s has already been injected", e.Handle)
}

func (e AlreadyConfiguredError) Is(target error) bool {
	return target == ErrAlreadyConfigured
}

// NotConfiguredError is returned when an injectable handle is materialized
// before any factory was injected.
type NotConfiguredError struct {
	Handle string
}

func (e NotConfiguredError) Error() string {
	return fmt.Sprintf("singleton %s has not been injected", e.Handle)
}

func (e NotConfiguredError) Is(target error) bool {
	return target == ErrNotConfigured
}

// IsAlreadyConfigured reports whether err is an already-injected error.
func IsAlreadyConfigured(err error) bool {
	return errors.Is(err, ErrAlreadyConfigured)
}

// IsNotConfigured reports whether err is a not-injected error.
func IsNotConfigured(err error) bool {
	return errors.Is(err, ErrNotConfigured)
}

// formatType returns a short readable name for t.
func formatType(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind() {
	case reflect.Pointer:
		elem := t.Elem()
		if elem.PkgPath() != "" && elem.Name() != "" {
			return "*" + elem.Name()
		}
		return t.String()
	case reflect.Slice:
		elem := t.Elem()
		if elem.PkgPath() != "" && elem.Name() != "" {
			return "[]" + elem.Name()
		}
		return t.String()
	case reflect.Func:
		return t.String()
	default:
		if t.Name() != "" {
			return t.Name()
		}
		return t.String()
	}
}
