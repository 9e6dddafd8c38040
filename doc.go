// Package singleton provides lazily created, process-wide values without a
// dependency injection container.
//
// # Overview
//
// A handle declares one singleton. Its value is created on first use and the
// same value is returned from then on:
//
//	reg := singleton.NewRegistry()
//
//	var Config = singleton.New(reg, func() (*Config, error) {
//	    return LoadConfig()
//	})
//
//	cfg, err := Config.Get()
//
// Handles are keys by identity, not by type. Two handles producing *Config
// are two different singletons.
//
// # Injectable Handles
//
// When the value can only be built by the application, declare an
// injectable handle and supply its factory at startup:
//
//	var Store = singleton.NewInjectable[Store](reg)
//
//	func main() {
//	    Store.MustInject(func() (Store, error) {
//	        return NewPostgresStore(os.Getenv("DSN"))
//	    })
//	}
//
// A handle accepts one factory. A second Inject returns an
// AlreadyConfiguredError and the first factory stays in place. Getting an
// injectable handle before Inject returns a NotConfiguredError. Both errors
// name the handle.
//
// # Registries
//
// All state lives in a Registry: the committed value of every handle and
// the injected factory of every injectable handle. Handles keep a pointer to
// the registry they were declared against. Default returns a process-wide
// registry for code that does not need more than one.
//
// Handles are meant to be declared once, usually as package-level
// variables. A registry holds only weak references to its handles, so a
// handle that becomes unreachable is released with its value, but declaring
// handles per request defeats the point of a singleton.
//
// Clear empties a registry so that every handle behaves as freshly
// declared. The singletontest package wraps this for tests.
//
// # Thread Safety
//
// All operations are safe for concurrent use. Reading a committed value
// takes no lock. When several goroutines find no value at the same time,
// each of them may run the creation strategy; the first to finish commits
// its value and the others drop theirs and return the committed one.
// Factories that must not run more than once should be side-effect free or
// be declared against a registry created with WithSerializedConstruction.
//
// # Error Handling
//
// Errors returned by a factory are returned unchanged from Get and nothing
// is committed, so the next Get runs the factory again. Panics are not
// recovered.
//
// Configuration errors can be matched with errors.Is:
//   - ErrAlreadyConfigured: Inject called on a handle that has a factory
//   - ErrNotConfigured: Get called on an injectable handle without one
package singleton
