package singleton

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Registry owns the state behind a set of handles: the committed value of
// every handle and the injected factory of every injectable handle.
//
// Handles are declared against a registry and keep a pointer to it, so
// independent registries never share state. This lets parallel test suites
// each use their own registry.
//
// All methods are safe for concurrent use.
type Registry struct {
	id   string
	name string

	instances    *instanceRegistry
	initializers *initializerRegistry

	stats *stats
	log   logrus.FieldLogger
}

// Stats is a snapshot of registry activity.
type Stats struct {
	// Handles is the number of live handles declared against the registry.
	// Handles that are no longer reachable stop counting once collected.
	Handles int
	// Injectables is the number of injectable handles among them.
	Injectables int
	// Hits counts Get calls served from a committed value.
	Hits int64
	// Constructions counts successful runs of a creation strategy,
	// including runs whose result was discarded.
	Constructions int64
	// Failures counts creation strategies that returned an error.
	Failures int64
	// Discarded counts constructions that lost a race to another caller.
	Discarded int64
	// Injections counts successful Inject calls.
	Injections int64
	// RejectedInjections counts Inject calls that found a factory in place.
	RejectedInjections int64
	// Clears counts Clear and Close calls.
	Clears int64
	// Disposables is the number of materialized values Close would close.
	Disposables int
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	o := newRegistryOptions(opts)

	id := uuid.NewString()
	name := o.name
	if name == "" {
		name = id
	}

	log := o.logger.WithFields(logrus.Fields{
		"registry": name,
		"id":       id,
	})

	st := &stats{}

	return &Registry{
		id:           id,
		name:         name,
		instances:    newInstanceRegistry(o.serialized, st, log),
		initializers: newInitializerRegistry(st, log),
		stats:        st,
		log:          log,
	}
}

// ID returns the unique id of the registry.
func (r *Registry) ID() string {
	return r.id
}

// Name returns the registry name, which defaults to its id.
func (r *Registry) Name() string {
	return r.name
}

// String implements fmt.Stringer.
func (r *Registry) String() string {
	if r.name == r.id {
		return fmt.Sprintf("singleton.Registry(%s)", r.id)
	}
	return fmt.Sprintf("singleton.Registry(%s %s)", r.name, r.id)
}

// Clear empties both the instance and the initializer registry. Every
// handle declared against r behaves as freshly declared afterwards: the
// next Inject succeeds and the next Get constructs again. Committed values
// are dropped without being closed.
//
// Each registry is emptied atomically, but the two are emptied one after
// the other. Clear is meant for resets between tests, not for use while
// other goroutines are calling handles.
func (r *Registry) Clear() {
	r.reset()
}

// Close clears the registry like Clear and then closes every value it
// dropped that implements Disposable, most recently materialized first.
// Errors from all closers are joined.
//
// Values committed while Close runs, for instance by a Close method that
// reads another handle, stay in the registry and are closed by the next
// Close.
func (r *Registry) Close() error {
	err := closeAll(r.reset())
	if err != nil {
		r.log.WithError(err).Warn("closing singletons")
	}
	return err
}

// reset empties both registries and returns the dropped Disposable values.
func (r *Registry) reset() []Disposable {
	closers := r.instances.drain()
	r.initializers.clear()
	r.stats.clears.Add(1)
	r.log.Debug("registry cleared")
	return closers
}

// Stats returns a snapshot of the registry counters.
func (r *Registry) Stats() Stats {
	return Stats{
		Handles:            r.instances.len(),
		Injectables:        r.initializers.len(),
		Hits:               r.stats.hits.load(),
		Constructions:      r.stats.constructions.Load(),
		Failures:           r.stats.failures.Load(),
		Discarded:          r.stats.discarded.Load(),
		Injections:         r.stats.injections.Load(),
		RejectedInjections: r.stats.rejected.Load(),
		Clears:             r.stats.clears.Load(),
		Disposables:        r.instances.closers.len(),
	}
}
