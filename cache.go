package singleton

import (
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// cell holds the committed value of a single handle.
type cell[T any] struct {
	value atomic.Pointer[T]

	// build serializes construction when the registry asks for it.
	build sync.Mutex
}

func (c *cell[T]) load() (T, bool) {
	if v := c.value.Load(); v != nil {
		return *v, true
	}

	var zero T
	return zero, false
}

func (c *cell[T]) reset() {
	c.value.Store(nil)
}

// instanceRegistry tracks the value cells of every live handle declared
// against a registry. Reads never lock; installs hold the read side of mu so
// that drain, which holds the write side, empties all cells at once.
type instanceRegistry struct {
	cells      slotSet
	closers    closerList
	mu         sync.RWMutex
	serialized bool

	stats *stats
	log   logrus.FieldLogger
}

// newInstanceRegistry creates an empty instance registry.
func newInstanceRegistry(serialized bool, st *stats, log logrus.FieldLogger) *instanceRegistry {
	return &instanceRegistry{
		serialized: serialized,
		stats:      st,
		log:        log,
	}
}

// track adds a cell so that it is emptied by drain.
func (r *instanceRegistry) track(ref slotRef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cells.add(ref)
}

// len returns the number of live tracked cells.
func (r *instanceRegistry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cells.count()
}

// drain empties every tracked cell and returns the Disposable values they
// held, in commit order. Both happen under the write lock, so a value is
// either returned here or committed after the drain and still tracked.
func (r *instanceRegistry) drain() []Disposable {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cells.resetAll()
	return r.closers.take()
}

// getOrCreate returns the value committed to c, running strategy when there
// is none. The strategy runs outside any registry lock. If another caller
// commits first, the locally built value is dropped and the committed one is
// returned, so every caller observes the same value. A failed strategy
// commits nothing.
func getOrCreate[T any](r *instanceRegistry, c *cell[T], name string, strategy func() (T, error)) (T, error) {
	if v, ok := c.load(); ok {
		r.stats.hits.add(1)
		return v, nil
	}

	if r.serialized {
		c.build.Lock()
		defer c.build.Unlock()

		if v, ok := c.load(); ok {
			r.stats.hits.add(1)
			return v, nil
		}
	}

	v, err := strategy()
	if err != nil {
		r.stats.failures.Add(1)
		var zero T
		return zero, err
	}
	r.stats.constructions.Add(1)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if !c.value.CompareAndSwap(nil, &v) {
		r.stats.discarded.Add(1)
		r.log.WithField("singleton", name).Debug("discarded racing construction")

		// Only drain stores nil and it needs the write lock.
		return *c.value.Load(), nil
	}

	r.closers.add(v)
	r.log.WithField("singleton", name).Debug("singleton materialized")
	return v, nil
}
