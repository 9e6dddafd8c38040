package singleton

import (
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Factory creates the value of a singleton.
type Factory[T any] func() (T, error)

// factorySlot holds the injected factory of a single injectable handle.
type factorySlot[T any] struct {
	factory atomic.Pointer[Factory[T]]
}

func (s *factorySlot[T]) reset() {
	s.factory.Store(nil)
}

// initializerRegistry tracks the factory slots of every live injectable
// handle declared against a registry. Like instanceRegistry, writes hold the
// read side of mu and clear holds the write side.
type initializerRegistry struct {
	slots slotSet
	mu    sync.RWMutex

	stats *stats
	log   logrus.FieldLogger
}

// newInitializerRegistry creates an empty initializer registry.
func newInitializerRegistry(st *stats, log logrus.FieldLogger) *initializerRegistry {
	return &initializerRegistry{
		stats: st,
		log:   log,
	}
}

// track adds a slot so that it is emptied by clear.
func (r *initializerRegistry) track(ref slotRef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots.add(ref)
}

// len returns the number of live tracked slots.
func (r *initializerRegistry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.slots.count()
}

// clear empties every tracked slot.
func (r *initializerRegistry) clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.slots.resetAll()
}

// putIfAbsent stores f in s unless a factory is already there. It returns
// the factory that was already present and false in that case, or nil and
// true when this call performed the registration.
func putIfAbsent[T any](r *initializerRegistry, s *factorySlot[T], name string, f Factory[T]) (Factory[T], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if s.factory.CompareAndSwap(nil, &f) {
		r.stats.injections.Add(1)
		r.log.WithField("singleton", name).Debug("singleton injected")
		return nil, true
	}

	r.stats.rejected.Add(1)
	return *s.factory.Load(), false
}

// getFactory returns the factory stored in s, or nil.
func getFactory[T any](s *factorySlot[T]) Factory[T] {
	if f := s.factory.Load(); f != nil {
		return *f
	}
	return nil
}
