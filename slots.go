package singleton

import "weak"

// resetter is a per-handle slot a registry can empty on Clear.
type resetter interface {
	reset()
}

// slotRef is a registry's reference to a handle slot. The reference is weak:
// once the handle is unreachable the slot is collected and the reference
// reports itself dead.
type slotRef interface {
	// reset empties the slot and reports whether it is still alive.
	reset() bool
	live() bool
}

type weakSlot[S any, P interface {
	*S
	resetter
}] struct {
	ptr weak.Pointer[S]
}

func (w weakSlot[S, P]) reset() bool {
	s := w.ptr.Value()
	if s == nil {
		return false
	}
	P(s).reset()
	return true
}

func (w weakSlot[S, P]) live() bool {
	return w.ptr.Value() != nil
}

// weakRef returns a weak slotRef to s.
func weakRef[S any, P interface {
	*S
	resetter
}](s P) slotRef {
	return weakSlot[S, P]{ptr: weak.Make((*S)(s))}
}

// minPrune is the slot count below which dead references are not swept.
const minPrune = 64

// slotSet holds the slot references of a registry. It is not safe for
// concurrent use; the owning registry's lock guards it.
type slotSet struct {
	refs    []slotRef
	pruneAt int
}

// add appends ref, sweeping dead references whenever the set has doubled
// since the last sweep.
func (s *slotSet) add(ref slotRef) {
	s.refs = append(s.refs, ref)
	if len(s.refs) >= s.pruneAt {
		s.sweep(slotRef.live)
		s.pruneAt = max(2*len(s.refs), minPrune)
	}
}

// resetAll empties every live slot and drops dead references.
func (s *slotSet) resetAll() {
	s.sweep(slotRef.reset)
}

// count returns the number of live slots.
func (s *slotSet) count() int {
	n := 0
	for _, ref := range s.refs {
		if ref.live() {
			n++
		}
	}
	return n
}

// sweep keeps the references for which keep returns true.
func (s *slotSet) sweep(keep func(slotRef) bool) {
	kept := s.refs[:0]
	for _, ref := range s.refs {
		if keep(ref) {
			kept = append(kept, ref)
		}
	}
	clear(s.refs[len(kept):])
	s.refs = kept
}
