package singleton

import (
	"errors"
	"fmt"
	"sync"
)

// closerList records committed Disposable values in commit order. Values are
// added while the instance registry's read lock is held, so it has its own
// mutex; it is taken only under the write lock, together with the reset of
// the cells holding those values.
type closerList struct {
	items []Disposable
	mu    sync.Mutex
}

// add records v if it is Disposable.
func (l *closerList) add(v any) {
	d, ok := v.(Disposable)
	if !ok {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, d)
}

func (l *closerList) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// take empties the list and returns what it held.
func (l *closerList) take() []Disposable {
	l.mu.Lock()
	defer l.mu.Unlock()

	items := l.items
	l.items = nil
	return items
}

// closeAll closes ds, most recently committed first, and joins the errors.
func closeAll(ds []Disposable) error {
	var errs []error
	for i := len(ds) - 1; i >= 0; i-- {
		if err := ds[i].Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %T: %w", ds[i], err))
		}
	}
	return errors.Join(errs...)
}
