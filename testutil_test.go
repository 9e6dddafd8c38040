package singleton

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

// ============================================================================
// Shared Test Types
// ============================================================================

// TService is a basic value for testing.
type TService struct {
	ID    string
	Value int
}

// TCounter records how many times a factory ran.
type TCounter struct {
	calls atomic.Int64
}

// Factory returns a factory that allocates a new *TService carrying the
// call number.
func (c *TCounter) Factory() Factory[*TService] {
	return func() (*TService, error) {
		n := c.calls.Add(1)
		return &TService{Value: int(n)}, nil
	}
}

func (c *TCounter) Calls() int64 {
	return c.calls.Load()
}

// TDisposable records Close calls.
type TDisposable struct {
	Name     string
	closed   atomic.Bool
	closeErr error
	onClose  func(name string)
}

func (d *TDisposable) Close() error {
	if d.closed.Swap(true) {
		return errors.New("already closed")
	}
	if d.onClose != nil {
		d.onClose(d.Name)
	}
	return d.closeErr
}

func (d *TDisposable) IsClosed() bool {
	return d.closed.Load()
}

// ============================================================================
// Helpers
// ============================================================================

// newTestRegistry returns a registry cleared at the end of the test.
func newTestRegistry(t *testing.T, opts ...RegistryOption) *Registry {
	t.Helper()
	r := NewRegistry(append([]RegistryOption{WithName(t.Name())}, opts...)...)
	t.Cleanup(r.Clear)
	return r
}

// getConcurrently calls get from n goroutines released together and returns
// every result.
func getConcurrently[T any](t *testing.T, n int, get func() (T, error)) []T {
	t.Helper()

	results := make([]T, n)
	errs := make([]error, n)

	var start, done sync.WaitGroup
	start.Add(1)
	done.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer done.Done()
			start.Wait()
			results[i], errs[i] = get()
		}(i)
	}
	start.Done()
	done.Wait()

	for i, err := range errs {
		require.NoError(t, err, "goroutine %d", i)
	}
	return results
}
