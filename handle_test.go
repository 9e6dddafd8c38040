package singleton

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandle_Get(t *testing.T) {
	t.Parallel()

	t.Run("creates lazily", func(t *testing.T) {
		t.Parallel()
		reg := newTestRegistry(t)
		counter := &TCounter{}

		h := New(reg, counter.Factory())
		assert.Equal(t, int64(0), counter.Calls())
		assert.False(t, h.IsMaterialized())

		_, err := h.Get()
		require.NoError(t, err)
		assert.Equal(t, int64(1), counter.Calls())
		assert.True(t, h.IsMaterialized())
	})

	t.Run("returns the same instance", func(t *testing.T) {
		t.Parallel()
		reg := newTestRegistry(t)
		counter := &TCounter{}
		h := New(reg, counter.Factory())

		first, err := h.Get()
		require.NoError(t, err)
		second, err := h.Get()
		require.NoError(t, err)

		assert.Same(t, first, second)
		assert.Equal(t, 1, first.Value)
		assert.Equal(t, 1, second.Value)
		assert.Equal(t, int64(1), counter.Calls())
	})

	t.Run("invoke and must get are aliases", func(t *testing.T) {
		t.Parallel()
		reg := newTestRegistry(t)
		h := New(reg, (&TCounter{}).Factory())

		got, err := h.Get()
		require.NoError(t, err)
		invoked, err := h.Invoke()
		require.NoError(t, err)
		fromFunc, err := h.Func()()
		require.NoError(t, err)

		assert.Same(t, got, invoked)
		assert.Same(t, got, h.MustGet())
		assert.Same(t, got, fromFunc)
	})

	t.Run("handles of the same type are distinct", func(t *testing.T) {
		t.Parallel()
		reg := newTestRegistry(t)
		a := New(reg, func() (*TService, error) { return &TService{ID: "a"}, nil })
		b := New(reg, func() (*TService, error) { return &TService{ID: "b"}, nil })

		assert.Equal(t, "a", a.MustGet().ID)
		assert.Equal(t, "b", b.MustGet().ID)
		assert.NotSame(t, a.MustGet(), b.MustGet())
	})

	t.Run("value types", func(t *testing.T) {
		t.Parallel()
		reg := newTestRegistry(t)
		h := New(reg, func() (string, error) { return "value", nil })

		assert.Equal(t, "value", h.MustGet())
	})
}

func TestHandle_GetError(t *testing.T) {
	t.Parallel()

	t.Run("error is returned unchanged and nothing is stored", func(t *testing.T) {
		t.Parallel()
		reg := newTestRegistry(t)
		boom := errors.New("boom")
		fail := true
		calls := 0

		h := New(reg, func() (*TService, error) {
			calls++
			if fail {
				return nil, boom
			}
			return &TService{ID: "ok"}, nil
		})

		_, err := h.Get()
		assert.Equal(t, boom, err)
		assert.False(t, h.IsMaterialized())

		fail = false
		svc, err := h.Get()
		require.NoError(t, err)
		assert.Equal(t, "ok", svc.ID)
		assert.Equal(t, 2, calls)

		stats := reg.Stats()
		assert.Equal(t, int64(1), stats.Failures)
		assert.Equal(t, int64(1), stats.Constructions)
	})

	t.Run("must get panics with the factory error", func(t *testing.T) {
		t.Parallel()
		reg := newTestRegistry(t)
		boom := errors.New("boom")
		h := New(reg, func() (int, error) { return 0, boom })

		assert.PanicsWithError(t, "boom", func() { h.MustGet() })
	})

	t.Run("factory panics propagate", func(t *testing.T) {
		t.Parallel()
		reg := newTestRegistry(t)
		h := New(reg, func() (int, error) { panic("kaboom") })

		assert.PanicsWithValue(t, "kaboom", func() { _, _ = h.Get() })
		assert.False(t, h.IsMaterialized())
	})
}

func TestHandle_Concurrency(t *testing.T) {
	t.Parallel()

	t.Run("all callers observe one instance", func(t *testing.T) {
		t.Parallel()
		reg := newTestRegistry(t)
		counter := &TCounter{}
		h := New(reg, counter.Factory())

		results := getConcurrently(t, 64, h.Get)

		committed := h.MustGet()
		for i, got := range results {
			assert.Same(t, committed, got, "goroutine %d", i)
		}
		assert.GreaterOrEqual(t, counter.Calls(), int64(1))

		stats := reg.Stats()
		assert.Equal(t, stats.Constructions-1, stats.Discarded)
	})

	t.Run("serialized construction runs once", func(t *testing.T) {
		t.Parallel()
		reg := newTestRegistry(t, WithSerializedConstruction())
		counter := &TCounter{}
		h := New(reg, counter.Factory())

		results := getConcurrently(t, 64, h.Get)

		for _, got := range results {
			assert.Same(t, results[0], got)
		}
		assert.Equal(t, int64(1), counter.Calls())
		assert.Equal(t, int64(0), reg.Stats().Discarded)
	})
}

func TestHandle_Name(t *testing.T) {
	t.Parallel()
	reg := newTestRegistry(t)

	t.Run("defaults to type and declaration site", func(t *testing.T) {
		h := New(reg, (&TCounter{}).Factory())

		assert.True(t, strings.HasPrefix(h.Name(), "*TService (handle_test.go:"), h.Name())
		assert.Equal(t, h.Name(), h.String())
	})

	t.Run("named", func(t *testing.T) {
		h := New(reg, (&TCounter{}).Factory(), Named("service"))

		assert.Equal(t, "service", h.Name())
		assert.Same(t, reg, h.Registry())
	})
}

func TestNew_Panics(t *testing.T) {
	t.Parallel()

	assert.PanicsWithValue(t, ErrRegistryNil, func() {
		New[int](nil, func() (int, error) { return 1, nil })
	})
	assert.PanicsWithValue(t, ErrFactoryNil, func() {
		New[int](NewRegistry(), nil)
	})
	assert.PanicsWithValue(t, ErrRegistryNil, func() {
		NewInjectable[int](nil)
	})
}
