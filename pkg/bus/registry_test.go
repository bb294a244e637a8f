package bus

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/espalier/pkg/domain"
)

type stubHandler struct {
	name string
}

func (h *stubHandler) MessageName() string { return h.name }
func (h *stubHandler) Handle(ctx context.Context, msg domain.Message) (any, error) {
	return h.name, nil
}

func TestRegistry_ResolveFirstMatchWins(t *testing.T) {
	first := &stubHandler{name: "order.place"}
	second := &stubHandler{name: "order.place"}

	r := NewRegistry()
	r.Register(first, second)

	h, ok := r.Resolve("order.place")
	require.True(t, ok)
	assert.Same(t, first, h)
}

func TestRegistry_ResolveMissIsNotAnError(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubHandler{name: "order.place"})

	h, ok := r.Resolve("order.cancel")
	assert.False(t, ok)
	assert.Nil(t, h)
}

func TestRegistry_ResolveMemoizesFirstResolution(t *testing.T) {
	target := &stubHandler{name: "order.place"}
	r := NewRegistry()
	r.Register(target)

	h1, cached1, ok := r.resolve("order.place")
	require.True(t, ok)
	assert.False(t, cached1)

	h2, cached2, ok := r.resolve("order.place")
	require.True(t, ok)
	assert.True(t, cached2)
	assert.Same(t, h1, h2)
}

func TestRegistry_CachedEntrySurvivesLaterRegistrations(t *testing.T) {
	original := &stubHandler{name: "order.place"}
	r := NewRegistry()
	r.Register(original)

	_, ok := r.Resolve("order.place")
	require.True(t, ok)

	// A usurper registered after resolution must not displace the
	// cached binding: entries are immutable for the process lifetime.
	r.Register(&stubHandler{name: "order.place"})
	h, ok := r.Resolve("order.place")
	require.True(t, ok)
	assert.Same(t, original, h)
}

func TestRegistry_ConcurrentResolveIsStable(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubHandler{name: "order.place"})

	var wg sync.WaitGroup
	results := make([]domain.Handler, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h, _ := r.Resolve("order.place")
			results[i] = h
		}(i)
	}
	wg.Wait()

	require.NotNil(t, results[0])
	for _, h := range results[1:] {
		assert.Same(t, results[0], h)
	}
}

func TestFirstMatch_IterationOrder(t *testing.T) {
	handlers := []domain.Handler{
		&stubHandler{name: "a"},
		&stubHandler{name: "b"},
		&stubHandler{name: "b"},
	}

	h, ok := firstMatch(handlers, "b")
	require.True(t, ok)
	assert.Same(t, handlers[1], h)

	_, ok = firstMatch(handlers, "c")
	assert.False(t, ok)

	_, ok = firstMatch(nil, "a")
	assert.False(t, ok)
}
