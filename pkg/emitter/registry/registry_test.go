package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	r := New[string, int]()
	assert.NotNil(t, r)
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Keys())
}

func TestRegisterAndGet(t *testing.T) {
	r := New[string, int]()

	assert.True(t, r.Register("one", 1))
	assert.True(t, r.Register("two", 2))

	v, ok := r.Get("one")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = r.Get("three")
	assert.False(t, ok)
	assert.Equal(t, 0, v)
}

func TestRegisterReplaceKeepsPosition(t *testing.T) {
	r := New[string, string]()

	r.Register("a", "first")
	r.Register("b", "second")
	assert.False(t, r.Register("a", "replaced"))

	assert.Equal(t, []string{"a", "b"}, r.Keys())
	assert.Equal(t, []string{"replaced", "second"}, r.Values())
}

func TestInsertionOrder(t *testing.T) {
	r := New[string, int]()
	names := []string{"done", "error", "always", "catch", "event", "notify", "tap"}
	for i, n := range names {
		r.Register(n, i)
	}

	assert.Equal(t, names, r.Keys())
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, r.Values())
}

func TestDelete(t *testing.T) {
	r := New[string, int]()
	r.Register("a", 1)
	r.Register("b", 2)
	r.Register("c", 3)

	assert.True(t, r.Delete("b"))
	assert.False(t, r.Delete("b"))

	assert.False(t, r.Has("b"))
	assert.Equal(t, []string{"a", "c"}, r.Keys())
	assert.Equal(t, 2, r.Len())
}

func TestRangeStopsEarly(t *testing.T) {
	r := New[int, int]()
	for i := 0; i < 5; i++ {
		r.Register(i, i*i)
	}

	var seen []int
	r.Range(func(k, v int) bool {
		seen = append(seen, k)
		return k < 2
	})

	assert.Equal(t, []int{0, 1, 2}, seen)
}

func TestRangeSnapshotAllowsMutation(t *testing.T) {
	r := New[string, int]()
	r.Register("a", 1)
	r.Register("b", 2)

	var visited []string
	r.Range(func(k string, _ int) bool {
		visited = append(visited, k)
		r.Register(k+"x", 0)
		r.Delete(k)
		return true
	})

	assert.Equal(t, []string{"a", "b"}, visited)
	assert.Equal(t, []string{"ax", "bx"}, r.Keys())
}

func TestClear(t *testing.T) {
	r := New[string, int]()
	r.Register("a", 1)
	r.Clear()

	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Keys())

	r.Register("b", 2)
	assert.Equal(t, []string{"b"}, r.Keys())
}

func TestConcurrentAccess(t *testing.T) {
	r := New[int, int]()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.Register(i, i)
			_, _ = r.Get(i)
			_ = r.Keys()
		}(i)
	}
	wg.Wait()

	require.Equal(t, 50, r.Len())
	assert.Len(t, r.Values(), 50)
}
