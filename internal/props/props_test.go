package props

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SetGet(t *testing.T) {
	s := NewStore()

	_, ok := s.Get("missing")
	assert.False(t, ok)

	s.Set("foo", "bar")
	value, ok := s.Get("foo")
	require.True(t, ok)
	assert.Equal(t, "bar", value)
}

func TestStore_LastWriteWins(t *testing.T) {
	s := NewStore()
	s.Set("key", "first")
	s.Set("key", "second")

	value, _ := s.Get("key")
	assert.Equal(t, "second", value)
	assert.Equal(t, 1, s.Len())
}

func TestStore_Bool(t *testing.T) {
	s := NewStore()
	s.Set("flag", TrueValue)
	s.Set("other", "yes")

	assert.True(t, s.Bool("flag"))
	assert.False(t, s.Bool("other"))
	assert.False(t, s.Bool("missing"))
}

func TestStore_Int64(t *testing.T) {
	s := NewStore()
	s.Set("n", "42")
	s.Set("bad", "forty-two")

	assert.Equal(t, int64(42), s.Int64("n", 7))
	assert.Equal(t, int64(7), s.Int64("bad", 7))
	assert.Equal(t, int64(7), s.Int64("missing", 7))
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	s := NewStore()
	s.Set("a", "1")

	snap := s.Snapshot()
	snap["a"] = "mutated"
	snap["b"] = "new"

	value, _ := s.Get("a")
	assert.Equal(t, "1", value)
	_, ok := s.Get("b")
	assert.False(t, ok)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Set("key", "value")
		}()
		go func() {
			defer wg.Done()
			s.Get("key")
			s.Len()
		}()
	}
	wg.Wait()
}

func TestFromContext(t *testing.T) {
	t.Run("returns carried store", func(t *testing.T) {
		s := NewStore()
		s.Set("k", "v")

		ctx := WithStore(context.Background(), s)
		got := FromContext(ctx)

		require.Same(t, s, got)
	})

	t.Run("empty store without one in context", func(t *testing.T) {
		got := FromContext(context.Background())
		require.NotNil(t, got)
		assert.Equal(t, 0, got.Len())
	})
}
