package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage(t *testing.T) {
	t.Run("missing key returns nil", func(t *testing.T) {
		m := NewMemoryStorage()
		v, err := m.Get("nope")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("get returns a copy", func(t *testing.T) {
		m := NewMemoryStorage()
		require.NoError(t, m.Set("k", []byte("abc"), 0))

		v, err := m.Get("k")
		require.NoError(t, err)
		v[0] = 'x'

		again, err := m.Get("k")
		require.NoError(t, err)
		assert.Equal(t, "abc", string(again))
	})

	t.Run("empty key or value is ignored", func(t *testing.T) {
		m := NewMemoryStorage()
		require.NoError(t, m.Set("", []byte("x"), 0))
		require.NoError(t, m.Set("k", nil, 0))
		v, _ := m.Get("k")
		assert.Nil(t, v)
	})

	t.Run("entries expire", func(t *testing.T) {
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		m := NewMemoryStorage()
		m.now = func() time.Time { return now }

		require.NoError(t, m.Set("k", []byte("v"), time.Minute))
		v, _ := m.Get("k")
		assert.Equal(t, "v", string(v))

		now = now.Add(2 * time.Minute)
		v, _ = m.Get("k")
		assert.Nil(t, v)
	})

	t.Run("delete and reset", func(t *testing.T) {
		m := NewMemoryStorage()
		require.NoError(t, m.Set("a", []byte("1"), 0))
		require.NoError(t, m.Set("b", []byte("2"), 0))

		require.NoError(t, m.Delete("a"))
		v, _ := m.Get("a")
		assert.Nil(t, v)

		require.NoError(t, m.Reset())
		v, _ = m.Get("b")
		assert.Nil(t, v)
	})
}
