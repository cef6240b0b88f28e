package conformance

import (
	"fmt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoStoreChecks(t *T) {
	newStore := t.Subject().NewStore

	t.Run("first match wins for duplicate keys", func(t *T) {
		s := newStore(false)
		for i := 0; i < 5; i++ {
			s.Add("key", fmt.Sprint(i))
			s.Add(fmt.Sprintf("other%d", i), "x")
		}
		v, ok := s.Get("key")
		require.True(t, ok)
		assert.Equal(t, "0", v)
		assert.Len(t, s.AllKeys(), 10)
		assert.Equal(t, 10, s.Count())
	})

	t.Run("empty key is an ordinary key", func(t *T) {
		s := newStore(false)
		s.Add("", "empty")
		v, ok := s.Get("")
		require.True(t, ok)
		assert.Equal(t, "empty", v)
	})

	t.Run("missing key is reported as absent", func(t *T) {
		s := newStore(false)
		_, ok := s.Get("nope")
		assert.False(t, ok)
	})

	t.Run("RemoveAt shifts later entries down", func(t *T) {
		s := newStore(false)
		s.Add("a", "0")
		s.Add("b", "1")
		s.Add("c", "2")

		require.NoError(t, s.RemoveAt(1))
		v, err := s.GetAt(1)
		require.NoError(t, err)
		assert.Equal(t, "2", v)
		key, err := s.GetKey(1)
		require.NoError(t, err)
		assert.Equal(t, "c", key)
		assert.Equal(t, 2, s.Count())
	})

	t.Run("Remove deletes every match", func(t *T) {
		s := newStore(false)
		s.Add("k", "1")
		s.Add("x", "2")
		s.Add("k", "3")

		s.Remove("k")
		_, ok := s.Get("k")
		assert.False(t, ok)
		assert.NotContains(t, s.AllKeys(), "k")
		assert.Equal(t, 1, s.Count())

		s.Remove("k")
		assert.Equal(t, 1, s.Count())
	})

	t.Run("Set overwrites the first match or appends", func(t *T) {
		s := newStore(false)
		s.Add("k", "1")
		s.Add("k", "2")

		s.Set("k", "new")
		assert.Equal(t, 2, s.Count())
		v, _ := s.GetAt(0)
		assert.Equal(t, "new", v)
		v, _ = s.GetAt(1)
		assert.Equal(t, "2", v)

		s.Set("other", "x")
		assert.Equal(t, 3, s.Count())
		key, _ := s.GetKey(2)
		assert.Equal(t, "other", key)
	})

	t.Run("SetAt keeps position and key", func(t *T) {
		s := newStore(false)
		s.Add("a", "1")
		s.Add("b", "2")
		require.NoError(t, s.SetAt(0, "changed"))
		key, _ := s.GetKey(0)
		v, _ := s.GetAt(0)
		assert.Equal(t, "a", key)
		assert.Equal(t, "changed", v)
	})

	t.Run("positional access is bounds-checked", func(t *T) {
		s := newStore(false)
		s.Add("a", "1")
		for _, index := range []int{-1, 1, 100} {
			_, err := s.GetAt(index)
			assert.Error(t, err, "GetAt(%d)", index)
			_, err = s.GetKey(index)
			assert.Error(t, err, "GetKey(%d)", index)
			assert.Error(t, s.SetAt(index, "x"), "SetAt(%d)", index)
			assert.Error(t, s.RemoveAt(index), "RemoveAt(%d)", index)
		}
		assert.Equal(t, 1, s.Count())
	})

	t.Run("Clear empties the store", func(t *T) {
		s := newStore(false)
		s.Add("a", "1")
		s.Add("b", "2")
		s.Clear()
		assert.Equal(t, 0, s.Count())
		assert.Empty(t, s.AllKeys())
	})

	t.Run("case-insensitive comparer", func(t *T) {
		s := newStore(true)
		s.Add("Content-Type", "text/html")
		v, ok := s.Get("content-type")
		require.True(t, ok)
		assert.Equal(t, "text/html", v)

		ordinal := newStore(false)
		ordinal.Add("Content-Type", "text/html")
		_, ok = ordinal.Get("content-type")
		assert.False(t, ok)
	})
}
