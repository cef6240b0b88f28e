package conformance

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoStateChecks(t *T) {
	t.Run("session", doSessionChecks)
	t.Run("application", doApplicationChecks)
}

func doSessionChecks(t *T) {
	t.RequireCapability(CapabilitySession)
	newSession := t.Subject().NewSession

	t.Run("new session has an id", func(t *T) {
		s := newSession()
		assert.NotEmpty(t, s.SessionID())
		assert.NotEqual(t, s.SessionID(), newSession().SessionID())
	})

	t.Run("keys are case-sensitive", func(t *T) {
		s := newSession()
		s.Set("User", "alice")
		assert.Equal(t, "alice", s.Get("User"))
		assert.Nil(t, s.Get("user"))
	})

	t.Run("items keep insertion order", func(t *T) {
		s := newSession()
		s.Add("a", 1)
		s.Add("b", 2)
		s.Set("a", 3)
		assert.Equal(t, []string{"a", "b"}, s.Keys())
		v, err := s.GetAt(0)
		require.NoError(t, err)
		assert.Equal(t, 3, v)
	})

	t.Run("remove all empties the session", func(t *T) {
		s := newSession()
		s.Add("a", 1)
		s.Add("b", 2)
		s.RemoveAll()
		assert.Equal(t, 0, s.Count())
		assert.Nil(t, s.Get("a"))
	})
}

func doApplicationChecks(t *T) {
	t.RequireCapability(CapabilityApplication)
	newApplicationState := t.Subject().NewApplicationState

	t.Run("keys are case-insensitive", func(t *T) {
		a := newApplicationState()
		a.Set("Counter", 1)
		assert.Equal(t, 1, a.Get("counter"))
		a.Set("COUNTER", 2)
		assert.Equal(t, 1, a.Count())
		assert.Equal(t, 2, a.Get("Counter"))
	})

	t.Run("positional access", func(t *T) {
		a := newApplicationState()
		a.Add("x", "1")
		a.Add("y", "2")
		key, err := a.GetKey(1)
		require.NoError(t, err)
		assert.Equal(t, "y", key)
		require.NoError(t, a.RemoveAt(0))
		assert.Equal(t, []string{"y"}, a.AllKeys())
		_, err = a.GetAt(5)
		assert.Error(t, err)
	})

	t.Run("lock is harmless", func(t *T) {
		a := newApplicationState()
		a.Lock()
		a.Set("k", "v")
		a.UnLock()
		assert.Equal(t, "v", a.Get("k"))
	})
}
