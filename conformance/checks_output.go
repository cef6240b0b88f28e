package conformance

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchdarkly/fake-http-context/fakeweb"
)

func DoOutputChecks(t *T) {
	t.RequireCapability(CapabilityOutput)
	newOutput := t.Subject().NewOutput

	t.Run("write and read back", func(t *T) {
		o := newOutput()
		_, err := o.WriteString("hello, ")
		require.NoError(t, err)
		_, err = o.Write([]byte("world"))
		require.NoError(t, err)

		s, err := o.ContentString()
		require.NoError(t, err)
		assert.Equal(t, "hello, world", s)
		n, err := o.Len()
		require.NoError(t, err)
		assert.Equal(t, len("hello, world"), n)
	})

	t.Run("content bytes are a copy", func(t *T) {
		o := newOutput()
		_, _ = o.WriteString("abc")
		b, err := o.ContentBytes()
		require.NoError(t, err)
		b[0] = 'x'
		s, _ := o.ContentString()
		assert.Equal(t, "abc", s)
	})

	t.Run("clear", func(t *T) {
		o := newOutput()
		_, _ = o.WriteString("discard me")
		require.NoError(t, o.Clear())
		n, err := o.Len()
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("operations fail after close", func(t *T) {
		o := newOutput()
		_, _ = o.WriteString("x")
		require.NoError(t, o.Close())
		require.NoError(t, o.Close())

		_, err := o.WriteString("y")
		assert.ErrorIs(t, err, fakeweb.ErrDisposed)
		_, err = o.ContentString()
		assert.ErrorIs(t, err, fakeweb.ErrDisposed)
		_, err = o.Len()
		assert.ErrorIs(t, err, fakeweb.ErrDisposed)
		assert.ErrorIs(t, o.Clear(), fakeweb.ErrDisposed)
	})
}
