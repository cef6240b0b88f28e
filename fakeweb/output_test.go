package fakeweb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputRoundTrip(t *testing.T) {
	o := NewOutput()
	_, err := o.Write([]byte{0x00, 0xff, 'a'})
	require.NoError(t, err)
	_, err = o.WriteString("bc")
	require.NoError(t, err)

	b, err := o.ContentBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xff, 'a', 'b', 'c'}, b)

	n, err := o.Len()
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestOutputContentString(t *testing.T) {
	o := NewOutput()
	_, _ = o.WriteString("héllo")

	s, err := o.ContentString()
	require.NoError(t, err)
	assert.Equal(t, "héllo", s)
}

func TestOutputClear(t *testing.T) {
	o := NewOutput()
	_, _ = o.WriteString("hello")
	require.NoError(t, o.Clear())

	n, err := o.Len()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestOutputAfterClose(t *testing.T) {
	o := NewOutput()
	_, _ = o.WriteString("hello")
	require.NoError(t, o.Close())
	require.NoError(t, o.Close())
	assert.True(t, o.IsClosed())

	_, err := o.Write([]byte("x"))
	assert.ErrorIs(t, err, ErrDisposed)
	_, err = o.WriteString("x")
	assert.ErrorIs(t, err, ErrDisposed)
	_, err = o.ContentBytes()
	assert.ErrorIs(t, err, ErrDisposed)
	_, err = o.ContentString()
	assert.ErrorIs(t, err, ErrDisposed)
	_, err = o.Len()
	assert.ErrorIs(t, err, ErrDisposed)
	assert.ErrorIs(t, o.Clear(), ErrDisposed)
}
