package fakeweb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	cache, err := NewMemoryCache(100)
	require.NoError(t, err)
	defer cache.Close()

	_, ok := cache.Get("missing")
	assert.False(t, ok)

	cache.Set("a", 1, 0)
	cache.Set("b", "two", time.Hour)

	v, ok := cache.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
	v, ok = cache.Get("b")
	require.True(t, ok)
	assert.Equal(t, "two", v)

	cache.Remove("a")
	_, ok = cache.Get("a")
	assert.False(t, ok)

	cache.Close()
	cache.Close()
}
