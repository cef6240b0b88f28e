package fakeweb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachePolicyUnsetValues(t *testing.T) {
	p := NewCachePolicy()
	_, ok := p.Cacheability()
	assert.False(t, ok)
	_, ok = p.MaxAge()
	assert.False(t, ok)
	_, ok = p.Expires()
	assert.False(t, ok)
	assert.Equal(t, "", p.ETag())
}

func TestCachePolicyETag(t *testing.T) {
	t.Run("set once", func(t *testing.T) {
		p := NewCachePolicy()
		require.NoError(t, p.SetETag(`"abc"`))
		assert.Equal(t, `"abc"`, p.ETag())
		assert.ErrorIs(t, p.SetETag(`"def"`), ErrETagAlreadySet)
		assert.ErrorIs(t, p.SetETagFromFileDependencies(), ErrETagFromFiles)
	})

	t.Run("from files", func(t *testing.T) {
		p := NewCachePolicy()
		require.NoError(t, p.SetETagFromFileDependencies())
		assert.True(t, p.GenerateETagFromFiles())
		assert.ErrorIs(t, p.SetETag(`"abc"`), ErrETagFromFiles)
	})

	t.Run("empty", func(t *testing.T) {
		requireArgumentError(t, NewCachePolicy().SetETag(""), "etag", true)
	})
}

func TestCachePolicyAges(t *testing.T) {
	p := NewCachePolicy()
	require.NoError(t, p.SetMaxAge(time.Minute))
	require.NoError(t, p.SetProxyMaxAge(0))

	v, ok := p.MaxAge()
	assert.True(t, ok)
	assert.Equal(t, time.Minute, v)
	v, ok = p.ProxyMaxAge()
	assert.True(t, ok)
	assert.Equal(t, time.Duration(0), v)

	requireArgumentError(t, p.SetMaxAge(-time.Second), "delta", false)
	requireArgumentError(t, p.SetProxyMaxAge(-time.Second), "delta", false)
}

func TestCachePolicyVaryByCustom(t *testing.T) {
	p := NewCachePolicy()
	require.NoError(t, p.SetVaryByCustom("browser"))
	assert.ErrorIs(t, p.SetVaryByCustom("other"), ErrVaryByCustomSet)
	assert.Equal(t, "browser", p.VaryByCustom())
}

func TestCachePolicyCacheabilityAndExtensions(t *testing.T) {
	p := NewCachePolicy()
	require.NoError(t, p.AppendCacheExtension("ext"))
	require.NoError(t, p.SetCacheabilityField(Private, "Set-Cookie"))

	c, ok := p.Cacheability()
	assert.True(t, ok)
	assert.Equal(t, Private, c)
	assert.Equal(t, []string{"ext", "Set-Cookie"}, p.CacheExtensions())
}

func TestCachePolicyValidationCallbacks(t *testing.T) {
	p := NewCachePolicy()
	requireArgumentError(t, p.AddValidationCallback(nil, nil), "handler", true)

	var seen []any
	require.NoError(t, p.AddValidationCallback(func(_ HTTPContext, data any) bool {
		seen = append(seen, data)
		return true
	}, "first"))
	require.NoError(t, p.AddValidationCallback(func(_ HTTPContext, data any) bool {
		seen = append(seen, data)
		return false
	}, "second"))

	assert.Equal(t, 2, p.ValidationCallbackCount())
	assert.False(t, p.Validate(nil))
	assert.Equal(t, []any{"first", "second"}, seen)
}

func TestCachePolicyVaryBy(t *testing.T) {
	p := NewCachePolicy()
	p.VaryByHeaders().Set("Accept-Language", true)
	p.VaryByParams().Set("page", true)

	v, ok := p.VaryByHeaders().Get("accept-language")
	assert.True(t, ok)
	assert.True(t, v)
	assert.True(t, p.VaryByParams().Has("PAGE"))
	assert.Equal(t, 0, p.VaryByContentEncodings().Count())
}
