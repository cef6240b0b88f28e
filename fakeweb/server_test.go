package fakeweb

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTestServer(t *testing.T) (*Context, *ServerUtility) {
	ctx, err := NewDefaultContext()
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctx.Close() })
	return ctx, ctx.Server()
}

func TestServerEncoding(t *testing.T) {
	_, s := makeTestServer(t)

	assert.Equal(t, "&lt;a href=&#34;x&#34;&gt;", s.HTMLEncode(`<a href="x">`))
	assert.Equal(t, `<a href="x">`, s.HTMLDecode("&lt;a href=&quot;x&quot;&gt;"))
	assert.Equal(t, "a+b%26c", s.URLEncode("a b&c"))
	assert.Equal(t, "a b&c", s.URLDecode("a+b%26c"))
	assert.Equal(t, "%zz", s.URLDecode("%zz"))
	assert.Equal(t, "/my%20folder/file.aspx?q=a b", s.URLPathEncode("/my folder/file.aspx?q=a b"))
}

func TestServerURLToken(t *testing.T) {
	_, s := makeTestServer(t)

	for _, data := range [][]byte{{1}, {1, 2}, {1, 2, 3}, []byte("hello world")} {
		token := s.URLTokenEncode(data)
		assert.NotContains(t, token, "=")
		decoded, err := s.URLTokenDecode(token)
		require.NoError(t, err)
		assert.Equal(t, data, decoded)
	}

	assert.Equal(t, "AQ2", s.URLTokenEncode([]byte{1}))
	assert.Equal(t, "", s.URLTokenEncode(nil))

	_, err := s.URLTokenDecode("AQx")
	assert.Error(t, err)
}

func TestServerErrorsComeFromContext(t *testing.T) {
	ctx, s := makeTestServer(t)
	assert.NoError(t, s.GetLastError())

	first := errors.New("first")
	ctx.AddError(first)
	ctx.AddError(errors.New("second"))
	assert.Equal(t, first, s.GetLastError())

	s.ClearError()
	assert.Nil(t, ctx.AllErrors())
}

func TestServerMachineName(t *testing.T) {
	_, s := makeTestServer(t)
	assert.NotEmpty(t, s.MachineName())

	s.SetMachineName("web01")
	assert.Equal(t, "web01", s.MachineName())
}

func TestServerMapPathUsesRequest(t *testing.T) {
	ctx, s := makeTestServer(t)
	ctx.Request().SetPhysicalApplicationPath("/srv")

	p, err := s.MapPath("~/a.txt")
	require.NoError(t, err)
	expected, _ := ctx.Request().MapPath("~/a.txt")
	assert.Equal(t, expected, p)
}
