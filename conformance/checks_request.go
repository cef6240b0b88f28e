package conformance

import (
	"errors"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchdarkly/fake-http-context/fakeweb"
)

const exampleURL = "http://host/app/folder/file.aspx/extra?var=val"

func DoRequestChecks(t *T) {
	newRequest := t.Subject().NewRequest

	t.Run("path derivation", func(t *T) {
		req, err := newRequest(exampleURL, "GET", "/app")
		require.NoError(t, err)

		assert.Equal(t, "/app/folder/file.aspx/extra", req.Path())
		assert.Equal(t, "/app/folder/file.aspx", req.FilePath())
		assert.Equal(t, "/app/folder/file.aspx", req.CurrentExecutionFilePath())
		assert.Equal(t, "/extra", req.PathInfo())
		assert.Equal(t, "/app/folder/file.aspx/extra?var=val", req.RawURL())

		rel, err := req.AppRelativeCurrentExecutionFilePath()
		require.NoError(t, err)
		assert.Equal(t, "~/folder/file.aspx", rel)
	})

	t.Run("path without a file segment", func(t *T) {
		req, err := newRequest("http://host/app/folder", "GET", "/app")
		require.NoError(t, err)
		assert.Equal(t, "/app/folder", req.FilePath())
		assert.Equal(t, "", req.PathInfo())
	})

	t.Run("file path outside application root", func(t *T) {
		req, err := newRequest(exampleURL, "GET", "/elsewhere")
		require.NoError(t, err)
		_, err = req.AppRelativeCurrentExecutionFilePath()
		assert.Error(t, err)
	})

	t.Run("argument errors", func(t *T) {
		_, err := newRequest("/relative/path.aspx", "GET", "/")
		requireArgumentError(t, err, "url", false)

		_, err = newRequest(exampleURL, "", "/")
		requireArgumentError(t, err, "httpMethod", true)
	})

	t.Run("lookup precedence", func(t *T) {
		req, err := newRequest("http://host/page.aspx", "POST", "/")
		require.NoError(t, err)
		req.QueryString().Add("key", "query")
		req.Form().Add("key", "form")
		req.Cookies().Add(&http.Cookie{Name: "key", Value: "cookie"})
		req.ServerVariables().Add("key", "server")

		steps := []struct {
			expected string
			remove   func()
		}{
			{"query", func() { req.QueryString().Remove("key") }},
			{"form", func() { req.Form().Remove("key") }},
			{"cookie", func() { req.Cookies().Remove("key") }},
			{"server", func() { req.ServerVariables().Remove("key") }},
		}
		for _, step := range steps {
			v, ok := req.Lookup("key")
			require.True(t, ok, "expected %q", step.expected)
			assert.Equal(t, step.expected, v)
			step.remove()
		}
		_, ok := req.Lookup("key")
		assert.False(t, ok)
	})

	t.Run("request collections are case-insensitive", func(t *T) {
		req, err := newRequest("http://host/page.aspx?Name=x", "GET", "/")
		require.NoError(t, err)
		req.Headers().Add("X-Custom", "1")

		v, ok := req.QueryString().Get("name")
		assert.True(t, ok)
		assert.Equal(t, "x", v)
		assert.True(t, req.Headers().Has("x-custom"))
	})
}

func requireArgumentError(t *T, err error, param string, isNil bool) {
	var argErr *fakeweb.ArgumentError
	require.True(t, errors.As(err, &argErr), "expected an argument error for %q, got: %v", param, err)
	assert.Equal(t, param, argErr.Param)
	assert.Equal(t, isNil, argErr.Nil, "nil-argument flag for %q", param)
}
