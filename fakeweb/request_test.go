package fakeweb

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testURL = "http://127.0.0.1/app/folder/file.aspx/extra?var=val"

func makeTestRequest(t *testing.T) *Request {
	r, err := ParseRequest(testURL, "GET")
	require.NoError(t, err)
	r.SetApplicationPath("/app")
	return r
}

func requireArgumentError(t *testing.T, err error, param string, isNil bool) {
	var argErr *ArgumentError
	require.True(t, errors.As(err, &argErr), "expected ArgumentError, got %v", err)
	assert.Equal(t, param, argErr.Param)
	assert.Equal(t, isNil, argErr.Nil)
}

func TestNewRequestValidation(t *testing.T) {
	t.Run("nil url", func(t *testing.T) {
		_, err := NewRequest(nil, "GET")
		requireArgumentError(t, err, "url", true)
	})

	t.Run("relative url", func(t *testing.T) {
		_, err := NewRequest(&url.URL{Path: "/app/file.aspx"}, "GET")
		requireArgumentError(t, err, "url", false)
		assert.Contains(t, err.Error(), "The url must be absolute.")
	})

	t.Run("empty method", func(t *testing.T) {
		u, _ := url.Parse(testURL)
		_, err := NewRequest(u, "")
		requireArgumentError(t, err, "httpMethod", true)
	})
}

func TestDerivedPaths(t *testing.T) {
	r := makeTestRequest(t)

	assert.Equal(t, "/app/folder/file.aspx/extra", r.Path())
	assert.Equal(t, "/app/folder/file.aspx", r.FilePath())
	assert.Equal(t, "/app/folder/file.aspx", r.CurrentExecutionFilePath())
	assert.Equal(t, ".aspx", r.CurrentExecutionFilePathExtension())
	assert.Equal(t, "/extra", r.PathInfo())
	assert.Equal(t, "/app/folder/file.aspx/extra?var=val", r.RawURL())

	rel, err := r.AppRelativeCurrentExecutionFilePath()
	require.NoError(t, err)
	assert.Equal(t, "~/folder/file.aspx", rel)
}

func TestPathWithoutFileSegment(t *testing.T) {
	r, err := ParseRequest("http://localhost/app/folder", "GET")
	require.NoError(t, err)

	assert.Equal(t, "/app/folder", r.FilePath())
	assert.Equal(t, "", r.PathInfo())
	assert.Equal(t, "/app/folder", r.RawURL())
}

func TestPathInfoNeedsMoreThanASlash(t *testing.T) {
	r, err := ParseRequest("http://localhost/file.aspx/", "GET")
	require.NoError(t, err)

	assert.Equal(t, "/file.aspx/", r.FilePath())
	assert.Equal(t, "", r.PathInfo())
}

func TestAppRelativePathOutsideApplication(t *testing.T) {
	r := makeTestRequest(t)
	r.SetApplicationPath("/other")

	_, err := r.AppRelativeCurrentExecutionFilePath()
	requireArgumentError(t, err, "applicationPath", false)
}

func TestAppRelativePathWithRootApplication(t *testing.T) {
	r := makeTestRequest(t)
	r.SetApplicationPath("/")

	rel, err := r.AppRelativeCurrentExecutionFilePath()
	require.NoError(t, err)
	assert.Equal(t, "~/app/folder/file.aspx", rel)
}

func TestQueryStringIsPopulatedInOrder(t *testing.T) {
	r, err := ParseRequest("http://localhost/?b=2&a=1&b=3&c=x%20y", "GET")
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "a", "b", "c"}, r.QueryString().AllKeys())
	v, _ := r.QueryString().Get("B")
	assert.Equal(t, "2", v)
	v, _ = r.QueryString().Get("c")
	assert.Equal(t, "x y", v)
}

func TestLookupPrecedence(t *testing.T) {
	r := NewDefaultRequest()
	r.QueryString().Add("key", "query")
	r.Form().Add("key", "form")
	r.Cookies().Add(&http.Cookie{Name: "key", Value: "cookie"})
	r.ServerVariables().Add("key", "server")

	expected := []string{"query", "form", "cookie", "server"}
	removers := []func(){
		func() { r.QueryString().Remove("key") },
		func() { r.Form().Remove("key") },
		func() { r.Cookies().Remove("key") },
		func() { r.ServerVariables().Remove("key") },
	}
	for i, want := range expected {
		v, ok := r.Lookup("key")
		require.True(t, ok)
		assert.Equal(t, want, v)
		removers[i]()
	}

	_, ok := r.Lookup("key")
	assert.False(t, ok)
}

func TestParamsCombinesCollectionsInOrder(t *testing.T) {
	r, err := ParseRequest("http://localhost/?q=1", "GET")
	require.NoError(t, err)
	r.Form().Add("f", "2")
	r.Cookies().Add(&http.Cookie{Name: "c", Value: "3"})
	r.ServerVariables().Add("s", "4")

	params := r.Params()
	assert.Equal(t, []string{"q", "f", "c", "s"}, params.AllKeys())

	params.Add("extra", "x")
	assert.False(t, r.QueryString().Has("extra"))
}

func TestRequestTypeFallsBackToMethod(t *testing.T) {
	r, err := ParseRequest("http://localhost/", "POST")
	require.NoError(t, err)
	assert.Equal(t, "POST", r.RequestType())

	r.SetRequestType("GET")
	assert.Equal(t, "GET", r.RequestType())
}

func TestIsLocalAndIsSecure(t *testing.T) {
	for _, tc := range []struct {
		url    string
		local  bool
		secure bool
	}{
		{"http://localhost/", true, false},
		{"https://127.0.0.1/", true, true},
		{"http://[::1]:8080/", true, false},
		{"https://example.com/", false, true},
	} {
		t.Run(tc.url, func(t *testing.T) {
			r, err := ParseRequest(tc.url, "GET")
			require.NoError(t, err)
			assert.Equal(t, tc.local, r.IsLocal())
			assert.Equal(t, tc.secure, r.IsSecureConnection())
		})
	}
}

func TestTotalBytes(t *testing.T) {
	r := NewDefaultRequest()
	n, err := r.TotalBytes()
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	body := bytes.NewReader([]byte("hello"))
	_, _ = body.Seek(2, 0)
	r.SetInputStream(body)
	n, err = r.TotalBytes()
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	pos, _ := body.Seek(0, 1)
	assert.Equal(t, int64(2), pos)
}

func TestMapPath(t *testing.T) {
	r := makeTestRequest(t)
	root := filepath.FromSlash("/srv/www")
	r.SetPhysicalApplicationPath(root)

	p, err := r.MapPath("~/folder/file.aspx")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "folder", "file.aspx"), p)

	p, err = r.PhysicalPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "folder", "file.aspx"), p)

	_, err = r.MapPath("")
	requireArgumentError(t, err, "virtualPath", true)

	_, err = r.MapPath("/absolute")
	requireArgumentError(t, err, "virtualPath", false)
}

func TestUnvalidatedValuesPassThrough(t *testing.T) {
	r := makeTestRequest(t)
	r.Form().Add("key", "form")
	r.Headers().Add("X-Test", "yes")

	u := r.Unvalidated()
	assert.Same(t, u, r.Unvalidated())
	assert.Same(t, r.Form(), u.Form())
	assert.Same(t, r.Headers(), u.Headers())
	assert.Same(t, r.QueryString(), u.QueryString())
	assert.Same(t, r.Cookies(), u.Cookies())
	assert.Same(t, r.Files(), u.Files())
	assert.Equal(t, r.Path(), u.Path())
	assert.Equal(t, r.PathInfo(), u.PathInfo())
	assert.Equal(t, r.RawURL(), u.RawURL())
	assert.Equal(t, r.URL(), u.URL())

	v, ok := u.Lookup("var")
	require.True(t, ok)
	assert.Equal(t, "val", v)
	v, ok = u.Lookup("key")
	require.True(t, ok)
	assert.Equal(t, "form", v)
}
