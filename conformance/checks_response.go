package conformance

import (
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoResponseChecks(t *T) {
	t.RequireCapability(CapabilityResponse)
	newResponse := t.Subject().NewResponse

	t.Run("defaults", func(t *T) {
		r := newResponse()
		assert.Equal(t, http.StatusOK, r.StatusCode())
		assert.True(t, r.IsClientConnected())
		assert.False(t, r.IsRequestBeingRedirected())
		assert.Equal(t, "/x/y", r.ApplyAppPathModifier("/x/y"))
	})

	t.Run("headers are replaced by name", func(t *T) {
		r := newResponse()
		r.AppendHeader("X-Value", "1")
		r.AddHeader("x-value", "2")
		assert.Equal(t, 1, r.Headers().Count())
		v, ok := r.Headers().Get("X-Value")
		require.True(t, ok)
		assert.Equal(t, "2", v)
	})

	t.Run("cookies are replaced by name", func(t *T) {
		r := newResponse()
		r.AppendCookie(&http.Cookie{Name: "a", Value: "1"})
		r.SetCookie(&http.Cookie{Name: "a", Value: "2"})
		assert.Equal(t, 1, r.Cookies().Count())
		require.NotNil(t, r.Cookies().Get("a"))
		assert.Equal(t, "2", r.Cookies().Get("a").Value)
	})

	t.Run("redirect", func(t *T) {
		r := newResponse()
		require.NoError(t, r.Redirect("/login.aspx"))
		assert.Equal(t, http.StatusFound, r.StatusCode())
		assert.Equal(t, "/login.aspx", r.RedirectLocation())
		assert.True(t, r.IsRequestBeingRedirected())
		v, _ := r.Headers().Get("Location")
		assert.Equal(t, "/login.aspx", v)
	})

	t.Run("permanent redirect", func(t *T) {
		r := newResponse()
		require.NoError(t, r.RedirectPermanent("/moved.aspx"))
		assert.Equal(t, http.StatusMovedPermanently, r.StatusCode())
	})

	t.Run("redirect requires a url", func(t *T) {
		r := newResponse()
		requireArgumentError(t, r.Redirect(""), "url", true)
	})

	t.Run("clear headers resets status", func(t *T) {
		r := newResponse()
		r.SetStatusCode(http.StatusNotFound)
		r.AddHeader("X-A", "1")
		r.SetCookie(&http.Cookie{Name: "a", Value: "1"})
		r.ClearHeaders()
		assert.Equal(t, http.StatusOK, r.StatusCode())
		assert.Equal(t, 0, r.Headers().Count())
		assert.Equal(t, 0, r.Cookies().Count())
	})

	t.Run("body writes", func(t *T) {
		r := newResponse()
		_, err := r.WriteString("a")
		require.NoError(t, err)
		require.NoError(t, r.BinaryWrite([]byte("b")))
		require.NoError(t, r.ClearContent())
		_, err = r.WriteString("c")
		require.NoError(t, err)
	})

	t.Run("close disconnects the client", func(t *T) {
		r := newResponse()
		require.NoError(t, r.Close())
		assert.False(t, r.IsClientConnected())
		_, err := r.WriteString("late")
		assert.Error(t, err)
	})
}
