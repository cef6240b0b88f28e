package conformance

import (
	"net/http"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchdarkly/fake-http-context/httpbridge"
)

func DoBridgeChecks(t *T) {
	t.RequireCapability(CapabilityBridge)
	newContext := t.Subject().NewContext

	t.Run("handler output lands in the fake response", func(t *T) {
		ctx, err := newContext("http://localhost/app/page.aspx?x=1", t.DebugLogger())
		require.NoError(t, err)
		t.Defer(func() { _ = ctx.Close() })

		headers := make(http.Header)
		headers.Set("Content-Type", "text/plain")
		require.NoError(t, httpbridge.Serve(ctx, httphelpers.HandlerWithResponse(201, headers, []byte("made"))))

		assert.Equal(t, 201, ctx.Response().StatusCode())
		assert.Equal(t, "text/plain", ctx.Response().ContentType())
		body, err := ctx.Response().Output().ContentString()
		require.NoError(t, err)
		assert.Equal(t, "made", body)
	})

	t.Run("handler sees the fake context", func(t *T) {
		ctx, err := newContext("http://localhost/page.aspx?name=value", t.DebugLogger())
		require.NoError(t, err)
		t.Defer(func() { _ = ctx.Close() })

		var seenName string
		var seenSame bool
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seenName = r.URL.Query().Get("name")
			seenSame = httpbridge.FromContext(r.Context()) == ctx
			w.WriteHeader(http.StatusNoContent)
		})
		require.NoError(t, httpbridge.Serve(ctx, handler))

		assert.Equal(t, "value", seenName)
		assert.True(t, seenSame)
		assert.Equal(t, http.StatusNoContent, ctx.Response().StatusCode())
	})

	t.Run("panic is recorded as a context error", func(t *T) {
		ctx, err := newContext("http://localhost/boom.aspx", t.DebugLogger())
		require.NoError(t, err)
		t.Defer(func() { _ = ctx.Close() })

		err = httpbridge.Serve(ctx, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("boom")
		}))
		assert.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, ctx.Response().StatusCode())
		assert.Equal(t, err, ctx.FirstError())
	})
}
