package fakeweb

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...any) {
	l.lines = append(l.lines, format)
}

type stubCache struct {
	Cache
	closed bool
}

func (c *stubCache) Close() { c.closed = true }

type statusHandler struct {
	status int
}

func (h *statusHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(h.status)
}

func TestNewContextValidation(t *testing.T) {
	_, err := NewContext(nil, NewResponse(), NewSession())
	requireArgumentError(t, err, "request", true)
	_, err = NewContext(NewDefaultRequest(), nil, NewSession())
	requireArgumentError(t, err, "response", true)
	_, err = NewContext(NewDefaultRequest(), NewResponse(), nil)
	requireArgumentError(t, err, "session", true)
}

func TestNewContextForURL(t *testing.T) {
	ctx, err := NewContextForURL(testURL)
	require.NoError(t, err)
	defer ctx.Close()

	assert.Equal(t, "GET", ctx.Request().HTTPMethod())
	assert.Equal(t, "/extra", ctx.Request().PathInfo())
	assert.Equal(t, BeginRequest, ctx.CurrentNotification())
	assert.NotNil(t, ctx.Application())
	assert.NotNil(t, ctx.Items())

	_, err = NewContextForURL("/relative")
	requireArgumentError(t, err, "url", false)
}

func TestContextOptions(t *testing.T) {
	logger := &recordingLogger{}
	cache := &stubCache{}
	ts := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)

	ctx, err := NewDefaultContext(WithLogger(logger), WithCache(cache), WithTimestamp(ts))
	require.NoError(t, err)

	assert.Equal(t, ts, ctx.Timestamp())
	assert.Same(t, cache, ctx.Cache())
	assert.NotEmpty(t, logger.lines)

	require.NoError(t, ctx.Close())
	assert.False(t, cache.closed)
}

func TestContextOwnCache(t *testing.T) {
	ctx, err := NewDefaultContext()
	require.NoError(t, err)

	ctx.Cache().Set("k", "v", 0)
	v, ok := ctx.Cache().Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)

	require.NoError(t, ctx.Close())
	assert.True(t, ctx.Response().Output().IsClosed())
}

func TestContextErrors(t *testing.T) {
	ctx, err := NewDefaultContext()
	require.NoError(t, err)
	defer ctx.Close()

	assert.Nil(t, ctx.AllErrors())
	assert.NoError(t, ctx.FirstError())

	first, second := errors.New("first"), errors.New("second")
	ctx.AddError(first)
	ctx.AddError(nil)
	ctx.AddError(second)

	assert.Equal(t, []error{first, second}, ctx.AllErrors())
	assert.Equal(t, first, ctx.FirstError())

	ctx.ClearError()
	assert.Nil(t, ctx.AllErrors())
}

func TestContextHandlerStack(t *testing.T) {
	ctx, err := NewDefaultContext()
	require.NoError(t, err)
	defer ctx.Close()

	h1, h2, h3 := &statusHandler{201}, &statusHandler{202}, &statusHandler{203}
	ctx.SetHandler(h1)
	assert.Same(t, h1, ctx.CurrentHandler())
	assert.Nil(t, ctx.PreviousHandler())

	ctx.SetCurrentHandler(h2)
	assert.Same(t, h2, ctx.CurrentHandler())
	assert.Same(t, h1, ctx.PreviousHandler())

	ctx.SetCurrentHandler(h3)
	assert.Same(t, h2, ctx.PreviousHandler())

	require.NoError(t, ctx.RestoreCurrentHandler())
	assert.Same(t, h2, ctx.CurrentHandler())
	require.NoError(t, ctx.RestoreCurrentHandler())
	assert.Same(t, h1, ctx.CurrentHandler())
	assert.ErrorIs(t, ctx.RestoreCurrentHandler(), ErrHandlerStackEmpty)

	ctx.RemapHandler(h3)
	assert.Same(t, h3, ctx.RemapHandlerInstance())
}

func TestContextFlags(t *testing.T) {
	ctx, err := NewDefaultContext()
	require.NoError(t, err)
	defer ctx.Close()

	ctx.SetCurrentNotification(EndRequest)
	ctx.SetIsCustomErrorEnabled(true)
	ctx.SetIsDebuggingEnabled(true)
	ctx.SetIsPostNotification(true)
	ctx.SetIsWebSocketRequest(true)
	ctx.SetIsWebSocketRequestUpgrading(true)
	ctx.SetWebSocketNegotiatedProtocol("chat")
	ctx.SetWebSocketRequestedProtocols([]string{"chat", "superchat"})
	ctx.SetSessionStateBehavior(SessionReadOnly)

	assert.Equal(t, EndRequest, ctx.CurrentNotification())
	assert.True(t, ctx.IsCustomErrorEnabled())
	assert.True(t, ctx.IsDebuggingEnabled())
	assert.True(t, ctx.IsPostNotification())
	assert.True(t, ctx.IsWebSocketRequest())
	assert.True(t, ctx.IsWebSocketRequestUpgrading())
	assert.Equal(t, "chat", ctx.WebSocketNegotiatedProtocol())
	assert.Equal(t, []string{"chat", "superchat"}, ctx.WebSocketRequestedProtocols())
	assert.Equal(t, SessionReadOnly, ctx.SessionStateBehavior())
}
