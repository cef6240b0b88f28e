package fakeweb

import (
	"fmt"
	"net/http"
	"time"
)

// Notification identifies the stage of the request pipeline a context is in.
type Notification int

const (
	BeginRequest Notification = 1 << iota
	AuthenticateRequest
	AuthorizeRequest
	ResolveRequestCache
	MapRequestHandler
	AcquireRequestState
	PreExecuteRequestHandler
	ExecuteRequestHandler
	ReleaseRequestState
	UpdateRequestCache
	LogRequest
	EndRequest
	SendResponse
)

// SessionStateBehavior says how a handler uses session state.
type SessionStateBehavior int

const (
	SessionDefault SessionStateBehavior = iota
	SessionRequired
	SessionReadOnly
	SessionDisabled
)

// Context ties a fake request, response and session together with the state a web server
// would keep for one request: items, errors, handlers and a cache.
type Context struct {
	request     *Request
	response    *Response
	session     *Session
	application *ApplicationState
	server      *ServerUtility
	cache       Cache
	ownsCache   bool
	logger      Logger
	timestamp   time.Time

	items  map[any]any
	errors []error

	handler        http.Handler
	currentHandler http.Handler
	remapHandler   http.Handler
	handlerStack   []http.Handler

	currentNotification         Notification
	sessionStateBehavior        SessionStateBehavior
	isCustomErrorEnabled        bool
	isDebuggingEnabled          bool
	isPostNotification          bool
	isWebSocketRequest          bool
	isWebSocketRequestUpgrading bool
	webSocketNegotiatedProtocol string
	webSocketRequestedProtocols []string

	SkipAuthorization bool
}

var _ HTTPContext = (*Context)(nil)

// ContextOption configures a Context created by NewContext.
type ContextOption func(*Context)

// WithCache makes the context use the given cache instead of creating its own. The caller
// keeps ownership of it.
func WithCache(cache Cache) ContextOption {
	return func(c *Context) { c.cache = cache }
}

// WithLogger sets where the context reports its activity.
func WithLogger(logger Logger) ContextOption {
	return func(c *Context) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTimestamp overrides the time the request is considered to have started.
func WithTimestamp(t time.Time) ContextOption {
	return func(c *Context) { c.timestamp = t }
}

// NewContext creates a context for the given request, response and session.
func NewContext(request *Request, response *Response, session *Session, opts ...ContextOption) (*Context, error) {
	if request == nil {
		return nil, nilArgument("request")
	}
	if response == nil {
		return nil, nilArgument("response")
	}
	if session == nil {
		return nil, nilArgument("session")
	}
	c := &Context{
		request:             request,
		response:            response,
		session:             session,
		application:         NewApplicationState(),
		logger:              NullLogger(),
		timestamp:           time.Now(),
		items:               make(map[any]any),
		currentNotification: BeginRequest,
	}
	c.server = newServerUtility(c)
	for _, opt := range opts {
		opt(c)
	}
	if c.cache == nil {
		cache, err := NewMemoryCache(DefaultCacheEntries)
		if err != nil {
			return nil, fmt.Errorf("creating context cache: %w", err)
		}
		c.cache = cache
		c.ownsCache = true
	}
	c.logger.Printf("Created context for %s %s (session %s)", request.HTTPMethod(), request.URL(), session.SessionID())
	return c, nil
}

// NewContextForURL creates a context with a GET request for rawURL and a new response and
// session.
func NewContextForURL(rawURL string, opts ...ContextOption) (*Context, error) {
	request, err := ParseRequest(rawURL, http.MethodGet)
	if err != nil {
		return nil, err
	}
	return NewContext(request, NewResponse(), NewSession(), opts...)
}

// NewDefaultContext creates a context for a GET request to http://localhost/.
func NewDefaultContext(opts ...ContextOption) (*Context, error) {
	return NewContext(NewDefaultRequest(), NewResponse(), NewSession(), opts...)
}

func (c *Context) Request() *Request                          { return c.request }
func (c *Context) Response() *Response                        { return c.response }
func (c *Context) Session() *Session                          { return c.session }
func (c *Context) Application() *ApplicationState             { return c.application }
func (c *Context) Server() *ServerUtility                     { return c.server }
func (c *Context) Cache() Cache                               { return c.cache }
func (c *Context) Items() map[any]any                         { return c.items }
func (c *Context) Logger() Logger                             { return c.logger }
func (c *Context) Timestamp() time.Time                       { return c.timestamp }
func (c *Context) CurrentNotification() Notification          { return c.currentNotification }
func (c *Context) SessionStateBehavior() SessionStateBehavior { return c.sessionStateBehavior }

func (c *Context) AddError(err error) {
	if err == nil {
		return
	}
	c.logger.Printf("Error added to context: %s", err)
	c.errors = append(c.errors, err)
}

// AllErrors returns the errors added so far, or nil if there are none.
func (c *Context) AllErrors() []error {
	if len(c.errors) == 0 {
		return nil
	}
	return append([]error(nil), c.errors...)
}

// FirstError returns the first error added, or nil.
func (c *Context) FirstError() error {
	if len(c.errors) == 0 {
		return nil
	}
	return c.errors[0]
}

func (c *Context) ClearError() { c.errors = nil }

func (c *Context) Handler() http.Handler           { return c.handler }
func (c *Context) SetHandler(handler http.Handler) { c.handler = handler }

// CurrentHandler returns the handler now executing. Until one is pushed with
// SetCurrentHandler, that is Handler.
func (c *Context) CurrentHandler() http.Handler {
	if c.currentHandler == nil {
		c.currentHandler = c.handler
	}
	return c.currentHandler
}

// PreviousHandler returns the handler that was current before the last SetCurrentHandler, or
// nil.
func (c *Context) PreviousHandler() http.Handler {
	if len(c.handlerStack) == 0 {
		return nil
	}
	return c.handlerStack[len(c.handlerStack)-1]
}

// SetCurrentHandler pushes the current handler and makes handler current.
func (c *Context) SetCurrentHandler(handler http.Handler) {
	c.handlerStack = append(c.handlerStack, c.CurrentHandler())
	c.currentHandler = handler
}

// RestoreCurrentHandler makes the handler saved by the matching SetCurrentHandler current
// again.
func (c *Context) RestoreCurrentHandler() error {
	if len(c.handlerStack) == 0 {
		return ErrHandlerStackEmpty
	}
	last := len(c.handlerStack) - 1
	c.currentHandler = c.handlerStack[last]
	c.handlerStack = c.handlerStack[:last]
	return nil
}

// RemapHandler records the handler that should replace the one mapped to the request.
func (c *Context) RemapHandler(handler http.Handler) { c.remapHandler = handler }

func (c *Context) RemapHandlerInstance() http.Handler { return c.remapHandler }

func (c *Context) IsCustomErrorEnabled() bool          { return c.isCustomErrorEnabled }
func (c *Context) IsDebuggingEnabled() bool            { return c.isDebuggingEnabled }
func (c *Context) IsPostNotification() bool            { return c.isPostNotification }
func (c *Context) IsWebSocketRequest() bool            { return c.isWebSocketRequest }
func (c *Context) IsWebSocketRequestUpgrading() bool   { return c.isWebSocketRequestUpgrading }
func (c *Context) WebSocketNegotiatedProtocol() string { return c.webSocketNegotiatedProtocol }
func (c *Context) WebSocketRequestedProtocols() []string {
	return c.webSocketRequestedProtocols
}

func (c *Context) SetCurrentNotification(n Notification)          { c.currentNotification = n }
func (c *Context) SetIsCustomErrorEnabled(enabled bool)           { c.isCustomErrorEnabled = enabled }
func (c *Context) SetIsDebuggingEnabled(enabled bool)             { c.isDebuggingEnabled = enabled }
func (c *Context) SetIsPostNotification(post bool)                { c.isPostNotification = post }
func (c *Context) SetIsWebSocketRequest(ws bool)                  { c.isWebSocketRequest = ws }
func (c *Context) SetIsWebSocketRequestUpgrading(upgrading bool)  { c.isWebSocketRequestUpgrading = upgrading }
func (c *Context) SetSessionStateBehavior(b SessionStateBehavior) { c.sessionStateBehavior = b }
func (c *Context) SetWebSocketNegotiatedProtocol(protocol string) { c.webSocketNegotiatedProtocol = protocol }
func (c *Context) SetWebSocketRequestedProtocols(protocols []string) {
	c.webSocketRequestedProtocols = protocols
}

// Close closes the response output and, if the context created its own cache, the cache.
func (c *Context) Close() error {
	if c.ownsCache {
		c.cache.Close()
	}
	return c.response.Close()
}
