package fakeweb

import (
	"context"
	"io"
	"iter"
	"net/http"
	"net/url"
	"time"

	"github.com/launchdarkly/fake-http-context/collection"
)

// HTTPRequest is the read side of a request, as seen by code under test.
type HTTPRequest interface {
	URL() *url.URL
	HTTPMethod() string
	RequestType() string
	Path() string
	FilePath() string
	PathInfo() string
	RawURL() string
	CurrentExecutionFilePath() string
	CurrentExecutionFilePathExtension() string
	AppRelativeCurrentExecutionFilePath() (string, error)
	ApplicationPath() string
	PhysicalApplicationPath() string
	PhysicalPath() (string, error)
	MapPath(virtualPath string) (string, error)

	QueryString() *collection.Collection[string]
	Form() *collection.Collection[string]
	Headers() *collection.Collection[string]
	ServerVariables() *collection.Collection[string]
	Cookies() *CookieCollection
	Files() *FileCollection
	Lookup(key string) (string, bool)
	Params() *collection.Collection[string]

	AcceptTypes() []string
	AnonymousID() string
	ContentLength() int
	ContentType() string
	InputStream() io.ReadSeeker
	TotalBytes() (int, error)
	IsLocal() bool
	IsSecureConnection() bool
	TimedOutContext() context.Context
	URLReferrer() *url.URL
	UserAgent() string
	UserHostAddress() string
	UserHostName() string
	UserLanguages() []string
}

// HTTPResponse is what code under test can do to a response.
type HTTPResponse interface {
	io.Writer
	io.StringWriter

	Headers() *collection.Collection[string]
	Cookies() *CookieCollection
	Cache() *CachePolicy
	AddHeader(name, value string)
	AppendHeader(name, value string)
	AppendCookie(cookie *http.Cookie)
	SetCookie(cookie *http.Cookie)
	AddCacheItemDependency(cacheKey string)
	AddCacheItemDependencies(cacheKeys ...string)
	ApplyAppPathModifier(virtualPath string) string
	DisableKernelCache()

	BinaryWrite(p []byte) error
	Clear() error
	ClearContent() error
	ClearHeaders()
	Redirect(url string) error
	RedirectPermanent(url string) error
	End()
	Close() error

	IsClientConnected() bool
	IsRequestBeingRedirected() bool
	SupportsAsyncFlush() bool

	BufferOutput() bool
	CacheControl() string
	Charset() string
	ContentType() string
	Expires() int
	ExpiresAbsolute() time.Time
	RedirectLocation() string
	Status() string
	StatusCode() int
	StatusDescription() string
	SubStatusCode() int
	SuppressContent() bool
	SetBufferOutput(buffer bool)
	SetCacheControl(cacheControl string)
	SetCharset(charset string)
	SetContentType(contentType string)
	SetExpires(minutes int)
	SetExpiresAbsolute(t time.Time)
	SetRedirectLocation(location string)
	SetStatus(status string)
	SetStatusCode(code int)
	SetStatusDescription(desc string)
	SetSubStatusCode(code int)
	SetSuppressContent(suppress bool)
}

// HTTPSessionState is a per-user item store.
type HTTPSessionState interface {
	Get(name string) any
	GetAt(index int) (any, error)
	Set(name string, value any)
	SetAt(index int, value any) error
	Add(name string, value any)
	Remove(name string)
	RemoveAt(index int) error
	RemoveAll()
	Clear()
	Count() int
	Keys() []string
	All() iter.Seq2[string, any]
	Abandon()

	CookieMode() CookieMode
	IsCookieless() bool
	IsNewSession() bool
	IsReadOnly() bool
	Mode() SessionMode
	SessionID() string
	CodePage() int
	SetCodePage(cp int)
	LCID() int
	SetLCID(lcid int)
	Timeout() int
	SetTimeout(minutes int)
}

// HTTPApplicationState is an application-wide item store.
type HTTPApplicationState interface {
	Add(name string, value any)
	Set(name string, value any)
	Get(name string) any
	GetAt(index int) (any, error)
	GetKey(index int) (string, error)
	AllKeys() []string
	Remove(name string)
	RemoveAt(index int) error
	RemoveAll()
	Clear()
	Count() int
	All() iter.Seq2[string, any]
	Lock()
	UnLock()
}

// HTTPServerUtility groups the encoding and path helpers of a server.
type HTTPServerUtility interface {
	MachineName() string
	ClearError()
	GetLastError() error
	HTMLEncode(s string) string
	HTMLDecode(s string) string
	URLEncode(s string) string
	URLDecode(s string) string
	URLPathEncode(s string) string
	URLTokenEncode(data []byte) string
	URLTokenDecode(token string) ([]byte, error)
	MapPath(virtualPath string) (string, error)
}

// HTTPContext is the per-request state handed to code under test.
type HTTPContext interface {
	Request() *Request
	Response() *Response
	Session() *Session
	Application() *ApplicationState
	Server() *ServerUtility
	Cache() Cache
	Items() map[any]any
	Timestamp() time.Time

	AddError(err error)
	AllErrors() []error
	FirstError() error
	ClearError()

	Handler() http.Handler
	SetHandler(handler http.Handler)
	CurrentHandler() http.Handler
	PreviousHandler() http.Handler
	RemapHandler(handler http.Handler)
	CurrentNotification() Notification
	IsCustomErrorEnabled() bool
	IsDebuggingEnabled() bool
	IsPostNotification() bool
	IsWebSocketRequest() bool
	IsWebSocketRequestUpgrading() bool
}
