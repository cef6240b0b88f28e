package fakeweb

import (
	"net/http"
	"time"

	"github.com/launchdarkly/fake-http-context/collection"
)

// Response is an in-memory HTTP response. Written content goes to its Output; everything else
// is recorded for inspection.
type Response struct {
	headers               *collection.Collection[string]
	cookies               *CookieCollection
	cacheItemDependencies []string
	cache                 *CachePolicy
	output                *Output

	appPathModifier     func(string) string
	isClientConnected   bool
	supportsAsyncFlush  bool
	kernelCacheDisabled bool
	ended               bool

	bufferOutput      bool
	cacheControl      string
	charset           string
	contentType       string
	expires           int
	expiresAbsolute   time.Time
	redirectLocation  string
	status            string
	statusCode        int
	statusDescription string
	subStatusCode     int
	suppressContent   bool
}

var _ HTTPResponse = (*Response)(nil)

func NewResponse() *Response {
	return &Response{
		headers:           collection.New[string](collection.IgnoreCase),
		cookies:           NewCookieCollection(),
		cache:             NewCachePolicy(),
		output:            NewOutput(),
		appPathModifier:   func(p string) string { return p },
		isClientConnected: true,
		statusCode:        http.StatusOK,
	}
}

func (r *Response) Headers() *collection.Collection[string] { return r.headers }
func (r *Response) Cookies() *CookieCollection              { return r.cookies }
func (r *Response) Cache() *CachePolicy                     { return r.cache }
func (r *Response) Output() *Output                         { return r.output }
func (r *Response) IsClientConnected() bool                 { return r.isClientConnected }
func (r *Response) SupportsAsyncFlush() bool                { return r.supportsAsyncFlush }
func (r *Response) KernelCacheDisabled() bool               { return r.kernelCacheDisabled }
func (r *Response) IsEnded() bool                           { return r.ended }

// CacheItemDependencies returns the cache keys added with AddCacheItemDependency, in order.
func (r *Response) CacheItemDependencies() []string { return r.cacheItemDependencies }

func (r *Response) IsRequestBeingRedirected() bool { return r.redirectLocation != "" }

func (r *Response) AddCacheItemDependency(cacheKey string) {
	r.cacheItemDependencies = append(r.cacheItemDependencies, cacheKey)
}

func (r *Response) AddCacheItemDependencies(cacheKeys ...string) {
	r.cacheItemDependencies = append(r.cacheItemDependencies, cacheKeys...)
}

// AddHeader is the same as AppendHeader.
func (r *Response) AddHeader(name, value string) { r.AppendHeader(name, value) }

// AppendHeader sets a header, replacing the first header with the same name.
func (r *Response) AppendHeader(name, value string) { r.headers.Set(name, value) }

// AppendCookie replaces the first cookie with the same name, or appends it.
func (r *Response) AppendCookie(cookie *http.Cookie) { r.cookies.Set(cookie) }

// SetCookie is the same as AppendCookie.
func (r *Response) SetCookie(cookie *http.Cookie) { r.cookies.Set(cookie) }

func (r *Response) ApplyAppPathModifier(virtualPath string) string {
	return r.appPathModifier(virtualPath)
}

func (r *Response) DisableKernelCache() { r.kernelCacheDisabled = true }

func (r *Response) Write(p []byte) (int, error)       { return r.output.Write(p) }
func (r *Response) WriteString(s string) (int, error) { return r.output.WriteString(s) }

// BinaryWrite writes raw bytes to the output.
func (r *Response) BinaryWrite(p []byte) error {
	_, err := r.output.Write(p)
	return err
}

// Clear discards the buffered content and headers.
func (r *Response) Clear() error {
	r.ClearHeaders()
	return r.ClearContent()
}

func (r *Response) ClearContent() error { return r.output.Clear() }

// ClearHeaders removes every header and cookie and resets the status to 200 OK.
func (r *Response) ClearHeaders() {
	r.headers.Clear()
	r.cookies.Clear()
	r.contentType = ""
	r.charset = ""
	r.statusCode = http.StatusOK
	r.statusDescription = ""
	r.subStatusCode = 0
}

// Redirect sets a 302 status and the redirect location, then ends the response.
func (r *Response) Redirect(url string) error {
	return r.redirect(url, http.StatusFound)
}

// RedirectPermanent sets a 301 status and the redirect location, then ends the response.
func (r *Response) RedirectPermanent(url string) error {
	return r.redirect(url, http.StatusMovedPermanently)
}

func (r *Response) redirect(url string, status int) error {
	if url == "" {
		return nilArgument("url")
	}
	location := r.ApplyAppPathModifier(url)
	r.statusCode = status
	r.redirectLocation = location
	r.headers.Set("Location", location)
	r.End()
	return nil
}

// End marks the response as complete. The output stays readable.
func (r *Response) End() { r.ended = true }

// Close closes the output and disconnects the client.
func (r *Response) Close() error {
	r.isClientConnected = false
	return r.output.Close()
}

func (r *Response) SetAppPathModifier(modifier func(string) string) {
	r.appPathModifier = modifier
}

func (r *Response) SetIsClientConnected(connected bool) { r.isClientConnected = connected }
func (r *Response) SetOutput(output *Output)            { r.output = output }
func (r *Response) SetSupportsAsyncFlush(supports bool) { r.supportsAsyncFlush = supports }

func (r *Response) BufferOutput() bool         { return r.bufferOutput }
func (r *Response) CacheControl() string       { return r.cacheControl }
func (r *Response) Charset() string            { return r.charset }
func (r *Response) ContentType() string        { return r.contentType }
func (r *Response) Expires() int               { return r.expires }
func (r *Response) ExpiresAbsolute() time.Time { return r.expiresAbsolute }
func (r *Response) RedirectLocation() string   { return r.redirectLocation }
func (r *Response) Status() string             { return r.status }
func (r *Response) StatusCode() int            { return r.statusCode }
func (r *Response) StatusDescription() string  { return r.statusDescription }
func (r *Response) SubStatusCode() int         { return r.subStatusCode }
func (r *Response) SuppressContent() bool      { return r.suppressContent }

func (r *Response) SetBufferOutput(buffer bool)         { r.bufferOutput = buffer }
func (r *Response) SetCacheControl(cacheControl string) { r.cacheControl = cacheControl }
func (r *Response) SetCharset(charset string)           { r.charset = charset }
func (r *Response) SetContentType(contentType string)   { r.contentType = contentType }
func (r *Response) SetExpires(minutes int)              { r.expires = minutes }
func (r *Response) SetExpiresAbsolute(t time.Time)      { r.expiresAbsolute = t }
func (r *Response) SetRedirectLocation(location string) { r.redirectLocation = location }
func (r *Response) SetStatus(status string)             { r.status = status }
func (r *Response) SetStatusCode(code int)              { r.statusCode = code }
func (r *Response) SetStatusDescription(desc string)    { r.statusDescription = desc }
func (r *Response) SetSubStatusCode(code int)           { r.subStatusCode = code }
func (r *Response) SetSuppressContent(suppress bool)    { r.suppressContent = suppress }
