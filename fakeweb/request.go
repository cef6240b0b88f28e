package fakeweb

import (
	"context"
	"io"
	"net"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/jzelinskie/stringz"

	"github.com/launchdarkly/fake-http-context/collection"
)

const defaultRequestURL = "http://localhost/"

// Request is an in-memory HTTP request. The URL-derived properties are computed once, when the
// request is created; everything else can be changed through the Set methods or by mutating
// the collections it exposes.
type Request struct {
	url             *url.URL
	httpMethod      string
	filePath        string
	pathInfo        string
	queryString     *collection.Collection[string]
	form            *collection.Collection[string]
	headers         *collection.Collection[string]
	serverVariables *collection.Collection[string]
	cookies         *CookieCollection
	files           *FileCollection

	acceptTypes             []string
	applicationPath         string
	anonymousID             string
	contentLength           int
	contentType             string
	inputStream             io.ReadSeeker
	physicalApplicationPath string
	requestType             string
	timedOut                context.Context
	unvalidated             *UnvalidatedRequestValues
	urlReferrer             *url.URL
	userAgent               string
	userHostAddress         string
	userHostName            string
	userLanguages           []string
}

var _ HTTPRequest = (*Request)(nil)

// NewRequest creates a request for an absolute URL. The query string collection is filled from
// the URL's query, in order.
func NewRequest(u *url.URL, httpMethod string) (*Request, error) {
	if u == nil {
		return nil, nilArgument("url")
	}
	if !u.IsAbs() {
		return nil, invalidArgument("url", "The url must be absolute.")
	}
	if httpMethod == "" {
		return nil, nilArgument("httpMethod")
	}

	physicalPath, _ := os.Getwd()
	r := &Request{
		url:                     u,
		httpMethod:              httpMethod,
		queryString:             collection.New[string](collection.IgnoreCase),
		form:                    collection.New[string](collection.IgnoreCase),
		headers:                 collection.New[string](collection.IgnoreCase),
		serverVariables:         collection.New[string](collection.IgnoreCase),
		cookies:                 NewCookieCollection(),
		files:                   NewFileCollection(),
		acceptTypes:             []string{},
		applicationPath:         "/",
		physicalApplicationPath: physicalPath,
		timedOut:                context.Background(),
	}
	r.filePath, r.pathInfo = splitFilePath(r.Path())
	ParseURLEncoded(u.RawQuery, r.queryString)
	return r, nil
}

// ParseRequest parses rawURL and calls NewRequest.
func ParseRequest(rawURL, httpMethod string) (*Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &ArgumentError{Param: "url", Message: err.Error()}
	}
	return NewRequest(u, httpMethod)
}

// NewDefaultRequest creates a GET request for http://localhost/.
func NewDefaultRequest() *Request {
	r, err := ParseRequest(defaultRequestURL, "GET")
	if err != nil {
		panic(err) // the default URL is a constant
	}
	return r
}

// ParseURLEncoded adds the name/value pairs of an application/x-www-form-urlencoded string to
// dest, preserving their order. Pieces that fail to unescape are added as they are.
func ParseURLEncoded(s string, dest *collection.Collection[string]) {
	for _, piece := range strings.Split(s, "&") {
		if piece == "" {
			continue
		}
		name, value, _ := strings.Cut(piece, "=")
		dest.Add(unescapeOrRaw(name), unescapeOrRaw(value))
	}
}

func unescapeOrRaw(s string) string {
	if u, err := url.QueryUnescape(s); err == nil {
		return u
	}
	return s
}

func (r *Request) URL() *url.URL      { return r.url }
func (r *Request) HTTPMethod() string { return r.httpMethod }

// Path returns the escaped absolute path of the URL, without the query.
func (r *Request) Path() string {
	if p := r.url.EscapedPath(); p != "" {
		return p
	}
	return "/"
}

// FilePath returns the part of the path up to and including the first segment with a dot.
func (r *Request) FilePath() string { return r.filePath }

// PathInfo returns whatever follows FilePath, or "".
func (r *Request) PathInfo() string { return r.pathInfo }

// RawURL returns the path and query exactly as they appear in the URL.
func (r *Request) RawURL() string {
	if r.url.RawQuery == "" && !r.url.ForceQuery {
		return r.Path()
	}
	return r.Path() + "?" + r.url.RawQuery
}

func (r *Request) CurrentExecutionFilePath() string { return r.FilePath() }

func (r *Request) CurrentExecutionFilePathExtension() string {
	return path.Ext(r.CurrentExecutionFilePath())
}

// AppRelativeCurrentExecutionFilePath returns the execution file path with the application
// root replaced by "~". It fails if the file path is outside the application root.
func (r *Request) AppRelativeCurrentExecutionFilePath() (string, error) {
	return toAppRelative(r.CurrentExecutionFilePath(), r.ApplicationPath())
}

func (r *Request) AcceptTypes() []string            { return r.acceptTypes }
func (r *Request) ApplicationPath() string          { return r.applicationPath }
func (r *Request) AnonymousID() string              { return r.anonymousID }
func (r *Request) ContentLength() int               { return r.contentLength }
func (r *Request) ContentType() string              { return r.contentType }
func (r *Request) InputStream() io.ReadSeeker       { return r.inputStream }
func (r *Request) PhysicalApplicationPath() string  { return r.physicalApplicationPath }
func (r *Request) TimedOutContext() context.Context { return r.timedOut }
func (r *Request) URLReferrer() *url.URL            { return r.urlReferrer }
func (r *Request) UserAgent() string                { return r.userAgent }
func (r *Request) UserHostAddress() string          { return r.userHostAddress }
func (r *Request) UserHostName() string             { return r.userHostName }
func (r *Request) UserLanguages() []string          { return r.userLanguages }

func (r *Request) QueryString() *collection.Collection[string]     { return r.queryString }
func (r *Request) Form() *collection.Collection[string]            { return r.form }
func (r *Request) Headers() *collection.Collection[string]         { return r.headers }
func (r *Request) ServerVariables() *collection.Collection[string] { return r.serverVariables }
func (r *Request) Cookies() *CookieCollection                      { return r.cookies }
func (r *Request) Files() *FileCollection                          { return r.files }

// RequestType returns the value set with SetRequestType, or the HTTP method.
func (r *Request) RequestType() string {
	return stringz.DefaultEmpty(r.requestType, r.httpMethod)
}

// IsLocal reports whether the URL host is a loopback address or "localhost".
func (r *Request) IsLocal() bool {
	host := r.url.Hostname()
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func (r *Request) IsSecureConnection() bool {
	return strings.EqualFold(r.url.Scheme, "https")
}

// TotalBytes returns the length of the input stream, or 0 if there is none.
func (r *Request) TotalBytes() (int, error) {
	if r.inputStream == nil {
		return 0, nil
	}
	return streamLength(r.inputStream)
}

// Lookup searches the query string, the form, the cookies and the server variables, in that
// order, and returns the first value found.
func (r *Request) Lookup(key string) (string, bool) {
	return lookupParam(r, key)
}

// Params returns a new collection holding the query string, form, cookie and server variable
// entries, in that order.
func (r *Request) Params() *collection.Collection[string] {
	combined := r.queryString.Clone()
	for k, v := range r.form.Entries() {
		combined.Add(k, v)
	}
	for cookie := range r.cookies.All() {
		combined.Add(cookie.Name, cookie.Value)
	}
	for k, v := range r.serverVariables.Entries() {
		combined.Add(k, v)
	}
	return combined
}

// MapPath maps an application-relative virtual path ("~/...") to a path under the physical
// application path.
func (r *Request) MapPath(virtualPath string) (string, error) {
	if virtualPath == "" {
		return "", nilArgument("virtualPath")
	}
	if !strings.HasPrefix(virtualPath, "~/") {
		return "", invalidArgument("virtualPath", "Invalid virtual path.")
	}
	return filepath.Join(r.physicalApplicationPath, filepath.FromSlash(virtualPath[2:])), nil
}

// PhysicalPath maps the app-relative execution file path with MapPath.
func (r *Request) PhysicalPath() (string, error) {
	p, err := r.AppRelativeCurrentExecutionFilePath()
	if err != nil {
		return "", err
	}
	return r.MapPath(p)
}

// Unvalidated returns a pass-through view of this request's values.
func (r *Request) Unvalidated() *UnvalidatedRequestValues {
	if r.unvalidated == nil {
		r.unvalidated = NewUnvalidatedRequestValues(r)
	}
	return r.unvalidated
}

func (r *Request) SetAcceptTypes(acceptTypes []string)       { r.acceptTypes = acceptTypes }
func (r *Request) SetApplicationPath(applicationPath string) { r.applicationPath = applicationPath }
func (r *Request) SetAnonymousID(anonymousID string)         { r.anonymousID = anonymousID }
func (r *Request) SetContentLength(contentLength int)        { r.contentLength = contentLength }
func (r *Request) SetContentType(contentType string)         { r.contentType = contentType }
func (r *Request) SetFiles(files *FileCollection)            { r.files = files }
func (r *Request) SetInputStream(inputStream io.ReadSeeker)  { r.inputStream = inputStream }
func (r *Request) SetPhysicalApplicationPath(p string)       { r.physicalApplicationPath = p }
func (r *Request) SetRequestType(requestType string)         { r.requestType = requestType }
func (r *Request) SetTimedOutContext(ctx context.Context)    { r.timedOut = ctx }
func (r *Request) SetURLReferrer(urlReferrer *url.URL)       { r.urlReferrer = urlReferrer }
func (r *Request) SetUserAgent(userAgent string)             { r.userAgent = userAgent }
func (r *Request) SetUserHostAddress(userHostAddress string) { r.userHostAddress = userHostAddress }
func (r *Request) SetUserHostName(userHostName string)       { r.userHostName = userHostName }
func (r *Request) SetUserLanguages(userLanguages []string)   { r.userLanguages = userLanguages }

// lookupParam implements the parameter precedence shared by Request and
// UnvalidatedRequestValues.
func lookupParam(r HTTPRequest, key string) (string, bool) {
	if v, ok := r.QueryString().Get(key); ok {
		return v, true
	}
	if v, ok := r.Form().Get(key); ok {
		return v, true
	}
	if cookie := r.Cookies().Get(key); cookie != nil {
		return cookie.Value, true
	}
	return r.ServerVariables().Get(key)
}
