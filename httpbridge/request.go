package httpbridge

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"maps"
	"mime"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/jzelinskie/stringz"

	"github.com/launchdarkly/fake-http-context/collection"
	"github.com/launchdarkly/fake-http-context/fakeweb"
)

const (
	formContentType      = "application/x-www-form-urlencoded"
	multipartContentType = "multipart/form-data"

	maxMultipartMemory = 32 << 20
)

// NewRequestFromHTTP copies an incoming net/http request into a fake request. The body is read
// completely; url-encoded and multipart forms are parsed into Form and Files.
func NewRequestFromHTTP(r *http.Request) (*fakeweb.Request, error) {
	u := absoluteURL(r)
	req, err := fakeweb.NewRequest(u, r.Method)
	if err != nil {
		return nil, err
	}

	for _, name := range slices.Sorted(maps.Keys(r.Header)) {
		for _, v := range r.Header[name] {
			req.Headers().Add(name, v)
		}
	}
	if r.Host != "" && !req.Headers().Has("Host") {
		req.Headers().Add("Host", r.Host)
	}
	for _, cookie := range r.Cookies() {
		req.Cookies().Add(cookie)
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case multipartContentType:
		if err := copyMultipart(r, req); err != nil {
			return nil, err
		}
	default:
		var body []byte
		if r.Body != nil {
			body, err = io.ReadAll(r.Body)
			if err != nil {
				return nil, fmt.Errorf("reading request body: %w", err)
			}
		}
		if mediaType == formContentType {
			fakeweb.ParseURLEncoded(string(body), req.Form())
		}
		req.SetInputStream(bytes.NewReader(body))
		req.SetContentLength(len(body))
	}

	req.SetContentType(r.Header.Get("Content-Type"))
	req.SetUserAgent(r.UserAgent())
	req.SetAcceptTypes(splitHeaderList(r.Header.Get("Accept")))
	req.SetUserLanguages(splitHeaderList(r.Header.Get("Accept-Language")))
	if referrer := r.Referer(); referrer != "" {
		if ref, err := url.Parse(referrer); err == nil {
			req.SetURLReferrer(ref)
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	req.SetUserHostAddress(host)
	req.SetUserHostName(host)
	req.SetTimedOutContext(r.Context())
	addServerVariables(r, u, host, req.ServerVariables())
	return req, nil
}

func absoluteURL(r *http.Request) *url.URL {
	u := *r.URL
	if u.IsAbs() {
		return &u
	}
	u.Scheme = "http"
	if r.TLS != nil {
		u.Scheme = "https"
	}
	u.Host = r.Host
	if u.Host == "" {
		u.Host = "localhost"
	}
	return &u
}

func copyMultipart(r *http.Request, req *fakeweb.Request) error {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return fmt.Errorf("parsing multipart form: %w", err)
	}
	form := r.MultipartForm
	for _, name := range slices.Sorted(maps.Keys(form.Value)) {
		for _, v := range form.Value[name] {
			req.Form().Add(name, v)
		}
	}
	for _, name := range slices.Sorted(maps.Keys(form.File)) {
		for _, header := range form.File[name] {
			file, err := postedFileFromHeader(header)
			if err != nil {
				return err
			}
			req.Files().AddFile(name, file)
		}
	}
	return nil
}

func postedFileFromHeader(header *multipart.FileHeader) (*fakeweb.PostedFile, error) {
	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("opening posted file %q: %w", header.Filename, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading posted file %q: %w", header.Filename, err)
	}
	contentType := stringz.DefaultEmpty(header.Header.Get("Content-Type"), "application/octet-stream")
	return fakeweb.NewPostedFile(header.Filename, contentType, bytes.NewReader(data))
}

func splitHeaderList(value string) []string {
	if value == "" {
		return nil
	}
	var ret []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			ret = append(ret, part)
		}
	}
	return ret
}

func addServerVariables(r *http.Request, u *url.URL, remoteHost string, vars *collection.Collection[string]) {
	port := u.Port()
	if port == "" {
		port = "80"
		if u.Scheme == "https" {
			port = "443"
		}
	}
	https := "off"
	if u.Scheme == "https" {
		https = "on"
	}
	vars.Set("REQUEST_METHOD", r.Method)
	vars.Set("SERVER_PROTOCOL", r.Proto)
	vars.Set("SERVER_NAME", u.Hostname())
	vars.Set("SERVER_PORT", port)
	vars.Set("HTTPS", https)
	vars.Set("PATH_INFO", u.EscapedPath())
	vars.Set("QUERY_STRING", u.RawQuery)
	vars.Set("REMOTE_ADDR", remoteHost)
	vars.Set("CONTENT_LENGTH", strconv.FormatInt(max(r.ContentLength, 0), 10))
	vars.Set("CONTENT_TYPE", r.Header.Get("Content-Type"))
}

// NewHTTPRequest builds a net/http request equivalent to a fake request, for handing to an
// http.Handler. If the fake request has an input stream it becomes the body; otherwise a
// non-empty Form is sent url-encoded.
func NewHTTPRequest(req *fakeweb.Request) (*http.Request, error) {
	body, contentType, err := requestBody(req)
	if err != nil {
		return nil, err
	}
	ctx := req.TimedOutContext()
	if ctx == nil {
		ctx = context.Background()
	}
	r, err := http.NewRequestWithContext(ctx, req.HTTPMethod(), req.URL().String(), body)
	if err != nil {
		return nil, fmt.Errorf("building HTTP request: %w", err)
	}
	for name, v := range req.Headers().Entries() {
		r.Header.Add(name, v)
	}
	if host := r.Header.Get("Host"); host != "" {
		r.Host = host
		r.Header.Del("Host")
	}
	for cookie := range req.Cookies().All() {
		r.AddCookie(cookie)
	}
	if contentType != "" && r.Header.Get("Content-Type") == "" {
		r.Header.Set("Content-Type", contentType)
	}
	if ua := req.UserAgent(); ua != "" && r.Header.Get("User-Agent") == "" {
		r.Header.Set("User-Agent", ua)
	}
	if ref := req.URLReferrer(); ref != nil && r.Header.Get("Referer") == "" {
		r.Header.Set("Referer", ref.String())
	}
	if addr := req.UserHostAddress(); addr != "" {
		r.RemoteAddr = net.JoinHostPort(addr, "0")
	}
	return r, nil
}

func requestBody(req *fakeweb.Request) (io.Reader, string, error) {
	if in := req.InputStream(); in != nil {
		if _, err := in.Seek(0, io.SeekStart); err != nil {
			return nil, "", fmt.Errorf("rewinding request body: %w", err)
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return nil, "", fmt.Errorf("reading request body: %w", err)
		}
		if _, err := in.Seek(0, io.SeekStart); err != nil {
			return nil, "", fmt.Errorf("rewinding request body: %w", err)
		}
		return bytes.NewReader(data), req.ContentType(), nil
	}
	if req.Form().Count() == 0 {
		return http.NoBody, req.ContentType(), nil
	}
	values := make([]string, 0, req.Form().Count())
	for name, v := range req.Form().Entries() {
		values = append(values, url.QueryEscape(name)+"="+url.QueryEscape(v))
	}
	return strings.NewReader(strings.Join(values, "&")), formContentType, nil
}
