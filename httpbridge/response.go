package httpbridge

import (
	"maps"
	"net/http"
	"slices"

	"github.com/launchdarkly/fake-http-context/fakeweb"
)

// ResponseWriter is an http.ResponseWriter that records into a fake response. Headers are
// copied to the fake response when the status is written; the body goes to its Output.
type ResponseWriter struct {
	response    *fakeweb.Response
	header      http.Header
	wroteHeader bool
}

var (
	_ http.ResponseWriter = (*ResponseWriter)(nil)
	_ http.Flusher        = (*ResponseWriter)(nil)
)

func NewResponseWriter(response *fakeweb.Response) *ResponseWriter {
	return &ResponseWriter{response: response, header: make(http.Header)}
}

func (w *ResponseWriter) Header() http.Header {
	return w.header
}

// WriteHeader sets the status and commits the headers. Only the first call has any effect.
func (w *ResponseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	w.response.SetStatusCode(statusCode)
	w.response.SetStatusDescription(http.StatusText(statusCode))
	w.commitHeaders()
}

func (w *ResponseWriter) Write(p []byte) (int, error) {
	if !w.wroteHeader {
		if w.header.Get("Content-Type") == "" && len(p) > 0 {
			w.header.Set("Content-Type", http.DetectContentType(p))
		}
		w.WriteHeader(http.StatusOK)
	}
	return w.response.Write(p)
}

// Flush commits the headers with a 200 status if nothing was written yet.
func (w *ResponseWriter) Flush() {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
}

func (w *ResponseWriter) commitHeaders() {
	for _, name := range slices.Sorted(maps.Keys(w.header)) {
		values := w.header[name]
		if name == "Set-Cookie" {
			for _, v := range values {
				if cookie, err := http.ParseSetCookie(v); err == nil {
					w.response.AppendCookie(cookie)
				}
			}
			continue
		}
		for _, v := range values {
			w.response.Headers().Add(name, v)
		}
		if len(values) == 0 {
			continue
		}
		switch name {
		case "Content-Type":
			w.response.SetContentType(values[0])
		case "Location":
			w.response.SetRedirectLocation(values[0])
		case "Cache-Control":
			w.response.SetCacheControl(values[0])
		}
	}
}
