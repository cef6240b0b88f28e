package fakeweb

import (
	"encoding/base64"
	"fmt"
	"html"
	"net/url"
	"os"
	"strings"

	"github.com/jzelinskie/stringz"
)

// ServerUtility provides the encoding helpers of a web server, bound to a context for error
// state and path mapping.
type ServerUtility struct {
	context       *Context
	machineName   string
	ScriptTimeout int
}

var _ HTTPServerUtility = (*ServerUtility)(nil)

func newServerUtility(ctx *Context) *ServerUtility {
	return &ServerUtility{context: ctx}
}

// MachineName returns the name set with SetMachineName, or the host name.
func (s *ServerUtility) MachineName() string {
	if s.machineName == "" {
		host, _ := os.Hostname()
		s.machineName = stringz.DefaultEmpty(host, "localhost")
	}
	return s.machineName
}

func (s *ServerUtility) SetMachineName(name string) { s.machineName = name }

func (s *ServerUtility) ClearError()                { s.context.ClearError() }
func (s *ServerUtility) GetLastError() error        { return s.context.FirstError() }
func (s *ServerUtility) HTMLEncode(v string) string { return html.EscapeString(v) }
func (s *ServerUtility) HTMLDecode(v string) string { return html.UnescapeString(v) }
func (s *ServerUtility) URLEncode(v string) string  { return url.QueryEscape(v) }

// URLDecode returns v unchanged if it is not a valid escaped string.
func (s *ServerUtility) URLDecode(v string) string { return unescapeOrRaw(v) }

// URLPathEncode escapes each segment of the path part of v and leaves any query untouched.
func (s *ServerUtility) URLPathEncode(v string) string {
	p, query, hasQuery := strings.Cut(v, "?")
	segments := strings.Split(p, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	encoded := strings.Join(segments, "/")
	if hasQuery {
		encoded += "?" + query
	}
	return encoded
}

// URLTokenEncode encodes data as unpadded base64url followed by a digit giving the number of
// padding characters removed.
func (s *ServerUtility) URLTokenEncode(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	padded := base64.URLEncoding.EncodeToString(data)
	trimmed := strings.TrimRight(padded, "=")
	return fmt.Sprintf("%s%d", trimmed, len(padded)-len(trimmed))
}

// URLTokenDecode reverses URLTokenEncode.
func (s *ServerUtility) URLTokenDecode(token string) ([]byte, error) {
	if token == "" {
		return nil, nil
	}
	last := token[len(token)-1]
	if last < '0' || last > '2' {
		return nil, invalidArgument("input", "invalid URL token padding")
	}
	padded := token[:len(token)-1] + strings.Repeat("=", int(last-'0'))
	data, err := base64.URLEncoding.DecodeString(padded)
	if err != nil {
		return nil, fmt.Errorf("decoding URL token: %w", err)
	}
	return data, nil
}

// MapPath delegates to the context's request.
func (s *ServerUtility) MapPath(virtualPath string) (string, error) {
	return s.context.Request().MapPath(virtualPath)
}
