// Package fixture describes fake request contexts declaratively, as JSON documents, so that a
// scenario can be kept next to the test that uses it or inspected with the command-line tool.
package fixture

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/creasty/defaults"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/launchdarkly/fake-http-context/fakeweb"
)

// Pair is one name/value entry. Lists of pairs keep their order, and names may repeat.
type Pair struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Cookie struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Path   string `json:"path,omitempty"`
	Domain string `json:"domain,omitempty"`
}

// Item is a session or application item. Its value can be any JSON value.
type Item struct {
	Name  string        `json:"name"`
	Value ldvalue.Value `json:"value"`
}

type File struct {
	Key         string `json:"key"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType" default:"application/octet-stream"`
	Content     string `json:"content"`
}

// Context is the JSON form of a fake context.
type Context struct {
	URL                     string                 `json:"url" default:"http://localhost/"`
	Method                  string                 `json:"method" default:"GET"`
	ApplicationPath         string                 `json:"applicationPath" default:"/"`
	PhysicalApplicationPath string                 `json:"physicalApplicationPath,omitempty"`
	Headers                 []Pair                 `json:"headers,omitempty"`
	Form                    []Pair                 `json:"form,omitempty"`
	ServerVariables         []Pair                 `json:"serverVariables,omitempty"`
	Cookies                 []Cookie               `json:"cookies,omitempty"`
	Files                   []File                 `json:"files,omitempty"`
	Session                 []Item                 `json:"session,omitempty"`
	Application             []Item                 `json:"application,omitempty"`
	ContentType             string                 `json:"contentType,omitempty"`
	ContentLength           ldvalue.OptionalInt    `json:"contentLength,omitempty"`
	UserAgent               ldvalue.OptionalString `json:"userAgent,omitempty"`
	Body                    string                 `json:"body,omitempty"`
	ResponseStatus          int                    `json:"responseStatus" default:"200"`
}

// Load reads and parses a fixture file.
func Load(path string) (Context, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Context{}, fmt.Errorf("reading fixture: %w", err)
	}
	fc, err := Parse(data)
	if err != nil {
		return Context{}, fmt.Errorf("%s: %w", path, err)
	}
	return fc, nil
}

// Parse decodes a fixture and fills in defaults for the fields it omits.
func Parse(data []byte) (Context, error) {
	var fc Context
	if err := json.Unmarshal(data, &fc); err != nil {
		return Context{}, fmt.Errorf("invalid fixture JSON: %w", err)
	}
	if err := fc.applyDefaults(); err != nil {
		return Context{}, err
	}
	return fc, nil
}

func (fc *Context) applyDefaults() error {
	if err := defaults.Set(fc); err != nil {
		return fmt.Errorf("applying fixture defaults: %w", err)
	}
	for i := range fc.Files {
		if err := defaults.Set(&fc.Files[i]); err != nil {
			return fmt.Errorf("applying fixture defaults: %w", err)
		}
	}
	return nil
}

// BuildRequest creates the fake request the fixture describes.
func (fc Context) BuildRequest() (*fakeweb.Request, error) {
	if err := fc.applyDefaults(); err != nil {
		return nil, err
	}
	req, err := fakeweb.ParseRequest(fc.URL, fc.Method)
	if err != nil {
		return nil, err
	}
	req.SetApplicationPath(fc.ApplicationPath)
	if fc.PhysicalApplicationPath != "" {
		req.SetPhysicalApplicationPath(fc.PhysicalApplicationPath)
	}
	addPairs(req.Headers().Add, fc.Headers)
	addPairs(req.Form().Add, fc.Form)
	addPairs(req.ServerVariables().Add, fc.ServerVariables)
	for _, c := range fc.Cookies {
		req.Cookies().Add(&http.Cookie{Name: c.Name, Value: c.Value, Path: c.Path, Domain: c.Domain})
	}
	for _, f := range fc.Files {
		file, err := fakeweb.NewPostedFile(f.FileName, f.ContentType, bytes.NewReader([]byte(f.Content)))
		if err != nil {
			return nil, fmt.Errorf("file %q: %w", f.Key, err)
		}
		req.Files().AddFile(f.Key, file)
	}
	if fc.ContentType != "" {
		req.SetContentType(fc.ContentType)
	}
	if fc.Body != "" {
		req.SetInputStream(bytes.NewReader([]byte(fc.Body)))
	}
	req.SetContentLength(fc.ContentLength.OrElse(len(fc.Body)))
	req.SetUserAgent(fc.UserAgent.OrElse(""))
	return req, nil
}

// Build creates the fake context the fixture describes, with a fresh response and session.
func (fc Context) Build(opts ...fakeweb.ContextOption) (*fakeweb.Context, error) {
	req, err := fc.BuildRequest()
	if err != nil {
		return nil, err
	}
	resp := fakeweb.NewResponse()
	resp.SetStatusCode(fc.ResponseStatus)

	session := fakeweb.NewSession()
	for _, item := range fc.Session {
		session.Add(item.Name, item.Value.AsArbitraryValue())
	}

	ctx, err := fakeweb.NewContext(req, resp, session, opts...)
	if err != nil {
		return nil, err
	}
	for _, item := range fc.Application {
		ctx.Application().Add(item.Name, item.Value.AsArbitraryValue())
	}
	return ctx, nil
}

func addPairs(add func(string, string), pairs []Pair) {
	for _, p := range pairs {
		add(p.Name, p.Value)
	}
}
