package fakeweb

import (
	"net/url"

	"github.com/launchdarkly/fake-http-context/collection"
)

// UnvalidatedRequestValues exposes the values of a request without request validation. Since
// the fakes never validate anything, every accessor reads straight through to the request.
type UnvalidatedRequestValues struct {
	request HTTPRequest
}

func NewUnvalidatedRequestValues(request HTTPRequest) *UnvalidatedRequestValues {
	return &UnvalidatedRequestValues{request: request}
}

func (u *UnvalidatedRequestValues) Cookies() *CookieCollection                  { return u.request.Cookies() }
func (u *UnvalidatedRequestValues) Files() *FileCollection                      { return u.request.Files() }
func (u *UnvalidatedRequestValues) Form() *collection.Collection[string]        { return u.request.Form() }
func (u *UnvalidatedRequestValues) Headers() *collection.Collection[string]     { return u.request.Headers() }
func (u *UnvalidatedRequestValues) Path() string                                { return u.request.Path() }
func (u *UnvalidatedRequestValues) PathInfo() string                            { return u.request.PathInfo() }
func (u *UnvalidatedRequestValues) QueryString() *collection.Collection[string] { return u.request.QueryString() }
func (u *UnvalidatedRequestValues) RawURL() string                              { return u.request.RawURL() }
func (u *UnvalidatedRequestValues) URL() *url.URL                               { return u.request.URL() }

// Lookup uses the same precedence as Request.Lookup.
func (u *UnvalidatedRequestValues) Lookup(key string) (string, bool) {
	return lookupParam(u.request, key)
}
