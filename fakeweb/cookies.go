package fakeweb

import (
	"iter"
	"net/http"

	"github.com/launchdarkly/fake-http-context/collection"
)

// CookieCollection holds cookies in insertion order, keyed case-insensitively by cookie name.
type CookieCollection struct {
	items *collection.Collection[*http.Cookie]
}

// NewCookieCollection creates an empty cookie collection.
func NewCookieCollection() *CookieCollection {
	return &CookieCollection{items: collection.New[*http.Cookie](collection.IgnoreCase)}
}

// Add appends a cookie, even if one with the same name exists.
func (c *CookieCollection) Add(cookie *http.Cookie) {
	c.items.Add(cookie.Name, cookie)
}

// Set replaces the first cookie with the same name, or appends it.
func (c *CookieCollection) Set(cookie *http.Cookie) {
	c.items.Set(cookie.Name, cookie)
}

// Get returns the first cookie with the given name, or nil.
func (c *CookieCollection) Get(name string) *http.Cookie {
	cookie, _ := c.items.Get(name)
	return cookie
}

func (c *CookieCollection) GetAt(index int) (*http.Cookie, error) {
	return c.items.GetAt(index)
}

// Remove deletes every cookie with the given name.
func (c *CookieCollection) Remove(name string) {
	c.items.Remove(name)
}

func (c *CookieCollection) Clear()            { c.items.Clear() }
func (c *CookieCollection) Count() int        { return c.items.Count() }
func (c *CookieCollection) AllKeys() []string { return c.items.AllKeys() }

func (c *CookieCollection) All() iter.Seq[*http.Cookie] {
	return c.items.All()
}
