package fakeweb

import (
	"iter"
	"strings"

	"github.com/google/uuid"

	"github.com/launchdarkly/fake-http-context/collection"
)

// CookieMode says how the session identifier travels between client and server.
type CookieMode int

const (
	UseCookies CookieMode = iota
	UseURI
	UseDeviceProfile
	AutoDetect
)

// SessionMode says where session state would be kept.
type SessionMode int

const (
	InProc SessionMode = iota
	Off
	StateServer
	SQLServer
	Custom
)

// Session is an in-memory session. Item names are case-sensitive.
type Session struct {
	items        *collection.Collection[any]
	cookieMode   CookieMode
	isAbandoned  bool
	isNewSession bool
	isReadOnly   bool
	mode         SessionMode
	sessionID    string

	codePage int
	lcid     int
	timeout  int
}

var _ HTTPSessionState = (*Session)(nil)

// NewSession creates a new, empty session with a random 32-digit hexadecimal ID.
func NewSession() *Session {
	return &Session{
		items:        collection.New[any](collection.Ordinal),
		cookieMode:   UseCookies,
		isNewSession: true,
		mode:         InProc,
		sessionID:    newSessionID(),
	}
}

func newSessionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Get returns the first item with the given name, or nil.
func (s *Session) Get(name string) any {
	v, _ := s.items.Get(name)
	return v
}

func (s *Session) GetAt(index int) (any, error) { return s.items.GetAt(index) }

// Set replaces the first item with the given name, or adds it.
func (s *Session) Set(name string, value any) { s.items.Set(name, value) }

func (s *Session) SetAt(index int, value any) error { return s.items.SetAt(index, value) }
func (s *Session) Add(name string, value any)       { s.items.Add(name, value) }
func (s *Session) Remove(name string)               { s.items.Remove(name) }
func (s *Session) RemoveAt(index int) error         { return s.items.RemoveAt(index) }
func (s *Session) RemoveAll()                       { s.items.Clear() }
func (s *Session) Clear()                           { s.items.Clear() }
func (s *Session) Count() int                       { return s.items.Count() }
func (s *Session) Keys() []string                   { return s.items.AllKeys() }
func (s *Session) All() iter.Seq2[string, any]      { return s.items.Entries() }

// Abandon only marks the session; the items stay available.
func (s *Session) Abandon() { s.isAbandoned = true }

func (s *Session) IsAbandoned() bool      { return s.isAbandoned }
func (s *Session) IsCookieless() bool     { return s.cookieMode == UseURI }
func (s *Session) IsNewSession() bool     { return s.isNewSession }
func (s *Session) IsReadOnly() bool       { return s.isReadOnly }
func (s *Session) CookieMode() CookieMode { return s.cookieMode }
func (s *Session) Mode() SessionMode      { return s.mode }
func (s *Session) SessionID() string      { return s.sessionID }

func (s *Session) CodePage() int          { return s.codePage }
func (s *Session) SetCodePage(cp int)     { s.codePage = cp }
func (s *Session) LCID() int              { return s.lcid }
func (s *Session) SetLCID(lcid int)       { s.lcid = lcid }
func (s *Session) Timeout() int           { return s.timeout }
func (s *Session) SetTimeout(minutes int) { s.timeout = minutes }

func (s *Session) SetCookieMode(mode CookieMode) { s.cookieMode = mode }
func (s *Session) SetIsNewSession(isNew bool)    { s.isNewSession = isNew }
func (s *Session) SetIsReadOnly(readOnly bool)   { s.isReadOnly = readOnly }
func (s *Session) SetMode(mode SessionMode)      { s.mode = mode }
func (s *Session) SetSessionID(sessionID string) { s.sessionID = sessionID }
