package conformance

import (
	"io"

	"github.com/launchdarkly/fake-http-context/fakeweb"
	"github.com/launchdarkly/fake-http-context/framework"
)

// Capability names. Checks for a feature are skipped if the Subject does not declare it.
const (
	CapabilityOutput      = "output"
	CapabilityResponse    = "response"
	CapabilitySession     = "session"
	CapabilityApplication = "application"
	CapabilityBridge      = "bridge"
)

var AllCapabilities = []string{
	CapabilityApplication,
	CapabilityBridge,
	CapabilityOutput,
	CapabilityResponse,
	CapabilitySession,
}

// Store is the ordered name/value store behind every name-indexed collection.
type Store interface {
	Add(key string, value string)
	Get(key string) (string, bool)
	GetAt(index int) (string, error)
	GetKey(index int) (string, error)
	AllKeys() []string
	Set(key string, value string)
	SetAt(index int, value string) error
	Remove(key string)
	RemoveAt(index int) error
	Clear()
	Count() int
}

// OutputSink is the in-memory body of a response.
type OutputSink interface {
	io.Writer
	io.StringWriter
	ContentBytes() ([]byte, error)
	ContentString() (string, error)
	Len() (int, error)
	Clear() error
	Close() error
}

// Subject is the implementation being checked. NewStore and NewRequest are required; the other
// constructors are only called when the matching capability is declared.
type Subject struct {
	Name         string
	Capabilities framework.Capabilities

	NewStore func(caseInsensitive bool) Store
	// NewRequest creates a request for an absolute URL, with the given application root.
	NewRequest          func(rawURL, method, applicationPath string) (fakeweb.HTTPRequest, error)
	NewOutput           func() OutputSink
	NewResponse         func() fakeweb.HTTPResponse
	NewSession          func() fakeweb.HTTPSessionState
	NewApplicationState func() fakeweb.HTTPApplicationState
	NewContext          func(rawURL string, logger fakeweb.Logger) (*fakeweb.Context, error)
}

// T is the scope of one check. Pass it to assert and require as if it were a *testing.T.
type T struct {
	context *framework.Context
	subject Subject
}

func newScope(context *framework.Context, subject Subject) *T {
	return &T{context: context, subject: subject}
}

// Errorf is called by assertions to record a failure. It does not end the check.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by the require package to end the check immediately.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a sub-check with its own scope.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newScope(c, t.subject))
	})
}

func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

func (t *T) DebugLogger() framework.Logger {
	return t.context.DebugLogger()
}

func (t *T) RequireCapability(capability string) {
	t.context.RequireCapability(capability)
}

func (t *T) Defer(fn func()) {
	t.context.Defer(fn)
}

func (t *T) Subject() Subject {
	return t.subject
}
