package conformance

import (
	"github.com/launchdarkly/fake-http-context/collection"
	"github.com/launchdarkly/fake-http-context/fakeweb"
)

// DefaultSubject checks the implementations in package fakeweb.
func DefaultSubject() Subject {
	return Subject{
		Name:         "fakeweb",
		Capabilities: AllCapabilities,
		NewStore: func(caseInsensitive bool) Store {
			if caseInsensitive {
				return collection.New[string](collection.IgnoreCase)
			}
			return collection.New[string](collection.Ordinal)
		},
		NewRequest: func(rawURL, method, applicationPath string) (fakeweb.HTTPRequest, error) {
			req, err := fakeweb.ParseRequest(rawURL, method)
			if err != nil {
				return nil, err
			}
			req.SetApplicationPath(applicationPath)
			return req, nil
		},
		NewOutput:           func() OutputSink { return fakeweb.NewOutput() },
		NewResponse:         func() fakeweb.HTTPResponse { return fakeweb.NewResponse() },
		NewSession:          func() fakeweb.HTTPSessionState { return fakeweb.NewSession() },
		NewApplicationState: func() fakeweb.HTTPApplicationState { return fakeweb.NewApplicationState() },
		NewContext: func(rawURL string, logger fakeweb.Logger) (*fakeweb.Context, error) {
			return fakeweb.NewContextForURL(rawURL, fakeweb.WithLogger(logger))
		},
	}
}
