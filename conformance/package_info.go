// Package conformance is a suite of behavioral checks for implementations of the fake web
// objects. It runs on the framework package, outside of "go test", so that the same checks can
// be pointed at any Subject; DefaultSubject checks the implementations in package fakeweb.
package conformance
