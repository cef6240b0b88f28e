// Package framework contains a small runner for named, nested checks that is used to verify
// an implementation of the fake web objects outside of "go test".
//
// The general model is:
//
// 1. A check suite calls Run with a root action. Inside it, Context.Run starts a named
// sub-check, much like testing.T.Run.
//
// 2. A Context can be handed to testify's assert and require packages, since it implements
// Errorf and FailNow. Failures are recorded against the check's ID.
//
// 3. Each check gets its own debug logger. Its output is passed to the CheckLogger when the
// check finishes, so a console logger can show it only for failed checks.
//
// 4. A check can declare that it needs a capability of the implementation being checked; if
// the implementation lacks it, the check is skipped rather than failed.
package framework
