// Package fakeweb contains in-memory implementations of the objects a web server hands to
// request-processing code: request, response, session, application state, server utility,
// cache policy and posted files, tied together by a Context.
//
// The general model is:
//
// 1. A test builds a Request from an absolute URL and an HTTP method, then fills in whatever
// headers, form fields, cookies or server variables the code under test needs.
//
// 2. The test creates a Context from the request, a Response and a Session, and passes it
// (or the narrow HTTPContext, HTTPRequest and HTTPResponse interfaces) to the code under test.
//
// 3. Afterward the test inspects the response: status, headers, cookies, cache policy and
// the content written to its Output.
//
// None of these types are safe for concurrent use.
package fakeweb
