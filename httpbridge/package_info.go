// Package httpbridge connects the fakes in package fakeweb to net/http, so that ordinary
// http.Handler code can be driven through a fake context and its effects inspected on the
// fake response.
package httpbridge
