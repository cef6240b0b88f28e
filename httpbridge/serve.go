package httpbridge

import (
	"fmt"
	"net/http"

	"github.com/launchdarkly/fake-http-context/fakeweb"
)

// Serve runs h against the fake context: the fake request is converted to an *http.Request
// whose context carries the fake context, and everything h writes lands in the fake response.
// While h runs it is the context's current handler. A panic in h is recorded on the context
// and returned as an error.
func Serve(ctx *fakeweb.Context, h http.Handler) (err error) {
	r, err := NewHTTPRequest(ctx.Request())
	if err != nil {
		return err
	}
	r = r.WithContext(ContextWithFake(r.Context(), ctx))

	ctx.SetCurrentHandler(h)
	ctx.SetCurrentNotification(fakeweb.ExecuteRequestHandler)
	w := NewResponseWriter(ctx.Response())
	ctx.Logger().Printf("Serving %s %s", r.Method, r.URL)

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("handler panicked: %v", rec)
			ctx.AddError(err)
			w.WriteHeader(http.StatusInternalServerError)
		}
		w.Flush()
		if restoreErr := ctx.RestoreCurrentHandler(); restoreErr != nil && err == nil {
			err = restoreErr
		}
		ctx.SetCurrentNotification(fakeweb.EndRequest)
		ctx.Logger().Printf("Served %s %s with status %d", r.Method, r.URL, ctx.Response().StatusCode())
	}()

	h.ServeHTTP(w, r)
	return nil
}

// Handler returns an http.Handler that copies each incoming request into a new fake context,
// serves h against it with Serve, and then writes the fake response back to the real one.
// Inside h, FromContext(r.Context()) returns the fake context.
func Handler(h http.Handler, opts ...fakeweb.ContextOption) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := NewRequestFromHTTP(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		ctx, err := fakeweb.NewContext(req, fakeweb.NewResponse(), fakeweb.NewSession(), opts...)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer ctx.Close()
		if err := Serve(ctx, h); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		copyResponse(w, ctx.Response())
	})
}

func copyResponse(w http.ResponseWriter, response *fakeweb.Response) {
	for name, v := range response.Headers().Entries() {
		w.Header().Add(name, v)
	}
	for cookie := range response.Cookies().All() {
		http.SetCookie(w, cookie)
	}
	w.WriteHeader(response.StatusCode())
	if body, err := response.Output().ContentBytes(); err == nil {
		_, _ = w.Write(body)
	}
}
