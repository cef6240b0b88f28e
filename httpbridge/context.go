package httpbridge

import (
	"context"

	"github.com/authzed/ctxkey"

	"github.com/launchdarkly/fake-http-context/fakeweb"
)

var fakeContextKey = ctxkey.NewBoxedWithDefault[*fakeweb.Context](nil)

// ContextWithFake returns a copy of ctx that carries the fake context.
func ContextWithFake(ctx context.Context, fake *fakeweb.Context) context.Context {
	ctx = fakeContextKey.SetBox(ctx)
	fakeContextKey.Set(ctx, fake)
	return ctx
}

// FromContext returns the fake context carried by ctx, or nil.
func FromContext(ctx context.Context) *fakeweb.Context {
	return fakeContextKey.Value(ctx)
}

// MustFromContext is like FromContext but panics if there is no fake context.
func MustFromContext(ctx context.Context) *fakeweb.Context {
	fake := FromContext(ctx)
	if fake == nil {
		panic("request was not served through httpbridge.Serve")
	}
	return fake
}
