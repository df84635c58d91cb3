package composables

import (
	"context"

	"github.com/iota-uz/sitecms/pkg/auth"
	"github.com/iota-uz/sitecms/pkg/constants"
)

func WithAuth(ctx context.Context, a auth.Context) context.Context {
	return context.WithValue(ctx, constants.AuthKey, a)
}

// UseAuth returns the caller resolved by the session middleware, or an anonymous context.
func UseAuth(ctx context.Context) auth.Context {
	a, ok := ctx.Value(constants.AuthKey).(auth.Context)
	if !ok {
		return auth.Anonymous()
	}
	return a
}
