package authfunc

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/Joydas46/VideoTube-Twitter/cmd/api/handlers"
	"github.com/Joydas46/VideoTube-Twitter/pkg/errno"
	"github.com/Joydas46/VideoTube-Twitter/pkg/jwt"
)

// RequireAuth aborts with 401 unless the request carries a valid access
// token. The principal lands on the request context for the handler.
func RequireAuth(tokens *jwt.TokenManager) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		principal, ok := tokens.ExtractPrincipal(ctx, c)
		if !ok {
			handlers.SendError(ctx, c, errno.UnauthenticatedErr)
			c.Abort()
			return
		}
		handlers.SetPrincipal(c, principal)
		c.Next(ctx)
	}
}

// OptionalAuth attaches a principal when a valid token is present and lets
// anonymous requests through untouched.
func OptionalAuth(tokens *jwt.TokenManager) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		if principal, ok := tokens.ExtractPrincipal(ctx, c); ok {
			handlers.SetPrincipal(c, principal)
		}
		c.Next(ctx)
	}
}
