package handlers

import (
	"github.com/cloudwego/hertz/pkg/app"

	"github.com/Joydas46/VideoTube-Twitter/pkg/jwt"
)

const principalKey = "principal"

// SetPrincipal stashes the authenticated caller on the request. Only the
// auth middlewares call this.
func SetPrincipal(c *app.RequestContext, p jwt.Principal) {
	c.Set(principalKey, p)
}

// GetPrincipal returns the authenticated caller. Routes behind the required
// auth middleware can rely on ok being true.
func GetPrincipal(c *app.RequestContext) (jwt.Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return jwt.Principal{}, false
	}
	p, ok := v.(jwt.Principal)
	return p, ok
}

// OptionalPrincipal is GetPrincipal for routes where anonymous is fine.
func OptionalPrincipal(c *app.RequestContext) *jwt.Principal {
	if p, ok := GetPrincipal(c); ok {
		return &p
	}
	return nil
}
