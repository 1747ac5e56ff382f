package middleware

import (
	"storypad/pkg/identity"

	"github.com/gin-gonic/gin"
)

const (
	// IdentityKey is the gin context key holding the resolved visitor id.
	IdentityKey = "owner_identity"

	identityCookie = "storypad_visitor"
	cookieMaxAge   = 365 * 24 * 3600
)

// IdentityMiddleware resolves a stable anonymous identity for the requesting
// client. A valid cookie is reused across requests; anything else gets a fresh
// identity minted and set. Handlers read the id from the context, never from
// the cookie directly.
func IdentityMiddleware(identityService *identity.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, err := c.Cookie(identityCookie); err == nil {
			if claims, err := identityService.Parse(tokenString); err == nil {
				c.Set(IdentityKey, claims.VisitorID)
				c.Next()
				return
			}
		}

		token, visitorID, err := identityService.Issue()
		if err != nil {
			// Leave the identity empty; save requests without one can still
			// create posts that nobody will be able to edit.
			c.Next()
			return
		}

		c.SetCookie(identityCookie, token, cookieMaxAge, "/", "", false, true)
		c.Set(IdentityKey, visitorID)
		c.Next()
	}
}
