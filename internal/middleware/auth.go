package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"swiftship-api-io/api/internal/auth"
	"swiftship-api-io/api/pkg/util"
)

const claimContextKey = "jwt_claim"

// Authenticated rejects requests without a valid bearer token and stores the
// parsed claim on the request context for handlers downstream.
func Authenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		claim, err := auth.InitJwtClaim(c)
		if err != nil {
			util.HandleError(c, http.StatusUnauthorized, err, "authentication required")
			c.Abort()
			return
		}
		c.Set(claimContextKey, claim)
		c.Next()
	}
}

// OptionalAuthenticated stores the claim when a valid bearer token is
// present and lets the request through either way. Used on quote routes
// that also serve anonymous callers.
func OptionalAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claim, err := auth.InitJwtClaim(c); err == nil {
			c.Set(claimContextKey, claim)
		}
		c.Next()
	}
}

// AdminOnly restricts a route to admin tokens. Must run after Authenticated.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		claim, ok := Claim(c)
		if !ok || !claim.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "insufficient permissions: admin access required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// Claim returns the authenticated claim stored by Authenticated.
func Claim(c *gin.Context) (auth.JWTClaim, bool) {
	value, ok := c.Get(claimContextKey)
	if !ok {
		return auth.JWTClaim{}, false
	}
	claim, ok := value.(auth.JWTClaim)
	return claim, ok
}
