package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Ponloe/skymesh-core/internal/response"
)

const claimsKey = "auth_claims"

// RequireAuth guards a route group behind a valid bearer token.
func RequireAuth(issuer *Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(401, response.Fail("Missing or invalid authorization header."))
			return
		}
		tokenStr := strings.TrimPrefix(h, "Bearer ")
		claims, err := issuer.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(401, response.Fail("Invalid or expired token."))
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

func ClaimsFromContext(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok
}
