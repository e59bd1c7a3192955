package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"snapclock.com/snapclock/security"
	"snapclock.com/snapclock/web/common"
)

const identityKey = "identity"

// Authentication checks for a valid Bearer token and passes the parsed
// identity into the request context.
func Authentication(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		identity, err := security.ParseIdentityToken(parts[1], jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("invalid or expired token"))
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// GetIdentity returns the identity set by Authentication.
func GetIdentity(c *gin.Context) (*security.Identity, bool) {
	value, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	identity, ok := value.(*security.Identity)
	return identity, ok
}
