package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/todoapp/todoapp/database/model"
	"github.com/todoapp/todoapp/logger"
	"github.com/todoapp/todoapp/web/service"
	"github.com/todoapp/todoapp/web/session"
)

const identityKey = "identity"

// bearerToken reads the credential from the Authorization header, falling
// back to the access_token cookie.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return session.AccessToken(c)
}

// ResolveIdentity attaches the caller's identity to the context when the
// request carries a valid token. It never aborts: each handler decides how
// to treat an anonymous caller. Must run after StoreSession.
func ResolveIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token != "" {
			identity, err := service.NewAuthService(GetStore(c)).Resolve(token)
			if err != nil {
				logger.Debug("request token rejected:", err)
			} else {
				c.Set(identityKey, identity)
			}
		}
		c.Next()
	}
}

// GetIdentity returns the identity resolved for this request, or nil.
func GetIdentity(c *gin.Context) *model.Identity {
	if v, ok := c.Get(identityKey); ok {
		if identity, ok := v.(*model.Identity); ok {
			return identity
		}
	}
	return nil
}
