package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"coopsave/auth"
	"coopsave/entity"
)

// Context keys populated by RequireAuth.
const (
	CtxUserID = "userId"
	CtxScope  = "scope"
)

// RequireAuth validates the Bearer JWT, places userId and scope into the
// request context and continues. Missing, malformed or expired tokens reject
// with 401 before any handler runs.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"version": "1.0.0", "error": "missing or invalid Authorization header"})
			return
		}
		claims, err := auth.ParseToken(authHeader[7:])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"version": "1.0.0", "error": "invalid or expired token"})
			return
		}
		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxScope, claims.Scope)
		c.Next()
	}
}

// RequireScopes ensures the authenticated principal carries one of the allowed
// scopes. Runs after RequireAuth.
func RequireScopes(allowed ...entity.Role) gin.HandlerFunc {
	scopeSet := map[string]struct{}{}
	for _, s := range allowed {
		scopeSet[string(s)] = struct{}{}
	}
	return func(c *gin.Context) {
		scope := c.GetString(CtxScope)
		if _, ok := scopeSet[scope]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"version": "1.0.0", "error": "forbidden: insufficient scope"})
			return
		}
		c.Next()
	}
}
