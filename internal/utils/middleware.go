package utils

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"travel-app/tour-review-service/internal/models"
)

const (
	ContextUserID      = "userId"
	ContextRole        = "role"
	ContextPermissions = "permissions"
)

// AuthMiddleware validates the Bearer token and puts the caller's identity and
// permission set into the gin context.
func AuthMiddleware(jwtUtil *JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": 401, "message": "authorization header required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": 401, "message": "invalid authorization header"})
			return
		}

		claims, err := jwtUtil.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": 401, "message": "invalid token"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextPermissions, claims.Permissions)
		c.Next()
	}
}

// PermissionsFromContext returns the caller's permission set, empty when the
// route ran without auth.
func PermissionsFromContext(c *gin.Context) models.PermissionSet {
	if raw, ok := c.Get(ContextPermissions); ok {
		if set, ok := raw.(models.PermissionSet); ok {
			return set
		}
	}
	return models.PermissionSet{}
}
