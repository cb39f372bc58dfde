package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"pathology-case-server/internal/models"
	"pathology-case-server/internal/store"
	"pathology-case-server/internal/utils"
)

const (
	ContextUserIDKey   = "userID"
	ContextUserRoleKey = "userRole"
)

// AuthMiddleware validates the bearer token and stores the user identity
// on the request context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			utils.Unauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(parts[1], secret)
		if err != nil {
			utils.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextUserRoleKey, claims.Role)
		c.Next()
	}
}

// RoleAuthMiddleware restricts a route to the given roles.
func RoleAuthMiddleware(roles ...models.RoleName) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRoleFromContext(c)
		if !ok {
			utils.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		utils.Forbidden(c, "Insufficient role for this resource")
		c.Abort()
	}
}

// PermissionMiddleware restricts a route to roles carrying the given
// permission. Role definitions are editable at runtime, so the check
// consults the role store on every request.
func PermissionMiddleware(roles *store.RoleStore, permission models.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleName, ok := GetUserRoleFromContext(c)
		if !ok {
			utils.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		role, found := roles.RoleByName(roleName)
		if !found || !role.HasPermission(permission) {
			utils.Forbidden(c, "Insufficient permissions for this resource")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUserIDFromContext extracts the authenticated user ID from the context.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	value, exists := c.Get(ContextUserIDKey)
	if !exists {
		return "", false
	}
	id, ok := value.(string)
	return id, ok
}

// GetUserRoleFromContext extracts the authenticated user role from the context.
func GetUserRoleFromContext(c *gin.Context) (models.RoleName, bool) {
	value, exists := c.Get(ContextUserRoleKey)
	if !exists {
		return "", false
	}
	role, ok := value.(models.RoleName)
	return role, ok
}
