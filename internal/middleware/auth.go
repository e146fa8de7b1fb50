package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/msibaramdora/visitor-management-api/internal/constants"
	apierrors "github.com/msibaramdora/visitor-management-api/internal/errors"
	"github.com/msibaramdora/visitor-management-api/internal/models"
	"github.com/msibaramdora/visitor-management-api/internal/services"
)

// Identity resolves the session to a full user record and attaches it to the
// request context. Requests without a valid session pass through anonymous;
// RequireAuth and RequireRole do the gating.
func Identity(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		raw := session.Get(constants.SessionKeyUserID)
		if raw == nil {
			c.Next()
			return
		}

		userID, ok := toUserID(raw)
		if !ok {
			c.Next()
			return
		}

		user, err := authService.GetUser(userID)
		if err != nil {
			// Stale session pointing at a missing user; treat as anonymous.
			c.Next()
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// RequireAuth rejects anonymous requests.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole rejects anonymous requests with 401 and authenticated requests
// holding the wrong role with 403.
func RequireRole(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}
		if user.Role != role {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser retrieves the caller identity attached by Identity.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil, false
	}
	return user, true
}

func toUserID(raw interface{}) (uint64, bool) {
	switch v := raw.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
