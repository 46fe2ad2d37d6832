package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sitehub-ops/checklist-api/internal/constants"
	apierrors "github.com/sitehub-ops/checklist-api/internal/errors"
	"github.com/sitehub-ops/checklist-api/internal/models"
	"github.com/sitehub-ops/checklist-api/internal/services"
)

// RequireAuth checks the session and resolves the stored identity id
// back to a roster member, storing the full identity in the context.
func RequireAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		id := session.Get(constants.ContextKeyIdentityID)
		if id == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		idStr, ok := id.(string)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		identity, err := authService.GetIdentity(idStr)
		if err != nil {
			// Roster changed since login; the session is no longer valid.
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyIdentity, *identity)
		c.Next()
	}
}

// GetIdentity retrieves the authenticated identity from context
func GetIdentity(c *gin.Context) (models.Identity, bool) {
	v, exists := c.Get(constants.ContextKeyIdentity)
	if !exists {
		return models.Identity{}, false
	}
	identity, ok := v.(models.Identity)
	return identity, ok
}
