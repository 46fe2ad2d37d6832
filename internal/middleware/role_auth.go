package middleware

import (
	"github.com/gin-gonic/gin"
	apierrors "github.com/sitehub-ops/checklist-api/internal/errors"
	"github.com/sitehub-ops/checklist-api/internal/models"
)

// RequireLead restricts a route to the logistics lead. Approval itself
// is re-checked inside the engine; this guards lead-only surfaces such
// as the report export.
func RequireLead() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if identity.Role != models.RoleLead {
			apierrors.Forbidden(c, "Lead role required")
			c.Abort()
			return
		}

		c.Next()
	}
}
