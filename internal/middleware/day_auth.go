package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sitehub-ops/checklist-api/internal/constants"
	apierrors "github.com/sitehub-ops/checklist-api/internal/errors"
)

// ValidateDate rejects requests whose :date parameter is not an ISO
// calendar date. Day store keys are always YYYY-MM-DD.
func ValidateDate() gin.HandlerFunc {
	return func(c *gin.Context) {
		date := c.Param("date")
		if _, err := time.Parse(constants.DateLayout, date); err != nil {
			apierrors.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			c.Abort()
			return
		}
		c.Next()
	}
}
