package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/sitehub-ops/checklist-api/internal/errors"
	"github.com/sitehub-ops/checklist-api/internal/report"
	"github.com/sitehub-ops/checklist-api/internal/services"
)

// ReportHandler serves XLSX exports of approved days.
type ReportHandler struct {
	dayService *services.DayService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(dayService *services.DayService) *ReportHandler {
	return &ReportHandler{
		dayService: dayService,
	}
}

// ExportDay streams the day report. The route is lead-only and the day
// must already be approved.
func (h *ReportHandler) ExportDay(c *gin.Context) {
	date := c.Param("date")

	day, err := h.dayService.GetOrCreateDay(date)
	if err != nil {
		apierrors.InternalError(c, "Failed to load day")
		return
	}

	workbook, err := report.BuildWorkbook(*day)
	if err != nil {
		if errors.Is(err, report.ErrDayNotApproved) {
			apierrors.Conflict(c, "Day is not approved yet")
			return
		}
		apierrors.InternalError(c, "Failed to build report")
		return
	}
	defer workbook.Close()

	filename := fmt.Sprintf("checklist-%s.xlsx", date)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := workbook.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
}
