package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sitehub-ops/checklist-api/internal/dto"
	apierrors "github.com/sitehub-ops/checklist-api/internal/errors"
	"github.com/sitehub-ops/checklist-api/internal/middleware"
	"github.com/sitehub-ops/checklist-api/internal/repository"
	"github.com/sitehub-ops/checklist-api/internal/services"
	"github.com/sitehub-ops/checklist-api/internal/utils"
)

// DayHandler coordinates day and task HTTP handlers.
type DayHandler struct {
	dayService *services.DayService
}

// NewDayHandler creates a new DayHandler.
func NewDayHandler(dayService *services.DayService) *DayHandler {
	return &DayHandler{
		dayService: dayService,
	}
}

// GetDay returns the day for a date, creating it from the template if it
// does not exist yet.
func (h *DayHandler) GetDay(c *gin.Context) {
	day, err := h.dayService.GetOrCreateDay(c.Param("date"))
	if err != nil {
		apierrors.InternalError(c, "Failed to load day")
		return
	}

	c.JSON(http.StatusOK, dto.ToDayDTO(*day))
}

// GetLog returns a page of the day's activity log, oldest first.
func (h *DayHandler) GetLog(c *gin.Context) {
	day, err := h.dayService.GetOrCreateDay(c.Param("date"))
	if err != nil {
		apierrors.InternalError(c, "Failed to load day")
		return
	}

	params := utils.GetPaginationParams(c)
	entries := day.Log
	total := len(entries)

	from := params.Offset
	if from > total {
		from = total
	}
	to := from + params.Limit
	if to > total {
		to = total
	}

	c.JSON(http.StatusOK, gin.H{
		"log": dto.ToLogEntryDTOs(entries[from:to]),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// ToggleTask signs or un-signs a task for the current identity.
func (h *DayHandler) ToggleTask(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	day, err := h.dayService.ToggleTask(c.Param("date"), identity, c.Param("task_id"))
	if err != nil {
		respondDayError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDayDTO(*day))
}

// AddAdHocTask appends a free-form task to the day.
func (h *DayHandler) AddAdHocTask(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type AddTaskRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req AddTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	day, err := h.dayService.AddAdHocTask(c.Param("date"), identity, req.Text)
	if err != nil {
		respondDayError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDayDTO(*day))
}

// Approve locks the day once all tasks are complete.
func (h *DayHandler) Approve(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	day, err := h.dayService.Approve(c.Param("date"), identity)
	if err != nil {
		respondDayError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDayDTO(*day))
}

// respondDayError maps engine rejections to non-fatal HTTP errors. The
// day is never changed by a rejected operation.
func respondDayError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrDayApproved):
		apierrors.Conflict(c, "Day is approved and locked")
	case errors.Is(err, services.ErrNotPermitted):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrEmptyTaskText):
		apierrors.BadRequest(c, "Task text cannot be empty")
	case errors.Is(err, services.ErrDayNotReady):
		apierrors.Conflict(c, "Not all tasks are complete")
	case errors.Is(err, repository.ErrStaleWrite):
		apierrors.Conflict(c, "Day was modified concurrently, retry")
	default:
		apierrors.InternalError(c, "")
	}
}
