package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sitehub-ops/checklist-api/internal/constants"
	"github.com/sitehub-ops/checklist-api/internal/models"
	"github.com/sitehub-ops/checklist-api/internal/utils"
)

var (
	ErrDayApproved   = errors.New("day is approved and locked")
	ErrNotPermitted  = errors.New("role is not permitted to perform this action")
	ErrTaskNotFound  = errors.New("task not found")
	ErrEmptyTaskText = errors.New("task text cannot be empty")
	ErrDayNotReady   = errors.New("not all tasks are complete")
)

// Template is the fixed list of recurring tasks a fresh day starts with.
type Template struct {
	Opening []string
	Closing []string
}

// DefaultTemplate returns the site's standard opening and closing tasks.
func DefaultTemplate() Template {
	return Template{
		Opening: []string{
			"Open work permit - bring safety card",
			"Check all site fences for damage",
			"Register deliveries in the booking system",
			"Photograph the delivery plate",
			"Photograph the delivery note",
		},
		Closing: []string{
			"Check for cigarette butts",
			"Clean the entrance mats",
			"Clean the photo recognition screen",
			"General tidy-up",
			"Confirm the site is closed correctly",
		},
	}
}

// NewDay synthesizes a fresh day from the template: opening tasks first,
// then closing, all unsigned, with an empty log.
func NewDay(date, site string, tmpl Template, now time.Time) (models.Day, error) {
	day := models.Day{
		Date:  date,
		Site:  site,
		Tasks: make([]models.Task, 0, len(tmpl.Opening)+len(tmpl.Closing)),
		Log:   []models.LogEntry{},
	}

	appendTasks := func(texts []string, category models.TaskCategory) error {
		for _, text := range texts {
			id, err := utils.GenerateTaskID()
			if err != nil {
				return err
			}
			day.Tasks = append(day.Tasks, models.Task{
				ID:          id,
				Text:        text,
				Category:    category,
				Completions: []models.Completion{},
			})
		}
		return nil
	}

	if err := appendTasks(tmpl.Opening, models.CategoryOpening); err != nil {
		return models.Day{}, err
	}
	if err := appendTasks(tmpl.Closing, models.CategoryClosing); err != nil {
		return models.Day{}, err
	}

	return day, nil
}

// ToggleTask signs or un-signs a task for the acting identity.
//
// An unsigned actor adds a completion. An actor who already signed takes
// it back: a Worker removes only their own completion, while a
// Coordinator clears every completion on the task - their un-check is a
// supervisory reset, not self-service. Rejected calls return the day
// unchanged with a sentinel error; callers treat these as no-ops.
func ToggleTask(day models.Day, actor models.Identity, taskID string, now time.Time) (models.Day, error) {
	if day.Approved {
		return day, ErrDayApproved
	}
	if !actor.Role.CanEditTasks() {
		return day, ErrNotPermitted
	}
	idx := day.FindTask(taskID)
	if idx < 0 {
		return day, ErrTaskNotFound
	}

	next := day.Clone()
	task := &next.Tasks[idx]

	if !task.SignedBy(actor.Name) {
		task.Completions = append(task.Completions, models.Completion{
			IdentityName: actor.Name,
			Timestamp:    now,
		})
		appendLog(&next, now, fmt.Sprintf("%s completed: %s", actor.Name, task.Text))
		return next, nil
	}

	if actor.Role == models.RoleCoordinator {
		task.Completions = []models.Completion{}
		appendLog(&next, now, fmt.Sprintf("%s reset: %s", actor.Name, task.Text))
		return next, nil
	}

	kept := task.Completions[:0]
	for _, c := range task.Completions {
		if c.IdentityName != actor.Name {
			kept = append(kept, c)
		}
	}
	task.Completions = kept
	appendLog(&next, now, fmt.Sprintf("%s removed: %s", actor.Name, task.Text))
	return next, nil
}

// AddAdHocTask appends a free-form task to the day. Ad-hoc tasks
// participate in completion and approval exactly like template tasks.
func AddAdHocTask(day models.Day, actor models.Identity, text string, now time.Time) (models.Day, error) {
	if day.Approved {
		return day, ErrDayApproved
	}
	if !actor.Role.CanEditTasks() {
		return day, ErrNotPermitted
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return day, ErrEmptyTaskText
	}
	if len(text) > constants.MaxAdHocTextLength {
		text = text[:constants.MaxAdHocTextLength]
	}

	id, err := utils.GenerateTaskID()
	if err != nil {
		return day, err
	}

	next := day.Clone()
	next.Tasks = append(next.Tasks, models.Task{
		ID:          id,
		Text:        text,
		Category:    models.CategoryAdHoc,
		Completions: []models.Completion{},
		AdHoc:       true,
	})
	appendLog(&next, now, fmt.Sprintf("%s added ad-hoc: %s", actor.Name, text))
	return next, nil
}

// ApproveDay locks the day once every task is done. Only the Lead may
// approve; an already-approved day cannot be approved again. An empty
// task list is vacuously ready.
func ApproveDay(day models.Day, actor models.Identity, now time.Time) (models.Day, error) {
	if day.Approved {
		return day, ErrDayApproved
	}
	if actor.Role != models.RoleLead {
		return day, ErrNotPermitted
	}
	if !day.AllDone() {
		return day, ErrDayNotReady
	}

	next := day.Clone()
	next.Approved = true
	next.ApprovedBy = &models.Approver{ID: actor.ID, Name: actor.Name, Role: actor.Role}
	at := now
	next.ApprovedAt = &at
	appendLog(&next, now, fmt.Sprintf("%s approved the day", actor.Name))
	return next, nil
}

func appendLog(day *models.Day, now time.Time, text string) {
	day.Log = append(day.Log, models.LogEntry{Timestamp: now, Text: text})
}
