package dto

import (
	"time"

	"github.com/sitehub-ops/checklist-api/internal/models"
)

// IdentityDTO represents a roster member in API responses
type IdentityDTO struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Role models.Role `json:"role"`
}

// CompletionDTO represents one signature on a task
type CompletionDTO struct {
	Name string    `json:"name"`
	Time time.Time `json:"time"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          string              `json:"id"`
	Text        string              `json:"text"`
	Category    models.TaskCategory `json:"category"`
	Done        bool                `json:"done"`
	AdHoc       bool                `json:"ad_hoc"`
	Completions []CompletionDTO     `json:"completions"`
}

// ApproverDTO identifies who locked a day
type ApproverDTO struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Role models.Role `json:"role"`
}

// DayDTO represents a full day in API responses
type DayDTO struct {
	Date       string       `json:"date"`
	Site       string       `json:"site"`
	Approved   bool         `json:"approved"`
	ApprovedBy *ApproverDTO `json:"approved_by,omitempty"`
	ApprovedAt *time.Time   `json:"approved_at,omitempty"`
	AllDone    bool         `json:"all_done"`
	Tasks      []TaskDTO    `json:"tasks"`
}

// LogEntryDTO represents one activity log line
type LogEntryDTO struct {
	Timestamp time.Time `json:"timestamp"`
	Text      string    `json:"text"`
}

// Conversion functions

// ToIdentityDTO converts an Identity model to IdentityDTO
func ToIdentityDTO(identity models.Identity) IdentityDTO {
	return IdentityDTO{
		ID:   identity.ID,
		Name: identity.Name,
		Role: identity.Role,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	completions := make([]CompletionDTO, len(task.Completions))
	for i, c := range task.Completions {
		completions[i] = CompletionDTO{Name: c.IdentityName, Time: c.Timestamp}
	}

	return TaskDTO{
		ID:          task.ID,
		Text:        task.Text,
		Category:    task.Category,
		Done:        task.Done(),
		AdHoc:       task.AdHoc,
		Completions: completions,
	}
}

// ToDayDTO converts a Day model to DayDTO
func ToDayDTO(day models.Day) DayDTO {
	tasks := make([]TaskDTO, len(day.Tasks))
	for i, t := range day.Tasks {
		tasks[i] = ToTaskDTO(t)
	}

	dto := DayDTO{
		Date:       day.Date,
		Site:       day.Site,
		Approved:   day.Approved,
		ApprovedAt: day.ApprovedAt,
		AllDone:    day.AllDone(),
		Tasks:      tasks,
	}
	if day.ApprovedBy != nil {
		dto.ApprovedBy = &ApproverDTO{
			ID:   day.ApprovedBy.ID,
			Name: day.ApprovedBy.Name,
			Role: day.ApprovedBy.Role,
		}
	}
	return dto
}

// ToLogEntryDTOs converts a slice of log entries
func ToLogEntryDTOs(entries []models.LogEntry) []LogEntryDTO {
	out := make([]LogEntryDTO, len(entries))
	for i, e := range entries {
		out[i] = LogEntryDTO{Timestamp: e.Timestamp, Text: e.Text}
	}
	return out
}
