package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/sitehub-ops/checklist-api/internal/models"
	"github.com/sitehub-ops/checklist-api/internal/repository"
)

// Clock is the injected time source.
type Clock func() time.Time

// DayService orchestrates the day store and the task engine. Every
// mutation re-fetches the day, applies a pure transformation, and writes
// the result back under the version read, retrying once on a stale
// write.
type DayService struct {
	repo  repository.DayRepository
	tmpl  Template
	site  string
	clock Clock
}

// NewDayService creates a new DayService. A nil clock means time.Now.
func NewDayService(repo repository.DayRepository, tmpl Template, site string, clock Clock) *DayService {
	if clock == nil {
		clock = time.Now
	}
	return &DayService{repo: repo, tmpl: tmpl, site: site, clock: clock}
}

// GetOrCreateDay returns the day for a date, synthesizing and persisting
// a fresh one from the template if none exists. An existing day is
// returned as stored, even if the template has since changed. A corrupt
// stored payload is replaced by a fresh day rather than reported.
func (s *DayService) GetOrCreateDay(date string) (*models.Day, error) {
	day, _, err := s.load(date)
	return day, err
}

func (s *DayService) load(date string) (*models.Day, uint64, error) {
	day, version, err := s.repo.Get(date)
	if err == nil {
		return day, version, nil
	}

	switch {
	case errors.Is(err, repository.ErrDayNotFound):
		fresh, err := NewDay(date, s.site, s.tmpl, s.clock())
		if err != nil {
			return nil, 0, fmt.Errorf("failed to synthesize day %s: %w", date, err)
		}
		if err := s.repo.Create(&fresh); err != nil {
			if errors.Is(err, repository.ErrDayExists) {
				// Lost the creation race; the other writer's day wins.
				return s.repo.Get(date)
			}
			return nil, 0, err
		}
		return &fresh, 1, nil

	case errors.Is(err, repository.ErrCorruptDay):
		fresh, nerr := NewDay(date, s.site, s.tmpl, s.clock())
		if nerr != nil {
			return nil, 0, fmt.Errorf("failed to synthesize day %s: %w", date, nerr)
		}
		if oerr := s.repo.Overwrite(&fresh); oerr != nil {
			return nil, 0, oerr
		}
		return s.repo.Get(date)

	default:
		return nil, 0, err
	}
}

// ToggleTask signs or un-signs a task for the actor and persists the
// result.
func (s *DayService) ToggleTask(date string, actor models.Identity, taskID string) (*models.Day, error) {
	return s.mutate(date, func(day models.Day) (models.Day, error) {
		return ToggleTask(day, actor, taskID, s.clock())
	})
}

// AddAdHocTask appends a free-form task to the day and persists it.
func (s *DayService) AddAdHocTask(date string, actor models.Identity, text string) (*models.Day, error) {
	return s.mutate(date, func(day models.Day) (models.Day, error) {
		return AddAdHocTask(day, actor, text, s.clock())
	})
}

// Approve locks the day and persists it.
func (s *DayService) Approve(date string, actor models.Identity) (*models.Day, error) {
	return s.mutate(date, func(day models.Day) (models.Day, error) {
		return ApproveDay(day, actor, s.clock())
	})
}

func (s *DayService) mutate(date string, op func(models.Day) (models.Day, error)) (*models.Day, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		day, version, err := s.load(date)
		if err != nil {
			return nil, err
		}

		next, err := op(*day)
		if err != nil {
			// Engine rejection: the day is unchanged and nothing is
			// persisted. Surface the typed error with the current day.
			return day, err
		}

		if err := s.repo.Update(&next, version); err != nil {
			if errors.Is(err, repository.ErrStaleWrite) {
				lastErr = err
				continue
			}
			return nil, err
		}
		return &next, nil
	}
	return nil, lastErr
}
