package repository

import (
	"errors"

	"github.com/sitehub-ops/checklist-api/internal/models"
)

var (
	// ErrDayNotFound is returned by Get when no day exists for the date.
	ErrDayNotFound = errors.New("day not found")

	// ErrStaleWrite is returned by Update when the stored version no
	// longer matches the version the caller read. The caller should
	// re-fetch and re-apply.
	ErrStaleWrite = errors.New("day was modified by another writer")

	// ErrDayExists is returned by Create when a concurrent writer
	// created the same date first.
	ErrDayExists = errors.New("day already exists")

	// ErrCorruptDay is returned by Get when the stored payload cannot be
	// decoded. Callers recover by synthesizing a fresh day.
	ErrCorruptDay = errors.New("stored day payload is corrupt")
)

// DayRepository defines the interface for day persistence. A day is
// stored whole: Update replaces the entire payload for its date.
type DayRepository interface {
	// Get loads the day for a date along with its version stamp.
	Get(date string) (*models.Day, uint64, error)

	// Create stores a brand new day at version 1.
	Create(day *models.Day) error

	// Update replaces the stored day if the version still matches,
	// bumping the version by one.
	Update(day *models.Day, expectedVersion uint64) error

	// Overwrite replaces the stored day unconditionally, creating it if
	// absent. Only used to recover from a corrupt payload.
	Overwrite(day *models.Day) error
}
