package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sitehub-ops/checklist-api/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GormDayRepository is a GORM implementation of DayRepository
type GormDayRepository struct {
	db *gorm.DB
}

// NewDayRepository creates a new DayRepository
func NewDayRepository(db *gorm.DB) DayRepository {
	return &GormDayRepository{db: db}
}

// Get loads the day for a date along with its version stamp.
func (r *GormDayRepository) Get(date string) (*models.Day, uint64, error) {
	var record models.DayRecord
	if err := r.db.First(&record, "date = ?", date).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrDayNotFound
		}
		return nil, 0, fmt.Errorf("failed to load day %s: %w", date, err)
	}

	var day models.Day
	if err := json.Unmarshal([]byte(record.Payload), &day); err != nil {
		return nil, 0, fmt.Errorf("%w: %s", ErrCorruptDay, date)
	}
	if day.Date != record.Date || day.Tasks == nil {
		return nil, 0, fmt.Errorf("%w: %s", ErrCorruptDay, date)
	}

	return &day, record.Version, nil
}

// Create stores a brand new day at version 1.
func (r *GormDayRepository) Create(day *models.Day) error {
	payload, err := json.Marshal(day)
	if err != nil {
		return fmt.Errorf("failed to encode day %s: %w", day.Date, err)
	}

	record := models.DayRecord{
		Date:    day.Date,
		Version: 1,
		Payload: datatypes.JSON(payload),
	}
	if err := r.db.Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return ErrDayExists
		}
		return fmt.Errorf("failed to create day %s: %w", day.Date, err)
	}

	return nil
}

// Update replaces the stored day if the version still matches.
func (r *GormDayRepository) Update(day *models.Day, expectedVersion uint64) error {
	payload, err := json.Marshal(day)
	if err != nil {
		return fmt.Errorf("failed to encode day %s: %w", day.Date, err)
	}

	result := r.db.Model(&models.DayRecord{}).
		Where("date = ? AND version = ?", day.Date, expectedVersion).
		Updates(map[string]interface{}{
			"payload": datatypes.JSON(payload),
			"version": expectedVersion + 1,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update day %s: %w", day.Date, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrStaleWrite
	}

	return nil
}

// Overwrite replaces the stored day unconditionally. Used to recover a
// corrupt payload with a freshly synthesized day.
func (r *GormDayRepository) Overwrite(day *models.Day) error {
	payload, err := json.Marshal(day)
	if err != nil {
		return fmt.Errorf("failed to encode day %s: %w", day.Date, err)
	}

	result := r.db.Model(&models.DayRecord{}).
		Where("date = ?", day.Date).
		Updates(map[string]interface{}{
			"payload": datatypes.JSON(payload),
			"version": gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to overwrite day %s: %w", day.Date, result.Error)
	}
	if result.RowsAffected == 0 {
		return r.Create(day)
	}

	return nil
}

// isUniqueViolation catches duplicate-key errors from drivers that do
// not translate them to gorm.ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
