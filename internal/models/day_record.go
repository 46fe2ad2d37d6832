package models

import (
	"time"

	"gorm.io/datatypes"
)

// DayRecord is the persisted form of a Day: one row per calendar date
// holding the full serialized day. Writes replace the whole payload;
// Version is an optimistic lock so a stale writer fails instead of
// silently clobbering a newer day.
type DayRecord struct {
	Date      string         `gorm:"primaryKey;size:10" json:"date"`
	Version   uint64         `gorm:"not null;default:1" json:"version"`
	Payload   datatypes.JSON `gorm:"not null" json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
