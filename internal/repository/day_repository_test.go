package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sitehub-ops/checklist-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRepo(t *testing.T) (DayRepository, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.DayRecord{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return NewDayRepository(db), db
}

func sampleDay(date string) *models.Day {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	return &models.Day{
		Date: date,
		Site: "AG WS",
		Tasks: []models.Task{
			{
				ID:       "tsk-1",
				Text:     "Check all site fences for damage",
				Category: models.CategoryOpening,
				Completions: []models.Completion{
					{IdentityName: "Oliver", Timestamp: now},
				},
			},
		},
		Log: []models.LogEntry{
			{Timestamp: now, Text: "Oliver completed: Check all site fences for damage"},
		},
	}
}

func TestDayRepository_RoundTrip(t *testing.T) {
	repo, _ := setupRepo(t)

	day := sampleDay("2026-09-01")
	require.NoError(t, repo.Create(day))

	loaded, version, err := repo.Get("2026-09-01")
	require.NoError(t, err)
	require.Equal(t, uint64(1), version)
	require.Equal(t, day, loaded)

	loaded.Approved = true
	require.NoError(t, repo.Update(loaded, version))

	reloaded, version, err := repo.Get("2026-09-01")
	require.NoError(t, err)
	require.Equal(t, uint64(2), version)
	require.True(t, reloaded.Approved)
}

func TestDayRepository_GetMissing(t *testing.T) {
	repo, _ := setupRepo(t)

	_, _, err := repo.Get("2026-09-02")
	require.ErrorIs(t, err, ErrDayNotFound)
}

func TestDayRepository_CreateDuplicate(t *testing.T) {
	repo, _ := setupRepo(t)

	require.NoError(t, repo.Create(sampleDay("2026-09-01")))
	require.ErrorIs(t, repo.Create(sampleDay("2026-09-01")), ErrDayExists)
}

func TestDayRepository_UpdateStaleVersion(t *testing.T) {
	repo, _ := setupRepo(t)

	day := sampleDay("2026-09-01")
	require.NoError(t, repo.Create(day))
	require.NoError(t, repo.Update(day, 1))

	// A writer still holding version 1 must not clobber version 2
	require.ErrorIs(t, repo.Update(day, 1), ErrStaleWrite)
}

func TestDayRepository_CorruptPayload(t *testing.T) {
	repo, db := setupRepo(t)

	record := models.DayRecord{
		Date:    "2026-09-01",
		Version: 1,
		Payload: datatypes.JSON([]byte(`{"not": "a day"`)),
	}
	require.NoError(t, db.Create(&record).Error)

	_, _, err := repo.Get("2026-09-01")
	require.ErrorIs(t, err, ErrCorruptDay)

	// Overwrite recovers the row in place
	require.NoError(t, repo.Overwrite(sampleDay("2026-09-01")))
	day, version, err := repo.Get("2026-09-01")
	require.NoError(t, err)
	require.Equal(t, uint64(2), version)
	require.Len(t, day.Tasks, 1)
}

func TestDayRepository_UpdateStaleWriteSQL(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	repo := NewDayRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `day_records` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.ErrorIs(t, repo.Update(sampleDay("2026-09-01"), 3), ErrStaleWrite)
	require.NoError(t, mock.ExpectationsWereMet())
}
