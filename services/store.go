package services

import (
	"context"
	"errors"

	"calendar-admin-server/models"
	"calendar-admin-server/storage"

	"gorm.io/gorm"
)

// DayStore is the persistence seam shared by both backends. Writes are
// overwrite-by-key: no field merging, no version check, concurrent writers to
// the same date race and the last write wins.
//
// LoadAll never returns a nil map. On transport failure it returns an empty
// mapping together with the error so the rendering path can degrade to an
// all-unknown calendar instead of crashing.
type DayStore interface {
	LoadAll(ctx context.Context) (map[string]DayRecord, error)
	Upsert(ctx context.Context, date, status, message string, updatedBy uint) (DayRecord, error)
}

// DatabaseStore persists day records in the calendar_days table.
type DatabaseStore struct {
	DB *gorm.DB
}

func (s *DatabaseStore) LoadAll(ctx context.Context) (map[string]DayRecord, error) {
	records := map[string]DayRecord{}

	var days []models.CalendarDay
	result := s.DB.WithContext(ctx).Find(&days)
	if result.Error != nil {
		return records, result.Error
	}

	for _, day := range days {
		records[day.Date] = DayRecord{Status: day.Status, Message: day.Message}
	}
	return records, nil
}

func (s *DatabaseStore) Upsert(ctx context.Context, date, status, message string, updatedBy uint) (DayRecord, error) {
	db := s.DB.WithContext(ctx)

	// Check if a record already exists for this date
	var existing models.CalendarDay
	result := db.Where("date = ?", date).First(&existing)

	if result.Error == nil {
		existing.Status = status
		existing.Message = message
		existing.UpdatedBy = updatedBy
		if err := db.Save(&existing).Error; err != nil {
			return DayRecord{}, err
		}
		return DayRecord{Status: existing.Status, Message: existing.Message}, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return DayRecord{}, result.Error
	}

	day := models.CalendarDay{
		Date:      date,
		Status:    status,
		Message:   message,
		UpdatedBy: updatedBy,
	}
	if err := db.Create(&day).Error; err != nil {
		return DayRecord{}, err
	}
	return DayRecord{Status: day.Status, Message: day.Message}, nil
}

// FileStore persists day records in the single local JSON file.
type FileStore struct {
	File *storage.LocalFile
}

func (s *FileStore) LoadAll(ctx context.Context) (map[string]DayRecord, error) {
	records := map[string]DayRecord{}

	days, err := s.File.Days()
	if err != nil {
		return records, err
	}

	for date, day := range days {
		records[date] = DayRecord{Status: day.Status, Message: day.Message}
	}
	return records, nil
}

func (s *FileStore) Upsert(ctx context.Context, date, status, message string, updatedBy uint) (DayRecord, error) {
	if err := s.File.PutDay(date, storage.LocalDay{Status: status, Message: message}); err != nil {
		return DayRecord{}, err
	}
	return DayRecord{Status: status, Message: message}, nil
}
