package services

import (
	"fmt"

	"github.com/cradlelog/cradle-backend/internal/dto"
	"github.com/cradlelog/cradle-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SleepService struct {
	db *gorm.DB
}

func NewSleepService(db *gorm.DB) *SleepService {
	return &SleepService{db: db}
}

// Create stores a sleep session. End time is optional (open session) but must
// not precede the start when present.
func (s *SleepService) Create(userID uuid.UUID, req *dto.CreateSleepRequest) (*models.SleepRecord, error) {
	start, err := parseTimestamp(req.StartTime)
	if err != nil {
		return nil, err
	}

	record := models.SleepRecord{
		ID:        uuid.New(),
		UserID:    userID,
		StartTime: start,
		Notes:     req.Notes,
	}

	if req.EndTime != "" {
		end, err := parseTimestamp(req.EndTime)
		if err != nil {
			return nil, err
		}
		if end.Before(start) {
			return nil, fmt.Errorf("%w: end time precedes start time", ErrInvalidRecord)
		}
		record.EndTime = &end
	}

	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to create sleep record: %w", err)
	}
	return &record, nil
}

// ListByUser returns the user's sleep sessions newest-first by start time.
func (s *SleepService) ListByUser(userID uuid.UUID, limit int) ([]models.SleepRecord, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	var records []models.SleepRecord
	err := s.db.Where("user_id = ?", userID).
		Order("start_time DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sleep records: %w", err)
	}
	return records, nil
}

// Close sets the end time of an open session. This is the only mutation a
// record supports after creation; ownership is checked in the same statement
// as the update.
func (s *SleepService) Close(userID, recordID uuid.UUID, req *dto.CloseSleepRequest) error {
	end, err := parseTimestamp(req.EndTime)
	if err != nil {
		return err
	}

	var record models.SleepRecord
	if err := s.db.Where("id = ? AND user_id = ?", recordID, userID).First(&record).Error; err != nil {
		return ErrRecordNotFound
	}
	if end.Before(record.StartTime) {
		return fmt.Errorf("%w: end time precedes start time", ErrInvalidRecord)
	}

	result := s.db.Model(&models.SleepRecord{}).
		Where("id = ? AND user_id = ?", recordID, userID).
		Update("end_time", end)
	if result.Error != nil {
		return fmt.Errorf("failed to close sleep record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Delete removes the record only when owned by the user.
func (s *SleepService) Delete(userID, recordID uuid.UUID) error {
	result := s.db.Where("id = ? AND user_id = ?", recordID, userID).Delete(&models.SleepRecord{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete sleep record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
