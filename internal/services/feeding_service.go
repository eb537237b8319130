package services

import (
	"fmt"
	"time"

	"github.com/cradlelog/cradle-backend/internal/dto"
	"github.com/cradlelog/cradle-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeedingService struct {
	db *gorm.DB
}

func NewFeedingService(db *gorm.DB) *FeedingService {
	return &FeedingService{db: db}
}

// Create validates and stores a feeding event for the given user. A missing
// timestamp defaults to now; a malformed one is rejected.
func (s *FeedingService) Create(userID uuid.UUID, req *dto.CreateFeedingRequest) (*models.FeedingRecord, error) {
	if req.Type == "" {
		return nil, fmt.Errorf("%w: feeding type is required", ErrInvalidRecord)
	}
	if req.Amount != nil && *req.Amount < 0 {
		return nil, fmt.Errorf("%w: amount must be non-negative", ErrInvalidRecord)
	}
	if req.Duration != nil && *req.Duration < 0 {
		return nil, fmt.Errorf("%w: duration must be non-negative", ErrInvalidRecord)
	}

	timestamp := time.Now()
	if req.Timestamp != "" {
		t, err := parseTimestamp(req.Timestamp)
		if err != nil {
			return nil, err
		}
		timestamp = t
	}

	record := models.FeedingRecord{
		ID:          uuid.New(),
		UserID:      userID,
		FeedingType: req.Type,
		Amount:      req.Amount,
		Duration:    req.Duration,
		Notes:       req.Notes,
		Timestamp:   timestamp,
	}

	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to create feeding record: %w", err)
	}
	return &record, nil
}

// ListByUser returns the user's feedings newest-first by event timestamp.
func (s *FeedingService) ListByUser(userID uuid.UUID, limit int) ([]models.FeedingRecord, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	var records []models.FeedingRecord
	err := s.db.Where("user_id = ?", userID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list feeding records: %w", err)
	}
	return records, nil
}

// Delete removes the record only when owned by the user. The ownership check
// is part of the delete statement itself, so a concurrent delete cannot race
// past it.
func (s *FeedingService) Delete(userID, recordID uuid.UUID) error {
	result := s.db.Where("id = ? AND user_id = ?", recordID, userID).Delete(&models.FeedingRecord{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete feeding record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
