package services

import (
	"fmt"

	"github.com/cradlelog/cradle-backend/internal/dto"
	"github.com/cradlelog/cradle-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VaccineService struct {
	db *gorm.DB
}

func NewVaccineService(db *gorm.DB) *VaccineService {
	return &VaccineService{db: db}
}

func (s *VaccineService) Create(userID uuid.UUID, req *dto.CreateVaccineRequest) (*models.VaccineRecord, error) {
	if req.VaccineName == "" {
		return nil, fmt.Errorf("%w: vaccine name is required", ErrInvalidRecord)
	}
	dateGiven, err := parseTimestamp(req.DateGiven)
	if err != nil {
		return nil, err
	}

	record := models.VaccineRecord{
		ID:          uuid.New(),
		UserID:      userID,
		VaccineName: req.VaccineName,
		DateGiven:   dateGiven,
		Notes:       req.Notes,
	}

	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to create vaccine record: %w", err)
	}
	return &record, nil
}

// ListByUser returns every vaccination newest-first by administration date.
// Vaccine history is short, so the listing is unbounded.
func (s *VaccineService) ListByUser(userID uuid.UUID) ([]models.VaccineRecord, error) {
	var records []models.VaccineRecord
	err := s.db.Where("user_id = ?", userID).
		Order("date_given DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list vaccine records: %w", err)
	}
	return records, nil
}

func (s *VaccineService) Delete(userID, recordID uuid.UUID) error {
	result := s.db.Where("id = ? AND user_id = ?", recordID, userID).Delete(&models.VaccineRecord{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete vaccine record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
