package services

import (
	"fmt"

	"github.com/cradlelog/cradle-backend/internal/dto"
	"github.com/cradlelog/cradle-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BabyService struct {
	db *gorm.DB
}

func NewBabyService(db *gorm.DB) *BabyService {
	return &BabyService{db: db}
}

func (s *BabyService) Create(userID uuid.UUID, req *dto.CreateBabyRequest) (*models.Baby, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidRecord)
	}

	baby := models.Baby{
		ID:     uuid.New(),
		UserID: userID,
		Name:   req.Name,
	}

	if req.BirthDate != "" {
		d, err := parseTimestamp(req.BirthDate)
		if err != nil {
			return nil, err
		}
		baby.BirthDate = &d
	}
	if req.DueDate != "" {
		d, err := parseTimestamp(req.DueDate)
		if err != nil {
			return nil, err
		}
		baby.DueDate = &d
	}

	if err := s.db.Create(&baby).Error; err != nil {
		return nil, fmt.Errorf("failed to create baby profile: %w", err)
	}
	return &baby, nil
}

func (s *BabyService) ListByUser(userID uuid.UUID) ([]models.Baby, error) {
	var babies []models.Baby
	err := s.db.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&babies).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list baby profiles: %w", err)
	}
	return babies, nil
}
