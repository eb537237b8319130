package models

import (
	"time"

	"github.com/google/uuid"
)

// VaccineRecord is one administered vaccination.
type VaccineRecord struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	VaccineName string    `gorm:"size:100;not null" json:"vaccine_name"`
	DateGiven   time.Time `gorm:"not null;index" json:"date_given"`
	Notes       string    `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}
