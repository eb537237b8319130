package models

import (
	"time"

	"github.com/google/uuid"
)

// Baby is an optional secondary profile. A user can have zero or more.
type Baby struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string     `gorm:"size:100;not null" json:"name"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
