package models

import (
	"time"

	"github.com/google/uuid"
)

// FeedingRecord is one feeding event ('bottle', 'breast', 'solid').
// Amount is unit-agnostic (ml or oz), duration is in minutes.
type FeedingRecord struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	FeedingType string    `gorm:"size:50;not null" json:"type"`
	Amount      *float64  `json:"amount,omitempty"`
	Duration    *int      `json:"duration,omitempty"`
	Notes       string    `gorm:"type:text" json:"notes"`
	Timestamp   time.Time `gorm:"not null;index" json:"timestamp"`
	CreatedAt   time.Time `json:"created_at"`
}
