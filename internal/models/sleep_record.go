package models

import (
	"time"

	"github.com/google/uuid"
)

// SleepRecord is one sleep session. EndTime stays nil while the session is
// open and is the only field that may change after creation.
type SleepRecord struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	StartTime time.Time  `gorm:"not null;index" json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Notes     string     `gorm:"type:text" json:"notes"`
	CreatedAt time.Time  `json:"created_at"`
}

// Duration returns end − start, or nil while the session is open.
func (s *SleepRecord) Duration() *time.Duration {
	if s.EndTime == nil {
		return nil
	}
	d := s.EndTime.Sub(s.StartTime)
	return &d
}
