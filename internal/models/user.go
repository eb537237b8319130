package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a caregiver account. Emails are stored lowercase and are unique
// at the storage layer. Password holds a bcrypt hash, never plaintext.
type User struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string         `gorm:"size:100;not null" json:"name"`
	Email         string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password      string         `gorm:"not null" json:"-"`
	EmailVerified bool           `gorm:"default:false" json:"email_verified"`
	BabyName      string         `gorm:"size:100" json:"baby_name,omitempty"`
	DueDate       *time.Time     `json:"due_date,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
