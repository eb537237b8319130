package dto

import (
	"time"

	"github.com/google/uuid"
)

// Timestamps cross the wire as ISO-8601 strings so callers keep control of
// zone handling; services parse and reject malformed values.

type CreateFeedingRequest struct {
	Type      string   `json:"type" validate:"required,max=50"`
	Amount    *float64 `json:"amount" validate:"omitempty,gte=0"`
	Duration  *int     `json:"duration" validate:"omitempty,gte=0"`
	Notes     string   `json:"notes"`
	Timestamp string   `json:"timestamp"`
}

type FeedingResponse struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Amount    *float64  `json:"amount"`
	Duration  *int      `json:"duration"`
	Notes     string    `json:"notes"`
	Timestamp string    `json:"timestamp"`
}

type CreateSleepRequest struct {
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time"`
	Notes     string `json:"notes"`
}

type CloseSleepRequest struct {
	EndTime string `json:"end_time" validate:"required"`
}

type SleepResponse struct {
	ID        uuid.UUID `json:"id"`
	StartTime string    `json:"start_time"`
	EndTime   *string   `json:"end_time"`
	Duration  *string   `json:"duration"`
	Notes     string    `json:"notes"`
}

type CreateVaccineRequest struct {
	VaccineName string `json:"vaccine_name" validate:"required,max=100"`
	DateGiven   string `json:"date_given" validate:"required"`
	Notes       string `json:"notes"`
}

type VaccineResponse struct {
	ID          uuid.UUID `json:"id"`
	VaccineName string    `json:"vaccine_name"`
	DateGiven   string    `json:"date_given"`
	Notes       string    `json:"notes"`
}

type CreateBabyRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	BirthDate string `json:"birth_date"`
	DueDate   string `json:"due_date"`
}

type CreatedResponse struct {
	Success bool      `json:"success"`
	ID      uuid.UUID `json:"id"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

// FormatTime renders a timestamp the way record payloads expect it.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
