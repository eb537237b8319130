package services

import (
	"errors"
	"time"
)

// Errors shared by the record services. A record that exists but belongs to
// another user reports ErrRecordNotFound, never a forbidden error, so record
// ids cannot be probed.
var (
	ErrRecordNotFound   = errors.New("record not found")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrInvalidRecord    = errors.New("invalid record")
)

// DefaultListLimit caps feeding and sleep listings; vaccine listings are
// unbounded.
const DefaultListLimit = 50

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseTimestamp accepts ISO-8601 with or without zone offset, or a bare date.
func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidTimestamp
}
