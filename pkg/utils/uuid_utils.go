package utils

import (
	"github.com/google/uuid"
)

// GenerateUUIDv7 generates a time-ordered UUID v7. Primary keys use v7 so
// index pages fill sequentially.
func GenerateUUIDv7() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		// v4 fallback, only reachable if the entropy source fails
		return uuid.New()
	}
	return id
}
