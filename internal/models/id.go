package models

import "github.com/google/uuid"

// NewID returns a time-ordered unique identifier (UUIDv7). It panics if the
// system random source fails.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}
