package util

import "github.com/google/uuid"

// NewID returns a random (v4) UUID string.
func NewID() string {
	return uuid.NewString()
}
