package models

import "github.com/google/uuid"

// NewID returns a fresh identifier for images, folders, and OCR text
// regions. IDs must stay unique across sessions, so they come from a UUID
// source rather than a counter.
func NewID() string {
	return uuid.NewString()
}
