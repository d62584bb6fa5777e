package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewID returns a fresh random 128-bit identifier in canonical UUID form.
// Used for model and tiering record identifiers.
func NewID() string {
	return uuid.NewString()
}

// NewRunID returns a human-sortable export run identifier: a UTC timestamp
// followed by a short random suffix, e.g. "20260828-143205-1a2b3c4d".
func NewRunID(now time.Time) string {
	return fmt.Sprintf("%s-%s", now.UTC().Format("20060102-150405"), uuid.NewString()[:8])
}
