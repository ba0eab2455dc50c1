package uuidutil

import (
	"github.com/google/uuid"
)

// New generates a new random UUID v4, used as the run identifier.
func New() uuid.UUID {
	return uuid.New()
}
