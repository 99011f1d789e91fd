// Package util holds id and date helpers shared across Larder.
package util

import (
	"fmt"

	"github.com/google/uuid"
)

// IDGenerator hands out entry ids. Ids are UUIDv7, so they sort by creation
// time and list queries can use them to break ties between entries created
// in the same instant.
type IDGenerator struct{}

// NewIDGenerator creates a new ID generator.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// NewID returns a new UUIDv7 string.
func (g *IDGenerator) NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Only fails when the random source does.
		return uuid.NewString()
	}
	return id.String()
}

// NewID returns a new id without a generator.
func NewID() string {
	return (*IDGenerator)(nil).NewID()
}

// ParseID validates an id and returns it in canonical form.
func ParseID(s string) (string, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid ID format: %w", err)
	}
	return id.String(), nil
}

// IsValidID checks if a string is a valid UUID.
func IsValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
