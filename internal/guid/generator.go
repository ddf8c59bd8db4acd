// Package guid supplies GUIDs for directory entries that carry none.
package guid

import (
	"context"

	"github.com/google/uuid"

	"credstate/internal/domain"
)

// Generator implements ports.GUIDGenerator with random UUIDs.
type Generator struct{}

// NewGenerator returns a UUID-backed GUID generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate returns a new GUID for the identity. The identity does not
// influence the value; GUIDs must be globally unique, not derivable.
func (g *Generator) Generate(_ context.Context, _ domain.Identity) (string, error) {
	return uuid.NewString(), nil
}
