package repository

import (
	"context"

	"github.com/osse101/armory/internal/domain"
)

// Character defines the interface for character record persistence.
// Writes are last-write-wins; the record is stored as a single document.
type Character interface {
	// Load returns domain.ErrCharacterNotFound when no record exists
	Load(ctx context.Context, name string) (*domain.Character, error)
	Save(ctx context.Context, character *domain.Character) error
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]string, error)
}

// Pinger is implemented by backends that can report their availability
type Pinger interface {
	Ping(ctx context.Context) error
}
