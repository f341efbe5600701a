// Package memory keeps character records in process memory.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/osse101/armory/internal/domain"
)

// CharacterRepository stores serialized character records in a map
type CharacterRepository struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewCharacterRepository creates an empty in-memory repository
func NewCharacterRepository() *CharacterRepository {
	return &CharacterRepository{records: make(map[string][]byte)}
}

// Load returns a fresh copy of the stored record
func (r *CharacterRepository) Load(ctx context.Context, name string) (*domain.Character, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	data, ok := r.records[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCharacterNotFound, name)
	}

	var c domain.Character
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode character %s: %w", name, err)
	}
	return &c, nil
}

// Save stores the record, replacing any previous value
func (r *CharacterRepository) Save(ctx context.Context, character *domain.Character) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(character)
	if err != nil {
		return fmt.Errorf("failed to encode character %s: %w", character.Name, err)
	}

	r.mu.Lock()
	r.records[character.Name] = data
	r.mu.Unlock()
	return nil
}

// Delete removes the record if present
func (r *CharacterRepository) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	delete(r.records, name)
	r.mu.Unlock()
	return nil
}

// List returns the stored names in sorted order
func (r *CharacterRepository) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	names := make([]string, 0, len(r.records))
	for name := range r.records {
		names = append(names, name)
	}
	r.mu.RUnlock()

	slices.Sort(names)
	return names, nil
}

// Ping always succeeds
func (r *CharacterRepository) Ping(context.Context) error {
	return nil
}
