package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/armory/internal/domain"
)

// CharacterRepository implements the character repository for PostgreSQL.
// Each record is one JSONB document keyed by character name.
type CharacterRepository struct {
	db *pgxpool.Pool
}

// NewCharacterRepository creates a new CharacterRepository
func NewCharacterRepository(db *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{db: db}
}

// Load fetches and decodes the stored record
func (r *CharacterRepository) Load(ctx context.Context, name string) (*domain.Character, error) {
	var record []byte
	err := r.db.QueryRow(ctx, queryLoadCharacter, name).Scan(&record)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrCharacterNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load character %s: %w", name, err)
	}

	var c domain.Character
	if err := json.Unmarshal(record, &c); err != nil {
		return nil, fmt.Errorf("failed to decode character %s: %w", name, err)
	}
	return &c, nil
}

// Save upserts the record
func (r *CharacterRepository) Save(ctx context.Context, character *domain.Character) error {
	record, err := json.Marshal(character)
	if err != nil {
		return fmt.Errorf("failed to encode character %s: %w", character.Name, err)
	}

	updatedAt := character.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	if _, err := r.db.Exec(ctx, querySaveCharacter, character.Name, record, updatedAt); err != nil {
		return fmt.Errorf("failed to save character %s: %w", character.Name, err)
	}
	return nil
}

// Delete removes the record if present
func (r *CharacterRepository) Delete(ctx context.Context, name string) error {
	if _, err := r.db.Exec(ctx, queryDeleteCharacter, name); err != nil {
		return fmt.Errorf("failed to delete character %s: %w", name, err)
	}
	return nil
}

// List returns all stored names in sorted order
func (r *CharacterRepository) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, queryListCharacters)
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}

	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan character names: %w", err)
	}
	return names, nil
}

// Ping checks the connection pool
func (r *CharacterRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
