// Package sqlite stores character records in a local sqlite file.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/armory/internal/domain"
)

const (
	queryLoadCharacter = `SELECT record FROM characters WHERE name = ?`

	querySaveCharacter = `
		INSERT INTO characters (name, record, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE
		SET record = excluded.record, updated_at = excluded.updated_at
	`

	queryDeleteCharacter = `DELETE FROM characters WHERE name = ?`

	queryListCharacters = `SELECT name FROM characters ORDER BY name`
)

// CharacterRepository implements the character repository on a sqlite database
type CharacterRepository struct {
	db *sql.DB
}

// NewCharacterRepository wraps an open, migrated sqlite handle
func NewCharacterRepository(db *sql.DB) *CharacterRepository {
	return &CharacterRepository{db: db}
}

// Load fetches and decodes the stored record
func (r *CharacterRepository) Load(ctx context.Context, name string) (*domain.Character, error) {
	var record string
	err := r.db.QueryRowContext(ctx, queryLoadCharacter, name).Scan(&record)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrCharacterNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load character %s: %w", name, err)
	}

	var c domain.Character
	if err := json.Unmarshal([]byte(record), &c); err != nil {
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

	if _, err := r.db.ExecContext(ctx, querySaveCharacter, character.Name, string(record), updatedAt.UnixMilli()); err != nil {
		return fmt.Errorf("failed to save character %s: %w", character.Name, err)
	}
	return nil
}

// Delete removes the record if present
func (r *CharacterRepository) Delete(ctx context.Context, name string) error {
	if _, err := r.db.ExecContext(ctx, queryDeleteCharacter, name); err != nil {
		return fmt.Errorf("failed to delete character %s: %w", name, err)
	}
	return nil
}

// List returns all stored names in sorted order
func (r *CharacterRepository) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, queryListCharacters)
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan character name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	return names, nil
}

// Ping checks the database handle
func (r *CharacterRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
