// Package redis stores character records as JSON strings in redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/redis/go-redis/v9"

	"github.com/osse101/armory/internal/domain"
)

const (
	// KeyPrefix namespaces record keys, e.g. character:Vex
	KeyPrefix = "character:"
	// NamesKey is the set of stored character names
	NamesKey = "characters"
)

// CharacterRepository implements the character repository on redis
type CharacterRepository struct {
	client    redis.UniversalClient
	keyPrefix string
	namesKey  string
}

// NewCharacterRepository creates a repository using the default key layout
func NewCharacterRepository(client redis.UniversalClient) *CharacterRepository {
	return NewCharacterRepositoryWithPrefix(client, "")
}

// NewCharacterRepositoryWithPrefix isolates all keys under namespace, used by tests sharing a server
func NewCharacterRepositoryWithPrefix(client redis.UniversalClient, namespace string) *CharacterRepository {
	return &CharacterRepository{
		client:    client,
		keyPrefix: namespace + KeyPrefix,
		namesKey:  namespace + NamesKey,
	}
}

func (r *CharacterRepository) key(name string) string {
	return r.keyPrefix + name
}

// Load fetches and decodes the stored record
func (r *CharacterRepository) Load(ctx context.Context, name string) (*domain.Character, error) {
	data, err := r.client.Get(ctx, r.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", domain.ErrCharacterNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load character %s: %w", name, err)
	}

	var c domain.Character
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode character %s: %w", name, err)
	}
	return &c, nil
}

// Save writes the record and indexes its name in one transaction
func (r *CharacterRepository) Save(ctx context.Context, character *domain.Character) error {
	data, err := json.Marshal(character)
	if err != nil {
		return fmt.Errorf("failed to encode character %s: %w", character.Name, err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.key(character.Name), data, 0)
		pipe.SAdd(ctx, r.namesKey, character.Name)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save character %s: %w", character.Name, err)
	}
	return nil
}

// Delete removes the record and its index entry
func (r *CharacterRepository) Delete(ctx context.Context, name string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.key(name))
		pipe.SRem(ctx, r.namesKey, name)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete character %s: %w", name, err)
	}
	return nil
}

// List returns all stored names in sorted order
func (r *CharacterRepository) List(ctx context.Context) ([]string, error) {
	names, err := r.client.SMembers(ctx, r.namesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	slices.Sort(names)
	return names, nil
}

// Ping checks the redis connection
func (r *CharacterRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
