// Package character owns character records: combat arithmetic, the loot
// slot, inventory and weapon sharing.
package character

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/osse101/armory/internal/concurrency"
	"github.com/osse101/armory/internal/domain"
	"github.com/osse101/armory/internal/logger"
	"github.com/osse101/armory/internal/repository"
)

// Service defines the interface for character operations. Every operation
// addresses a character by name and mutations to one character are serialized.
type Service interface {
	Create(ctx context.Context, name string) (*domain.Character, error)
	Get(ctx context.Context, name string) (*domain.Character, error)
	List(ctx context.Context) ([]string, error)
	Patch(ctx context.Context, name string, mergePatch []byte) (*domain.Character, error)
	Delete(ctx context.Context, name string) error

	TakeDamage(ctx context.Context, name string, amount int) (*domain.Character, error)
	Heal(ctx context.Context, name string, amount int) (*domain.Character, error)
	RecordKill(ctx context.Context, name string) (*KillResult, error)

	GenerateLoot(ctx context.Context, name string) (*domain.Weapon, error)
	PeekLoot(ctx context.Context, name string) (*domain.Weapon, error)
	AcceptLoot(ctx context.Context, name string) (*domain.Character, error)
	DiscardLoot(ctx context.Context, name string) error

	Equip(ctx context.Context, name, weaponID string) (*domain.Character, error)
	Unequip(ctx context.Context, name, weaponID string) (*domain.Character, error)
	RemoveWeapon(ctx context.Context, name, weaponID string) (*domain.Character, error)

	ShareLoot(ctx context.Context, name string) (*ShareResult, error)
	ShareWeapon(ctx context.Context, name, weaponID string) (*ShareResult, error)
	ReceiveShared(ctx context.Context, name, payload string) (*domain.Weapon, error)
	ReceiveImage(ctx context.Context, name string, image []byte) (*domain.Weapon, error)
	AcceptScanned(ctx context.Context, name string, w *domain.Weapon) error
}

// LootGenerator rolls a new weapon for a character level
type LootGenerator interface {
	Generate(ctx context.Context, characterLevel int) (*domain.Weapon, error)
}

// ShareCodec converts weapons to and from compact share payloads
type ShareCodec interface {
	Marshal(w *domain.Weapon) (string, error)
	Decode(payload string) (*domain.Weapon, error)
}

// ClassCatalog answers class questions needed for equipment rules
type ClassCatalog interface {
	IsShieldClass(name string) bool
}

// SaveScheduler persists records in the background
type SaveScheduler interface {
	Schedule(c *domain.Character)
	Cancel(name string)
	Peek(name string) (*domain.Character, bool)
}

// Config holds service tunables
type Config struct {
	Cache  CacheConfig
	QRSize int
}

// KillResult reports the outcome of RecordKill
type KillResult struct {
	Character *domain.Character `json:"character"`
	LeveledUp bool              `json:"leveled_up"`
}

// ShareResult is a weapon converted to a payload and its QR code
type ShareResult struct {
	Payload string         `json:"payload"`
	QRCode  []byte         `json:"qr_code"`
	Weapon  *domain.Weapon `json:"weapon"`
}

type service struct {
	repo    repository.Character
	saver   SaveScheduler
	gen     LootGenerator
	codec   ShareCodec
	catalog ClassCatalog
	qrSize  int

	locks *concurrency.LockManager
	cache *characterCache

	slotMu sync.Mutex
	slots  map[string]*domain.Weapon // transient, never persisted

	now func() time.Time
}

// NewService creates a new character service
func NewService(repo repository.Character, saver SaveScheduler, gen LootGenerator, codec ShareCodec, cat ClassCatalog, cfg Config) Service {
	return &service{
		repo:    repo,
		saver:   saver,
		gen:     gen,
		codec:   codec,
		catalog: cat,
		qrSize:  cfg.QRSize,
		locks:   concurrency.NewLockManager(),
		cache:   newCharacterCache(cfg.Cache),
		slots:   make(map[string]*domain.Weapon),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// NormalizeName trims a character name and checks it is usable as a key
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", domain.ErrInvalidName)
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", fmt.Errorf("%w: name longer than %d characters", domain.ErrInvalidName, MaxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) || r == '/' {
			return "", fmt.Errorf("%w: name contains invalid characters", domain.ErrInvalidName)
		}
	}
	return name, nil
}

// load returns a private copy of the current record. Caller holds the name lock.
func (s *service) load(ctx context.Context, name string) (*domain.Character, error) {
	if c, ok := s.cache.Get(name); ok {
		return c, nil
	}
	// a write may still be waiting in the debouncer
	if c, ok := s.saver.Peek(name); ok {
		s.cache.Set(c)
		return c, nil
	}

	c, err := s.repo.Load(ctx, name)
	if err != nil {
		if !errors.Is(err, domain.ErrCharacterNotFound) {
			logger.FromContext(ctx).Error(LogMsgFailedToLoad, "character", name, "error", err)
		}
		return nil, err
	}
	normalizeRecord(c)
	s.cache.Set(c)
	return c, nil
}

// normalizeRecord fills empty collections in records written by older versions
func normalizeRecord(c *domain.Character) {
	if c.Skills == nil {
		c.Skills = []string{}
	}
	if c.Weapons == nil {
		c.Weapons = []domain.Weapon{}
	}
	if c.Level < 1 {
		c.Level = 1
	}
	if c.MaxHP <= 0 {
		c.MaxHP = domain.MaxHPForLevel(c.Level)
	}
}

// commit stores c as the current record and schedules a background save
func (s *service) commit(c *domain.Character) {
	c.UpdatedAt = s.now()
	s.cache.Set(c)
	s.saver.Schedule(c)
}

// mutate loads the record under its lock, applies fn and commits the result.
// A failing fn leaves the record untouched.
func (s *service) mutate(ctx context.Context, name string, fn func(c *domain.Character) error) (*domain.Character, error) {
	var out *domain.Character
	err := s.locks.Do(name, func() error {
		c, err := s.load(ctx, name)
		if err != nil {
			return err
		}
		if err := fn(c); err != nil {
			return err
		}
		s.commit(c)
		out = c.Clone()
		return nil
	})
	return out, err
}

func (s *service) Create(ctx context.Context, name string) (*domain.Character, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return nil, err
	}

	var out *domain.Character
	err = s.locks.Do(name, func() error {
		_, err := s.load(ctx, name)
		if err == nil {
			return fmt.Errorf("%w: %s", domain.ErrCharacterExists, name)
		}
		if !errors.Is(err, domain.ErrCharacterNotFound) {
			return err
		}

		c := domain.NewCharacter(name)
		c.UpdatedAt = s.now()
		// written through so List sees it immediately
		if err := s.repo.Save(ctx, c); err != nil {
			logger.FromContext(ctx).Error(LogMsgFailedToSave, "character", name, "error", err)
			return fmt.Errorf("failed to create character: %w", err)
		}
		s.cache.Set(c)
		out = c.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgCharacterCreated, "character", name)
	return out, nil
}

func (s *service) Get(ctx context.Context, name string) (*domain.Character, error) {
	var out *domain.Character
	err := s.locks.Do(name, func() error {
		c, err := s.load(ctx, name)
		out = c
		return err
	})
	return out, err
}

func (s *service) List(ctx context.Context) ([]string, error) {
	return s.repo.List(ctx)
}

func (s *service) Delete(ctx context.Context, name string) error {
	err := s.locks.Do(name, func() error {
		if _, err := s.load(ctx, name); err != nil {
			return err
		}
		s.saver.Cancel(name)
		if err := s.repo.Delete(ctx, name); err != nil {
			return fmt.Errorf("failed to delete character: %w", err)
		}
		s.cache.Invalidate(name)
		s.clearSlot(name)
		return nil
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info(LogMsgCharacterDeleted, "character", name)
	return nil
}
