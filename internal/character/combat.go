package character

import (
	"context"
	"fmt"

	"github.com/osse101/armory/internal/domain"
	"github.com/osse101/armory/internal/logger"
)

// TakeDamage applies amount to the shield first and the remainder to hp, which floors at 0
func (s *service) TakeDamage(ctx context.Context, name string, amount int) (*domain.Character, error) {
	if amount < 1 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidAmount, amount)
	}
	return s.mutate(ctx, name, func(c *domain.Character) error {
		applyDamage(c, amount)
		return nil
	})
}

func applyDamage(c *domain.Character, amount int) {
	absorbed := min(c.Shield, amount)
	c.Shield -= absorbed
	c.HP = max(0, c.HP-(amount-absorbed))
}

// Heal restores hp up to maxHp
func (s *service) Heal(ctx context.Context, name string, amount int) (*domain.Character, error) {
	if amount < 1 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidAmount, amount)
	}
	return s.mutate(ctx, name, func(c *domain.Character) error {
		c.HP = min(c.MaxHP, c.HP+amount)
		return nil
	})
}

// RecordKill counts a kill and applies any level up. Gaining a level raises
// maxHp and hp by the same amount.
func (s *service) RecordKill(ctx context.Context, name string) (*KillResult, error) {
	leveledUp := false
	c, err := s.mutate(ctx, name, func(c *domain.Character) error {
		c.Kills++
		level := domain.LevelForKills(c.Kills)
		if level <= c.Level {
			return nil
		}

		maxHP := domain.MaxHPForLevel(level)
		c.HP = min(maxHP, c.HP+maxHP-c.MaxHP)
		c.MaxHP = maxHP
		c.Level = level
		leveledUp = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if leveledUp {
		logger.FromContext(ctx).Info(LogMsgLevelUp, "character", name, "level", c.Level)
	}
	return &KillResult{Character: c, LeveledUp: leveledUp}, nil
}
