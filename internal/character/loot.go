package character

import (
	"context"

	"github.com/osse101/armory/internal/domain"
	"github.com/osse101/armory/internal/logger"
)

func (s *service) slot(name string) (*domain.Weapon, bool) {
	s.slotMu.Lock()
	defer s.slotMu.Unlock()
	w, ok := s.slots[name]
	if !ok {
		return nil, false
	}
	cp := *w
	return &cp, true
}

// setSlot replaces the slot content and reports whether something was discarded
func (s *service) setSlot(name string, w *domain.Weapon) bool {
	cp := *w
	s.slotMu.Lock()
	defer s.slotMu.Unlock()
	_, replaced := s.slots[name]
	s.slots[name] = &cp
	return replaced
}

func (s *service) clearSlot(name string) {
	s.slotMu.Lock()
	defer s.slotMu.Unlock()
	delete(s.slots, name)
}

// fillSlot puts w into the loot slot of an existing character. Caller holds the name lock.
func (s *service) fillSlot(ctx context.Context, name string, w *domain.Weapon) error {
	if _, err := s.load(ctx, name); err != nil {
		return err
	}
	if s.setSlot(name, w) {
		logger.FromContext(ctx).Debug(LogMsgSlotReplaced, "character", name)
	}
	return nil
}

// GenerateLoot rolls a weapon for the character's level into the loot slot,
// replacing anything already there
func (s *service) GenerateLoot(ctx context.Context, name string) (*domain.Weapon, error) {
	var out *domain.Weapon
	err := s.locks.Do(name, func() error {
		c, err := s.load(ctx, name)
		if err != nil {
			return err
		}

		w, err := s.gen.Generate(ctx, c.Level)
		if err != nil {
			logger.FromContext(ctx).Error(LogMsgFailedToGenerate, "character", name, "error", err)
			return err
		}
		s.setSlot(name, w)
		out = w
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgLootGenerated,
		"character", name, "weapon", out.Name, "rarity", out.Rarity, "level", out.Level)
	return out, nil
}

// PeekLoot returns the slot weapon without taking it
func (s *service) PeekLoot(ctx context.Context, name string) (*domain.Weapon, error) {
	var out *domain.Weapon
	err := s.locks.Do(name, func() error {
		if _, err := s.load(ctx, name); err != nil {
			return err
		}
		w, ok := s.slot(name)
		if !ok {
			return domain.ErrLootSlotEmpty
		}
		out = w
		return nil
	})
	return out, err
}

// AcceptLoot moves the slot weapon into the inventory
func (s *service) AcceptLoot(ctx context.Context, name string) (*domain.Character, error) {
	return s.mutate(ctx, name, func(c *domain.Character) error {
		w, ok := s.slot(name)
		if !ok {
			return domain.ErrLootSlotEmpty
		}
		w.Equipped = false
		c.Weapons = append(c.Weapons, *w)
		s.clearSlot(name)
		return nil
	})
}

// DiscardLoot empties the slot
func (s *service) DiscardLoot(ctx context.Context, name string) error {
	return s.locks.Do(name, func() error {
		if _, err := s.load(ctx, name); err != nil {
			return err
		}
		if _, ok := s.slot(name); !ok {
			return domain.ErrLootSlotEmpty
		}
		s.clearSlot(name)
		return nil
	})
}
