package character

import (
	"context"
	"fmt"
	"slices"

	"github.com/osse101/armory/internal/domain"
)

func (s *service) weaponIndex(c *domain.Character, weaponID string) (int, error) {
	i := c.FindWeapon(weaponID)
	if i < 0 {
		return -1, fmt.Errorf("%w: %s", domain.ErrWeaponNotFound, weaponID)
	}
	return i, nil
}

// Equip equips a weapon, unequipping any other weapon of the same kind.
// Equipping a shield sets maxShield to its shield points and fills the shield.
func (s *service) Equip(ctx context.Context, name, weaponID string) (*domain.Character, error) {
	return s.mutate(ctx, name, func(c *domain.Character) error {
		i, err := s.weaponIndex(c, weaponID)
		if err != nil {
			return err
		}

		shield := s.catalog.IsShieldClass(c.Weapons[i].WeaponClass)
		for j := range c.Weapons {
			if j != i && s.catalog.IsShieldClass(c.Weapons[j].WeaponClass) == shield {
				c.Weapons[j].Equipped = false
			}
		}
		c.Weapons[i].Equipped = true

		if shield {
			c.MaxShield = c.Weapons[i].ShieldPoints
			c.Shield = c.MaxShield
		}
		return nil
	})
}

// Unequip clears the equipped flag. Unequipping the shield drops maxShield and shield to 0.
func (s *service) Unequip(ctx context.Context, name, weaponID string) (*domain.Character, error) {
	return s.mutate(ctx, name, func(c *domain.Character) error {
		i, err := s.weaponIndex(c, weaponID)
		if err != nil {
			return err
		}
		c.Weapons[i].Equipped = false
		s.syncShield(c)
		return nil
	})
}

// RemoveWeapon deletes a weapon from the inventory
func (s *service) RemoveWeapon(ctx context.Context, name, weaponID string) (*domain.Character, error) {
	return s.mutate(ctx, name, func(c *domain.Character) error {
		i, err := s.weaponIndex(c, weaponID)
		if err != nil {
			return err
		}
		c.Weapons = slices.Delete(c.Weapons, i, i+1)
		s.syncShield(c)
		return nil
	})
}

// syncShield derives maxShield from the equipped shield and clamps shield to it
func (s *service) syncShield(c *domain.Character) {
	c.MaxShield = 0
	if w := c.EquippedShield(s.catalog.IsShieldClass); w != nil {
		c.MaxShield = w.ShieldPoints
	}
	c.Shield = min(c.Shield, c.MaxShield)
}
