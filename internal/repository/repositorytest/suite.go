// Package repositorytest holds behaviour checks shared by every
// repository.Character backend.
package repositorytest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/armory/internal/domain"
	"github.com/osse101/armory/internal/repository"
)

// NewCharacter returns a populated character record for storage tests
func NewCharacter(name string) *domain.Character {
	c := domain.NewCharacter(name)
	c.Level = 3
	c.Kills = 17
	c.MaxHP = domain.MaxHPForLevel(3)
	c.HP = 42
	c.Shield = 10
	c.MaxShield = 120
	c.Skills = []string{"dash", "overcharge"}
	c.Avatar = "https://example.com/avatar.png"
	c.UpdatedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	c.Weapons = []domain.Weapon{
		{
			ID: "0190b7c4-0000-7000-8000-000000000001", Name: "Rare Laser Pistol", Type: "Laser Pistol",
			WeaponClass: "Pistol", Rarity: "Rare", Color: "#3b82f6", Level: 3,
			Damage: 31, Accuracy: 88, Range: 21, Equipped: true,
			CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: "0190b7c4-0000-7000-8000-000000000002", Name: "Common Riot Shield", Type: "Riot Shield",
			WeaponClass: "Shield", Rarity: "Common", Color: "#9ca3af", Level: 2,
			Damage: 20, Accuracy: 70, Range: 5, ShieldPoints: 120, Equipped: true, IsReceived: true,
			CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	return c
}

// Run exercises the repository.Character contract against repo.
// repo must start empty.
func Run(t *testing.T, repo repository.Character) {
	t.Helper()
	ctx := context.Background()

	t.Run("load missing returns not found", func(t *testing.T) {
		_, err := repo.Load(ctx, "nobody")
		assert.ErrorIs(t, err, domain.ErrCharacterNotFound)
	})

	t.Run("save then load round trips the record", func(t *testing.T) {
		want := NewCharacter("Vex")
		require.NoError(t, repo.Save(ctx, want))

		got, err := repo.Load(ctx, "Vex")
		require.NoError(t, err)
		assert.Equal(t, want.Name, got.Name)
		assert.Equal(t, want.Level, got.Level)
		assert.Equal(t, want.HP, got.HP)
		assert.Equal(t, want.Skills, got.Skills)
		assert.Equal(t, want.Avatar, got.Avatar)
		assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt))
		require.Len(t, got.Weapons, 2)
		assert.Equal(t, want.Weapons[0].ID, got.Weapons[0].ID)
		assert.Equal(t, want.Weapons[1].ShieldPoints, got.Weapons[1].ShieldPoints)
		assert.True(t, got.Weapons[1].IsReceived)
	})

	t.Run("save overwrites last write wins", func(t *testing.T) {
		c := NewCharacter("Rook")
		require.NoError(t, repo.Save(ctx, c))
		c.HP = 7
		c.Weapons = c.Weapons[:1]
		require.NoError(t, repo.Save(ctx, c))

		got, err := repo.Load(ctx, "Rook")
		require.NoError(t, err)
		assert.Equal(t, 7, got.HP)
		assert.Len(t, got.Weapons, 1)
	})

	t.Run("loaded record is independent of the saved value", func(t *testing.T) {
		c := NewCharacter("Mira")
		require.NoError(t, repo.Save(ctx, c))
		c.Skills[0] = "mutated"

		got, err := repo.Load(ctx, "Mira")
		require.NoError(t, err)
		assert.Equal(t, "dash", got.Skills[0])
	})

	t.Run("list returns sorted names", func(t *testing.T) {
		names, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Mira", "Rook", "Vex"}, names)
	})

	t.Run("delete removes the record", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "Rook"))
		_, err := repo.Load(ctx, "Rook")
		assert.ErrorIs(t, err, domain.ErrCharacterNotFound)

		names, err := repo.List(ctx)
		require.NoError(t, err)
		assert.NotContains(t, names, "Rook")
	})

	t.Run("delete of missing record is not an error", func(t *testing.T) {
		assert.NoError(t, repo.Delete(ctx, "ghost"))
	})

	t.Run("concurrent saves of distinct characters", func(t *testing.T) {
		var wg sync.WaitGroup
		names := []string{"c1", "c2", "c3", "c4", "c5", "c6", "c7", "c8"}
		for _, name := range names {
			wg.Add(1)
			go func(name string) {
				defer wg.Done()
				if err := repo.Save(ctx, NewCharacter(name)); err != nil {
					t.Errorf("save %s: %v", name, err)
				}
			}(name)
		}
		wg.Wait()

		for _, name := range names {
			_, err := repo.Load(ctx, name)
			assert.NoError(t, err, name)
		}
	})
}
