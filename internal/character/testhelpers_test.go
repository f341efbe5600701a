package character

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osse101/armory/internal/catalog"
	"github.com/osse101/armory/internal/database/memory"
	"github.com/osse101/armory/internal/domain"
	"github.com/osse101/armory/internal/repository"
	"github.com/osse101/armory/internal/share"
)

func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(
		[]domain.WeaponClass{
			{Name: "Pistol", Types: []string{"Laser Pistol", "Revolver"}, BaseRange: 20, StatModifiers: domain.StatModifiers{Damage: 1.0, Accuracy: 1.0}},
			{Name: "Shield", Types: []string{"Riot Shield"}, BaseRange: 1, StatModifiers: domain.StatModifiers{Damage: 0.5, Accuracy: 1.0}, Kind: domain.ClassShield},
		},
		[]domain.Rarity{
			{Name: "Common", Color: "#aaa", StatBonus: 1.0},
			{Name: "Uncommon", Color: "#0a0", StatBonus: 1.1},
			{Name: "Rare", Color: "#00a", StatBonus: 1.25},
			{Name: "Epic", Color: "#a0a", StatBonus: 1.5},
			{Name: "Legendary", Color: "#fa0", StatBonus: 2.0},
		},
	)
	require.NoError(t, err)
	return cat
}

func pistol(id string) *domain.Weapon {
	return &domain.Weapon{
		ID: id, Name: "Common Laser Pistol", Type: "Laser Pistol", WeaponClass: "Pistol", Rarity: "Common",
		Level: 1, Damage: 20, Accuracy: 85, Range: 20,
	}
}

func riotShield(id string, points int) *domain.Weapon {
	return &domain.Weapon{
		ID: id, Name: "Common Riot Shield", Type: "Riot Shield", WeaponClass: "Shield", Rarity: "Common",
		Level: 1, Damage: 18, Accuracy: 60, Range: 1, ShieldPoints: points,
	}
}

type testEnv struct {
	svc   Service
	repo  repository.Character
	saver *fakeSaver
	gen   *queueGenerator
	codec *share.Codec
}

func newTestEnv(t *testing.T, weapons ...*domain.Weapon) *testEnv {
	t.Helper()
	return newTestEnvWithRepo(t, memory.NewCharacterRepository(), weapons...)
}

func newTestEnvWithRepo(t *testing.T, repo repository.Character, weapons ...*domain.Weapon) *testEnv {
	t.Helper()
	cat := newTestCatalog(t)
	codec, err := share.NewCodec(cat)
	require.NoError(t, err)

	env := &testEnv{
		repo:  repo,
		saver: newFakeSaver(),
		gen:   &queueGenerator{weapons: weapons},
		codec: codec,
	}
	env.svc = NewService(repo, env.saver, env.gen, codec, cat, Config{QRSize: 128})
	return env
}

// createWithInventory creates name and accepts each weapon into its inventory
func (e *testEnv) createWithInventory(t *testing.T, name string) *domain.Character {
	t.Helper()
	ctx := context.Background()
	_, err := e.svc.Create(ctx, name)
	require.NoError(t, err)

	var c *domain.Character
	for range e.gen.weapons {
		_, err := e.svc.GenerateLoot(ctx, name)
		require.NoError(t, err)
		c, err = e.svc.AcceptLoot(ctx, name)
		require.NoError(t, err)
	}
	return c
}
