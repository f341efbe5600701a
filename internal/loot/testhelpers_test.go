package loot

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osse101/armory/internal/catalog"
	"github.com/osse101/armory/internal/domain"
)

// scriptedRandom replays fixed draws so a test can force each roll
type scriptedRandom struct {
	ints   []int
	floats []float64
}

func (s *scriptedRandom) IntN(n int) int {
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *scriptedRandom) Float64() float64 {
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(
		[]domain.WeaponClass{
			{Name: "Pistol", Types: []string{"Laser Pistol", "Revolver"}, BaseRange: 20, StatModifiers: domain.StatModifiers{Damage: 1.0, Accuracy: 1.0}},
			{Name: "Shield", Types: []string{"Riot Shield"}, BaseRange: 1, StatModifiers: domain.StatModifiers{Damage: 0.5, Accuracy: 1.0}, Kind: domain.ClassShield},
			{Name: "Sniper", Types: []string{"Longshot"}, BaseRange: 80, StatModifiers: domain.StatModifiers{Damage: 1.4, Accuracy: 1.2}},
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
