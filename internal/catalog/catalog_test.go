package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/armory/internal/domain"
)

func testRarities() []domain.Rarity {
	return []domain.Rarity{
		{Name: "Common", Color: "#aaa", StatBonus: 1.0},
		{Name: "Uncommon", Color: "#0a0", StatBonus: 1.1},
		{Name: "Rare", Color: "#00a", StatBonus: 1.25},
		{Name: "Epic", Color: "#a0a", StatBonus: 1.5},
		{Name: "Legendary", Color: "#fa0", StatBonus: 2.0},
	}
}

func testClasses() []domain.WeaponClass {
	return []domain.WeaponClass{
		{Name: "Rifle", Types: []string{"Assault Rifle", "Pulse Rifle"}, BaseRange: 40, StatModifiers: domain.StatModifiers{Damage: 1.2, Accuracy: 1}},
		{Name: "Pistol", Types: []string{"Laser Pistol"}, BaseRange: 20, StatModifiers: domain.StatModifiers{Damage: 1, Accuracy: 1}},
		{Name: "Shield", Types: []string{"Riot Shield"}, BaseRange: 1, StatModifiers: domain.StatModifiers{Damage: 0.5, Accuracy: 1}, Kind: domain.ClassShield},
	}
}

func TestNew_Lookups(t *testing.T) {
	cat, err := New(testClasses(), testRarities())
	require.NoError(t, err)

	assert.Equal(t, []string{"Pistol", "Rifle", "Shield"}, cat.ClassNames())
	assert.Equal(t, []string{"Laser Pistol", "Assault Rifle", "Pulse Rifle", "Riot Shield"}, cat.TypeNames())

	class, ok := cat.Class("rIFLE")
	require.True(t, ok)
	assert.Equal(t, "Rifle", class.Name)

	class, typeName, ok := cat.ClassOfType("laser pistol")
	require.True(t, ok)
	assert.Equal(t, "Pistol", class.Name)
	assert.Equal(t, "Laser Pistol", typeName)

	_, _, ok = cat.ClassOfType("Flamethrower")
	assert.False(t, ok)

	rarity, rank, ok := cat.RarityByName("epic")
	require.True(t, ok)
	assert.Equal(t, 3, rank)
	assert.Equal(t, "Epic", rarity.Name)

	_, ok = cat.Rarity(5)
	assert.False(t, ok)

	assert.True(t, cat.IsShieldClass("shield"))
	assert.False(t, cat.IsShieldClass("Rifle"))
	assert.False(t, cat.IsShieldClass("Unknown"))
}

func TestNew_ReturnsCopies(t *testing.T) {
	cat, err := New(testClasses(), testRarities())
	require.NoError(t, err)

	names := cat.ClassNames()
	names[0] = "mutated"
	class, _ := cat.Class("Rifle")
	class.Types[0] = "mutated"
	rarities := cat.Rarities()
	rarities[0].Name = "mutated"

	assert.Equal(t, "Pistol", cat.ClassNames()[0])
	again, _ := cat.Class("Rifle")
	assert.Equal(t, "Assault Rifle", again.Types[0])
	assert.Equal(t, "Common", cat.Rarities()[0].Name)
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(classes []domain.WeaponClass, rarities []domain.Rarity) ([]domain.WeaponClass, []domain.Rarity)
		errorMsg string
	}{
		{
			name: "no classes",
			mutate: func(_ []domain.WeaponClass, r []domain.Rarity) ([]domain.WeaponClass, []domain.Rarity) {
				return nil, r
			},
			errorMsg: "no weapon classes",
		},
		{
			name: "type shared between classes",
			mutate: func(c []domain.WeaponClass, r []domain.Rarity) ([]domain.WeaponClass, []domain.Rarity) {
				c[1].Types = append(c[1].Types, "pulse rifle")
				return c, r
			},
			errorMsg: "appears in both",
		},
		{
			name: "class without types",
			mutate: func(c []domain.WeaponClass, r []domain.Rarity) ([]domain.WeaponClass, []domain.Rarity) {
				c[0].Types = nil
				return c, r
			},
			errorMsg: "has no types",
		},
		{
			name: "duplicate class name",
			mutate: func(c []domain.WeaponClass, r []domain.Rarity) ([]domain.WeaponClass, []domain.Rarity) {
				c[1].Name = "rifle"
				return c, r
			},
			errorMsg: "duplicate weapon class",
		},
		{
			name: "zero base range",
			mutate: func(c []domain.WeaponClass, r []domain.Rarity) ([]domain.WeaponClass, []domain.Rarity) {
				c[0].BaseRange = 0
				return c, r
			},
			errorMsg: "base range",
		},
		{
			name: "four rarities",
			mutate: func(c []domain.WeaponClass, r []domain.Rarity) ([]domain.WeaponClass, []domain.Rarity) {
				return c, r[:4]
			},
			errorMsg: "expected 5 rarities",
		},
		{
			name: "bonus below one",
			mutate: func(c []domain.WeaponClass, r []domain.Rarity) ([]domain.WeaponClass, []domain.Rarity) {
				r[0].StatBonus = 0.9
				return c, r
			},
			errorMsg: "below 1.0",
		},
		{
			name: "bonus decreases with rank",
			mutate: func(c []domain.WeaponClass, r []domain.Rarity) ([]domain.WeaponClass, []domain.Rarity) {
				r[3].StatBonus = 1.2
				return c, r
			},
			errorMsg: "lower stat bonus",
		},
		{
			name: "duplicate rarity",
			mutate: func(c []domain.WeaponClass, r []domain.Rarity) ([]domain.WeaponClass, []domain.Rarity) {
				r[4].Name = "EPIC"
				return c, r
			},
			errorMsg: "duplicate rarity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classes, rarities := tt.mutate(testClasses(), testRarities())
			_, err := New(classes, rarities)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidCatalog))
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const raritiesJSON = `[
	{"name": "Common", "color": "#aaa", "statBonus": 1.0},
	{"name": "Uncommon", "color": "#0a0", "statBonus": 1.1},
	{"name": "Rare", "color": "#00a", "statBonus": 1.25},
	{"name": "Epic", "color": "#a0a", "statBonus": 1.5},
	{"name": "Legendary", "color": "#fa0", "statBonus": 2.0}
]`

func TestLoad_ShippedCatalog(t *testing.T) {
	cat, err := Load(context.Background(), "../../configs/catalog/weapon_classes.json", "../../configs/catalog/rarities.json")
	require.NoError(t, err)

	pistol, ok := cat.Class("Pistol")
	require.True(t, ok)
	assert.Equal(t, 20.0, pistol.BaseRange)
	assert.Equal(t, domain.StatModifiers{Damage: 1.0, Accuracy: 1.0}, pistol.StatModifiers)
	assert.Contains(t, pistol.Types, "Laser Pistol")
	assert.False(t, pistol.IsShield())

	assert.True(t, cat.IsShieldClass("Shield"))
	assert.Len(t, cat.Rarities(), domain.RarityCount)
	common, _ := cat.Rarity(0)
	assert.Equal(t, "Common", common.Name)
	assert.Equal(t, 1.0, common.StatBonus)
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	classes := writeFile(t, dir, "classes.yaml", `
Pistol:
  color: "#4fc3f7"
  emoji: gun
  types: [Laser Pistol, Revolver]
  baseRange: 20
  statModifiers: {damage: 1.0, accuracy: 1.0}
Shield:
  color: "#90a4ae"
  types: [Riot Shield]
  baseRange: 1
  statModifiers: {damage: 0.5, accuracy: 1.0}
  isShield: true
`)
	rarities := writeFile(t, dir, "rarities.json", raritiesJSON)

	cat, err := Load(context.Background(), classes, rarities)
	require.NoError(t, err)

	class, ok := cat.Class("Pistol")
	require.True(t, ok)
	assert.Equal(t, "gun", class.Icon)
	assert.Equal(t, []string{"Laser Pistol", "Revolver"}, class.Types)
	assert.True(t, cat.IsShieldClass("Shield"))
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	rarities := writeFile(t, dir, "rarities.json", raritiesJSON)

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(context.Background(), filepath.Join(dir, "nope.json"), rarities)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read catalog file")
	})

	t.Run("schema violation", func(t *testing.T) {
		classes := writeFile(t, dir, "bad.json", `{"Pistol": {"color": "#fff", "baseRange": 20, "statModifiers": {"damage": 1, "accuracy": 1}}}`)
		_, err := Load(context.Background(), classes, rarities)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidCatalog)
		assert.Contains(t, err.Error(), "schema validation failed")
	})

	t.Run("wrong rarity count", func(t *testing.T) {
		classes := writeFile(t, dir, "ok.json", `{"Pistol": {"color": "#fff", "types": ["Laser Pistol"], "baseRange": 20, "statModifiers": {"damage": 1, "accuracy": 1}}}`)
		short := writeFile(t, dir, "short.json", `[{"name": "Common", "color": "#aaa", "statBonus": 1.0}]`)
		_, err := Load(context.Background(), classes, short)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidCatalog)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		classes := writeFile(t, dir, "broken.json", `{"Pistol": `)
		_, err := Load(context.Background(), classes, rarities)
		require.Error(t, err)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		classes := writeFile(t, dir, "classes.toml", `x = 1`)
		_, err := Load(context.Background(), classes, rarities)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported catalog file extension")
	})

	t.Run("empty YAML", func(t *testing.T) {
		classes := writeFile(t, dir, "empty.yml", ``)
		_, err := Load(context.Background(), classes, rarities)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty document")
	})
}
