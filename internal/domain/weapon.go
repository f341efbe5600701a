package domain

import "time"

// ClassKind tags how a weapon class participates in combat math.
type ClassKind int

const (
	// ClassStandard weapons deal damage.
	ClassStandard ClassKind = iota
	// ClassShield weapons provide shield points; their damage is not used for gameplay.
	ClassShield
)

// String returns the lowercase name of the kind
func (k ClassKind) String() string {
	switch k {
	case ClassShield:
		return "shield"
	default:
		return "standard"
	}
}

// StatModifiers scale the base damage and accuracy rolls of a class
type StatModifiers struct {
	Damage   float64 `json:"damage" yaml:"damage"`
	Accuracy float64 `json:"accuracy" yaml:"accuracy"`
}

// WeaponClass is an immutable catalog entry describing a weapon category
type WeaponClass struct {
	Name          string        `json:"name"`
	Color         string        `json:"color"`
	Icon          string        `json:"icon"`
	Types         []string      `json:"types"`
	BaseRange     float64       `json:"base_range"`
	StatModifiers StatModifiers `json:"stat_modifiers"`
	Kind          ClassKind     `json:"-"`
}

// IsShield reports whether the class is a shield class
func (c WeaponClass) IsShield() bool {
	return c.Kind == ClassShield
}

// Rarity is an immutable catalog entry. Its position in the catalog's rarity
// list is its rank, 0 (common) through 4 (legendary).
type Rarity struct {
	Name      string  `json:"name"`
	Color     string  `json:"color"`
	StatBonus float64 `json:"stat_bonus"`
}

// RarityCount is the number of rarity tiers in a catalog.
const RarityCount = 5

// Weapon is a generated (or received) piece of loot.
type Weapon struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	WeaponClass  string    `json:"weapon_class"`
	Rarity       string    `json:"rarity"`
	Color        string    `json:"color"`
	Level        int       `json:"level"`
	Damage       int       `json:"damage"`
	Accuracy     int       `json:"accuracy"`
	Range        int       `json:"range"`
	ShieldPoints int       `json:"shield_points"`
	Equipped     bool      `json:"equipped"`
	IsShared     bool      `json:"is_shared"`
	IsReceived   bool      `json:"is_received"`
	CreatedAt    time.Time `json:"created_at"`
}

// Shareable reports whether the weapon may be converted into a share payload.
// Received weapons are terminal.
func (w *Weapon) Shareable() bool {
	return w != nil && !w.IsReceived
}

// DisplayName builds the regenerated display name of a weapon
func DisplayName(rarityName, typeName string) string {
	return rarityName + " " + typeName
}
