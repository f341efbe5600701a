package domain

import "time"

// Character level curve and pools
const (
	BaseMaxHP       = 100
	MaxHPPerLevel   = 10
	KillsPerLevelUp = 5 // kills needed grow by this step each level
	MaxLevel        = 99
)

// Character is the persisted character sheet
type Character struct {
	Name      string    `json:"name"`
	Level     int       `json:"level"`
	HP        int       `json:"hp"`
	MaxHP     int       `json:"max_hp"`
	Shield    int       `json:"shield"`
	MaxShield int       `json:"max_shield"`
	Kills     int       `json:"kills"`
	Skills    []string  `json:"skills"`
	Avatar    string    `json:"avatar,omitempty"`
	Weapons   []Weapon  `json:"weapons"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCharacter returns a level 1 character with full health
func NewCharacter(name string) *Character {
	return &Character{
		Name:      name,
		Level:     1,
		HP:        MaxHPForLevel(1),
		MaxHP:     MaxHPForLevel(1),
		Skills:    []string{},
		Weapons:   []Weapon{},
		UpdatedAt: time.Now().UTC(),
	}
}

// MaxHPForLevel returns the hit point pool at the given level
func MaxHPForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return BaseMaxHP + MaxHPPerLevel*(level-1)
}

// KillsForLevel returns the total kills required to reach the given level.
// Level 2 needs 5 kills, level 3 needs 15, level 4 needs 30.
func KillsForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return KillsPerLevelUp * level * (level - 1) / 2
}

// LevelForKills returns the level reached with the given kill count
func LevelForKills(kills int) int {
	level := 1
	for level < MaxLevel && kills >= KillsForLevel(level+1) {
		level++
	}
	return level
}

// FindWeapon returns the index of the weapon with the given id, or -1
func (c *Character) FindWeapon(id string) int {
	for i := range c.Weapons {
		if c.Weapons[i].ID == id {
			return i
		}
	}
	return -1
}

// EquippedShield returns the equipped shield, if any
func (c *Character) EquippedShield(isShieldClass func(className string) bool) *Weapon {
	for i := range c.Weapons {
		w := &c.Weapons[i]
		if w.Equipped && isShieldClass(w.WeaponClass) {
			return w
		}
	}
	return nil
}

// Clone returns a deep copy safe to hand out of a lock
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Skills = append([]string(nil), c.Skills...)
	cp.Weapons = append([]Weapon(nil), c.Weapons...)
	if cp.Skills == nil {
		cp.Skills = []string{}
	}
	if cp.Weapons == nil {
		cp.Weapons = []Weapon{}
	}
	return &cp
}
