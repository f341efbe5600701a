package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKillsForLevel(t *testing.T) {
	tests := []struct {
		level int
		kills int
	}{
		{0, 0},
		{1, 0},
		{2, 5},
		{3, 15},
		{4, 30},
		{5, 50},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("level %d", tt.level), func(t *testing.T) {
			assert.Equal(t, tt.kills, KillsForLevel(tt.level))
		})
	}
}

func TestLevelForKills(t *testing.T) {
	assert.Equal(t, 1, LevelForKills(0))
	assert.Equal(t, 1, LevelForKills(4))
	assert.Equal(t, 2, LevelForKills(5))
	assert.Equal(t, 2, LevelForKills(14))
	assert.Equal(t, 3, LevelForKills(15))
	assert.Equal(t, MaxLevel, LevelForKills(1<<30), "level is capped")
}

func TestMaxHPForLevel(t *testing.T) {
	assert.Equal(t, 100, MaxHPForLevel(1))
	assert.Equal(t, 110, MaxHPForLevel(2))
	assert.Equal(t, 100, MaxHPForLevel(0), "levels below 1 clamp to 1")
}

func TestNewCharacter(t *testing.T) {
	c := NewCharacter("Vex")

	assert.Equal(t, "Vex", c.Name)
	assert.Equal(t, 1, c.Level)
	assert.Equal(t, c.MaxHP, c.HP)
	assert.NotNil(t, c.Weapons)
	assert.NotNil(t, c.Skills)
}

func TestCharacter_CloneIsDeep(t *testing.T) {
	c := NewCharacter("Vex")
	c.Weapons = append(c.Weapons, Weapon{ID: "a", Damage: 10})
	c.Skills = append(c.Skills, "dash")

	cp := c.Clone()
	cp.Weapons[0].Damage = 99
	cp.Skills[0] = "blink"

	assert.Equal(t, 10, c.Weapons[0].Damage)
	assert.Equal(t, "dash", c.Skills[0])
	assert.Nil(t, (*Character)(nil).Clone())
}

func TestWeapon_Shareable(t *testing.T) {
	assert.True(t, (&Weapon{}).Shareable())
	assert.False(t, (&Weapon{IsReceived: true}).Shareable())
	assert.False(t, (*Weapon)(nil).Shareable())
}

func TestCharacter_EquippedShield(t *testing.T) {
	c := NewCharacter("Vex")
	c.Weapons = []Weapon{
		{ID: "r", WeaponClass: "Rifle", Equipped: true},
		{ID: "s1", WeaponClass: "Shield", ShieldPoints: 40},
		{ID: "s2", WeaponClass: "Shield", ShieldPoints: 70, Equipped: true},
	}
	isShield := func(name string) bool { return name == "Shield" }

	got := c.EquippedShield(isShield)
	if assert.NotNil(t, got) {
		assert.Equal(t, "s2", got.ID)
	}
	assert.Equal(t, -1, c.FindWeapon("missing"))
	assert.Equal(t, 1, c.FindWeapon("s1"))
}
