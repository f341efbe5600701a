package loot

// ============================================================================
// Stat Rolls
// ============================================================================

// Base damage is rolled uniformly in [DamageRollMin, DamageRollMax) before scaling.
const (
	DamageRollMin = 15.0
	DamageRollMax = 45.0
)

// Base accuracy is rolled uniformly in [AccuracyRollMin, AccuracyRollMax) before scaling.
const (
	AccuracyRollMin = 75.0
	AccuracyRollMax = 95.0
)

// MaxAccuracy caps accuracy after the rarity bonus is applied.
const MaxAccuracy = 100

// RangeJitter is the maximum fraction of a class's base range added or removed.
const RangeJitter = 0.10

// LevelMultiplierStep is the damage increase per weapon level above 1.
const LevelMultiplierStep = 0.15

// ShieldPointsFactor converts a shield's base damage roll into shield points.
const ShieldPointsFactor = 10

// Weapon level spread around the requesting character's level.
const (
	LevelSpreadBelow = 1
	LevelSpreadAbove = 3
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgWeaponGenerated = "Weapon generated"
)

// Log field keys for structured logging
const (
	LogFieldWeaponID = "weapon_id"
	LogFieldClass    = "class"
	LogFieldRarity   = "rarity"
	LogFieldLevel    = "level"
)
