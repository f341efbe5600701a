package character

import "time"

// ============================================================================
// Cache Configuration
// ============================================================================

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// DefaultCacheSize is the default maximum number of cached characters
const DefaultCacheSize = 1000

// DefaultCacheTTL is the default time-to-live for cache entries
const DefaultCacheTTL = 5 * time.Minute

// ============================================================================
// Record Limits
// ============================================================================

const (
	MaxNameLength   = 32
	MaxSkills       = 64
	MaxSkillLength  = 64
	MaxAvatarLength = 2048
)

// Patchable record fields
const (
	FieldAvatar = "avatar"
	FieldSkills = "skills"
	FieldHP     = "hp"
	FieldShield = "shield"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgCharacterCreated = "Character created"
	LogMsgCharacterDeleted = "Character deleted"
	LogMsgLevelUp          = "Character leveled up"
	LogMsgLootGenerated    = "Loot generated"
	LogMsgWeaponShared     = "Weapon shared"
	LogMsgWeaponReceived   = "Weapon received"
	LogMsgShareFailed      = "Share failed"
	LogMsgReceiveFailed    = "Receive failed"
	LogMsgFailedToLoad     = "Failed to load character"
	LogMsgFailedToSave     = "Failed to save character"
	LogMsgFailedToRenderQR = "Failed to render QR code"
	LogMsgFailedToGenerate = "Failed to generate loot"
	LogMsgSlotReplaced     = "Loot slot replaced"
	LogMsgCacheInvalidated = "Character cache invalidated"
)
