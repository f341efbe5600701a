package catalog

// ==================== Configuration File Names ====================

// Default catalog document locations, relative to the working directory
const (
	DefaultClassesPath  = "configs/catalog/weapon_classes.json"
	DefaultRaritiesPath = "configs/catalog/rarities.json"
)

// Embedded schema names
const (
	ClassesSchemaName  = "weapon_classes.schema.json"
	RaritiesSchemaName = "rarities.schema.json"
)

// ==================== Error Messages ====================

// File operation error messages
const (
	ErrMsgReadCatalogFailed  = "failed to read catalog file %s: %w"
	ErrMsgParseCatalogFailed = "failed to parse catalog file %s: %w"
	ErrMsgYAMLConvertFailed  = "failed to convert YAML catalog %s: %w"
	ErrMsgUnsupportedFormat  = "%w: unsupported catalog file extension %q"
)

// Validation error messages
const (
	ErrFmtNoClasses          = "%w: no weapon classes defined"
	ErrFmtEmptyClassName     = "%w: weapon class with empty name"
	ErrFmtDuplicateClass     = "%w: duplicate weapon class '%s'"
	ErrFmtClassNoTypes       = "%w: weapon class '%s' has no types"
	ErrFmtEmptyTypeName      = "%w: weapon class '%s' has an empty type name"
	ErrFmtDuplicateType      = "%w: type '%s' appears in both '%s' and '%s'"
	ErrFmtBadBaseRange       = "%w: weapon class '%s' has non-positive base range"
	ErrFmtBadModifiers       = "%w: weapon class '%s' has non-positive stat modifiers"
	ErrFmtRarityCount        = "%w: expected %d rarities, got %d"
	ErrFmtEmptyRarityName    = "%w: rarity at rank %d has empty name"
	ErrFmtDuplicateRarity    = "%w: duplicate rarity '%s'"
	ErrFmtRarityBonusTooLow  = "%w: rarity '%s' has stat bonus below 1.0"
	ErrFmtRarityNotMonotonic = "%w: rarity '%s' has a lower stat bonus than the rank below it"
)

// ==================== Log Messages ====================

const (
	LogMsgCatalogLoaded = "Weapon catalog loaded"
)
