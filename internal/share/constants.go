package share

// FormatVersion is the only compact array version this codec reads or writes.
const FormatVersion = 3

// Positions within the compact array
const (
	idxVersion = iota
	idxType
	idxRarity
	idxDamage
	idxAccuracy
	idxRange
	idxLevel
	idxShieldPoints

	payloadLength
)

// QR rendering
const (
	DefaultQRSize = 256
	MinQRSize     = 64
	MaxQRSize     = 1024
)

// Failure reasons recorded on the share failure counter
const (
	ReasonUnmappable         = "unmappable"
	ReasonMalformed          = "malformed"
	ReasonUnsupportedVersion = "unsupported_version"
	ReasonNotShareable       = "not_shareable"
	ReasonNoCode             = "no_code"
	ReasonOther              = "other"
)

// Field names reported by UnmappableValueError
const (
	FieldType   = "type"
	FieldClass  = "weapon_class"
	FieldRarity = "rarity"
	FieldStat   = "stat"
)
