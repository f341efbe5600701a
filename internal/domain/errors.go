package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Catalog errors
	ErrMsgNotReady       = "catalog not loaded"
	ErrMsgInvalidCatalog = "invalid catalog"

	// Generation errors
	ErrMsgInvalidLevel = "invalid character level"

	// Share codec errors
	ErrMsgUnmappableValue    = "value has no compact code"
	ErrMsgMalformedPayload   = "malformed share payload"
	ErrMsgUnsupportedVersion = "unsupported share format version"
	ErrMsgNotShareable       = "weapon cannot be shared"
	ErrMsgNoCodeFound        = "no QR code found in image"

	// Character errors
	ErrMsgCharacterNotFound = "character not found"
	ErrMsgCharacterExists   = "character already exists"
	ErrMsgWeaponNotFound    = "weapon not found"
	ErrMsgLootSlotEmpty     = "loot slot is empty"
	ErrMsgInvalidAmount     = "amount must be positive"
	ErrMsgInvalidPatch      = "invalid character patch"
	ErrMsgInvalidName       = "invalid character name"

	// Storage errors
	ErrMsgStorageUnavailable = "storage unavailable"

	// Scan errors
	ErrMsgScanStopped = "scan session stopped"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrNotReady       = errors.New(ErrMsgNotReady)
	ErrInvalidCatalog = errors.New(ErrMsgInvalidCatalog)

	ErrInvalidLevel = errors.New(ErrMsgInvalidLevel)

	ErrUnmappableValue    = errors.New(ErrMsgUnmappableValue)
	ErrMalformedPayload   = errors.New(ErrMsgMalformedPayload)
	ErrUnsupportedVersion = errors.New(ErrMsgUnsupportedVersion)
	ErrNotShareable       = errors.New(ErrMsgNotShareable)
	ErrNoCodeFound        = errors.New(ErrMsgNoCodeFound)

	ErrCharacterNotFound = errors.New(ErrMsgCharacterNotFound)
	ErrCharacterExists   = errors.New(ErrMsgCharacterExists)
	ErrWeaponNotFound    = errors.New(ErrMsgWeaponNotFound)
	ErrLootSlotEmpty     = errors.New(ErrMsgLootSlotEmpty)
	ErrInvalidAmount     = errors.New(ErrMsgInvalidAmount)
	ErrInvalidPatch      = errors.New(ErrMsgInvalidPatch)
	ErrInvalidName       = errors.New(ErrMsgInvalidName)

	ErrStorageUnavailable = errors.New(ErrMsgStorageUnavailable)

	ErrScanStopped = errors.New(ErrMsgScanStopped)
)

// IsShareFailure reports whether err is one of the user-recoverable share codec failures
func IsShareFailure(err error) bool {
	return errors.Is(err, ErrUnmappableValue) ||
		errors.Is(err, ErrMalformedPayload) ||
		errors.Is(err, ErrUnsupportedVersion) ||
		errors.Is(err, ErrNotShareable) ||
		errors.Is(err, ErrNoCodeFound)
}
