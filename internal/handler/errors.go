package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgRequestTooLarge       = "Request body too large"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidQueryParam = "Invalid %s query parameter"

	// Character operation error messages
	ErrMsgCreateCharacterFailed = "Failed to create character"
	ErrMsgUpgradeFailed         = "Failed to upgrade connection"
	ErrMsgRenderQRFailed        = "Failed to render QR code"
	ErrMsgMissingImage          = "An image upload is required"
)

// Success messages for API responses
const (
	MsgCharacterDeleted = "Character deleted"
	MsgLootDiscarded    = "Loot discarded"
)

// Log messages
const (
	LogMsgRequestDecoded     = "Request decoded"
	LogMsgDecodeFailed       = "Failed to decode request"
	LogMsgServiceError       = "Service call failed"
	LogMsgReadinessFailed    = "Readiness check failed"
	LogMsgScanUpgradeFailed  = "Failed to upgrade scan connection"
	LogMsgScanSessionEnded   = "Scan session ended"
	LogMsgCharacterCreated   = "Character created"
	LogMsgCharacterDeleted   = "Character deleted"
	LogMsgEncodeJSONFailed   = "Failed to encode JSON response"
	LogMsgWriteBufferFailed  = "Failed to write response buffer"
	LogMsgImageUploadInvalid = "Invalid image upload"
)

// Request limits
const (
	MaxPayloadLength = 256
	MaxAmount        = 1_000_000
	ImageFormField   = "image"
	ContentTypePNG   = "image/png"
)
