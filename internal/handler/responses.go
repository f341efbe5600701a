package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/osse101/armory/internal/domain"
	"github.com/osse101/armory/internal/logger"
	"github.com/osse101/armory/internal/share"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload any) {
	buf := getBuffer()
	defer putBuffer(buf)

	// Encode before writing headers so a failure can still become a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		logger.Error(LogMsgEncodeJSONFailed, "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error(LogMsgWriteBufferFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs err and writes the mapped status and user message
func respondServiceError(w http.ResponseWriter, r *http.Request, action string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)

	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgServiceError, "action", action, "error", err)
	} else {
		log.Warn(LogMsgServiceError, "action", action, "error", err, "status", status)
	}

	respondError(w, status, msg)
}

// respondReceiveError reports every decode failure with the same retry message,
// so a user scanning or pasting a code is never shown codec internals.
func respondReceiveError(w http.ResponseWriter, r *http.Request, action string, err error) {
	if domain.IsShareFailure(err) {
		logger.FromContext(r.Context()).Warn(LogMsgServiceError, "action", action, "error", err, "reason", share.FailureReason(err))
		respondError(w, http.StatusUnprocessableEntity, ErrMsgInvalidCodeError)
		return
	}
	respondServiceError(w, r, action, err)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnavailableError   = "Server is temporarily unavailable. Please try again later."
	ErrMsgTooManyRequests    = "Too many requests. Please try again later."

	ErrMsgCharacterNotFoundError = "Character not found"
	ErrMsgCharacterExistsError   = "A character with that name already exists"
	ErrMsgWeaponNotFoundError    = "Weapon not found"
	ErrMsgLootSlotEmptyError     = "No loot is waiting"
	ErrMsgInvalidAmountError     = "Amount must be positive"
	ErrMsgInvalidLevelError      = "Invalid character level"

	// Decode failures all read the same to the user; the scanner shows it per frame
	ErrMsgInvalidCodeError  = "invalid code, try again"
	ErrMsgNotShareableError = "Received weapons cannot be shared again"
)

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and messages
// users can act upon.
func mapServiceErrorToUserMessage(err error) (int, string) {
	var unmappable *share.UnmappableValueError

	switch {
	case err == nil:
		return http.StatusInternalServerError, ErrMsgGenericServerError
	case errors.Is(err, domain.ErrNotReady), errors.Is(err, domain.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, ErrMsgUnavailableError
	case errors.As(err, &unmappable):
		return http.StatusUnprocessableEntity, unmappable.Error()
	case errors.Is(err, domain.ErrNotShareable):
		return http.StatusUnprocessableEntity, ErrMsgNotShareableError
	case errors.Is(err, domain.ErrMalformedPayload),
		errors.Is(err, domain.ErrUnsupportedVersion),
		errors.Is(err, domain.ErrNoCodeFound),
		errors.Is(err, domain.ErrUnmappableValue):
		return http.StatusUnprocessableEntity, ErrMsgInvalidCodeError
	case errors.Is(err, domain.ErrCharacterNotFound):
		return http.StatusNotFound, ErrMsgCharacterNotFoundError
	case errors.Is(err, domain.ErrWeaponNotFound):
		return http.StatusNotFound, ErrMsgWeaponNotFoundError
	case errors.Is(err, domain.ErrLootSlotEmpty):
		return http.StatusNotFound, ErrMsgLootSlotEmptyError
	case errors.Is(err, domain.ErrCharacterExists):
		return http.StatusConflict, ErrMsgCharacterExistsError
	case errors.Is(err, domain.ErrInvalidName):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, ErrMsgInvalidAmountError
	case errors.Is(err, domain.ErrInvalidPatch):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidLevel):
		return http.StatusBadRequest, ErrMsgInvalidLevelError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
