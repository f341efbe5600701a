package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/osse101/armory/internal/character"
	"github.com/osse101/armory/internal/domain"
	"github.com/osse101/armory/internal/logger"
)

// CreateCharacterRequest is the body of POST /characters
type CreateCharacterRequest struct {
	Name string `json:"name" validate:"required,charname"`
}

// AmountRequest is the body of the damage and heal endpoints
type AmountRequest struct {
	Amount int `json:"amount" validate:"min=1,max=1000000"`
}

// CharacterListResponse lists stored character names
type CharacterListResponse struct {
	Names []string `json:"names"`
}

// CharacterHandlers serves the character sheet endpoints
type CharacterHandlers struct {
	svc character.Service
}

// NewCharacterHandlers creates the character endpoint handlers
func NewCharacterHandlers(svc character.Service) *CharacterHandlers {
	return &CharacterHandlers{svc: svc}
}

// HandleCreate creates a new level 1 character
// @Summary Create character
// @Tags characters
// @Accept json
// @Produce json
// @Param request body CreateCharacterRequest true "Character name"
// @Success 201 {object} domain.Character
// @Failure 400 {object} ValidationErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/characters [post]
func (h *CharacterHandlers) HandleCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateCharacterRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create character"); err != nil {
			return
		}

		c, err := h.svc.Create(r.Context(), req.Name)
		if err != nil {
			respondServiceError(w, r, "Create character", err)
			return
		}

		logger.FromContext(r.Context()).Info(LogMsgCharacterCreated, "name", c.Name)
		respondJSON(w, http.StatusCreated, c)
	}
}

// HandleList lists stored character names
// @Summary List characters
// @Tags characters
// @Produce json
// @Success 200 {object} CharacterListResponse
// @Router /api/v1/characters [get]
func (h *CharacterHandlers) HandleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names, err := h.svc.List(r.Context())
		if err != nil {
			respondServiceError(w, r, "List characters", err)
			return
		}
		if names == nil {
			names = []string{}
		}
		respondJSON(w, http.StatusOK, CharacterListResponse{Names: names})
	}
}

// HandleGet returns a character sheet
// @Summary Get character
// @Tags characters
// @Produce json
// @Param name path string true "Character name"
// @Success 200 {object} domain.Character
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/characters/{name} [get]
func (h *CharacterHandlers) HandleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := h.svc.Get(r.Context(), characterName(r))
		if err != nil {
			respondServiceError(w, r, "Get character", err)
			return
		}
		respondJSON(w, http.StatusOK, c)
	}
}

// HandlePatch applies a JSON merge patch to the editable fields
// @Summary Update character
// @Description Applies an RFC 7396 merge patch. Only avatar, skills, hp and shield may change.
// @Tags characters
// @Accept json
// @Produce json
// @Param name path string true "Character name"
// @Success 200 {object} domain.Character
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/characters/{name} [patch]
func (h *CharacterHandlers) HandlePatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			logger.FromContext(r.Context()).Warn(LogMsgDecodeFailed, "action", "Patch character", "error", err)
			respondDecodeError(w, err)
			return
		}

		c, err := h.svc.Patch(r.Context(), characterName(r), body)
		if err != nil {
			respondServiceError(w, r, "Patch character", err)
			return
		}
		respondJSON(w, http.StatusOK, c)
	}
}

// HandleDelete removes a character
// @Summary Delete character
// @Tags characters
// @Produce json
// @Param name path string true "Character name"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/characters/{name} [delete]
func (h *CharacterHandlers) HandleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := characterName(r)
		if err := h.svc.Delete(r.Context(), name); err != nil {
			respondServiceError(w, r, "Delete character", err)
			return
		}

		logger.FromContext(r.Context()).Info(LogMsgCharacterDeleted, "name", name)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgCharacterDeleted})
	}
}

// HandleDamage applies damage, shield first
// @Summary Take damage
// @Tags combat
// @Accept json
// @Produce json
// @Param name path string true "Character name"
// @Param request body AmountRequest true "Damage amount"
// @Success 200 {object} domain.Character
// @Router /api/v1/characters/{name}/damage [post]
func (h *CharacterHandlers) HandleDamage() http.HandlerFunc {
	return h.amountAction("Take damage", h.svc.TakeDamage)
}

// HandleHeal restores hit points up to the maximum
// @Summary Heal
// @Tags combat
// @Accept json
// @Produce json
// @Param name path string true "Character name"
// @Param request body AmountRequest true "Heal amount"
// @Success 200 {object} domain.Character
// @Router /api/v1/characters/{name}/heal [post]
func (h *CharacterHandlers) HandleHeal() http.HandlerFunc {
	return h.amountAction("Heal", h.svc.Heal)
}

// HandleKill records a kill and reports whether the character leveled up
// @Summary Record kill
// @Tags combat
// @Produce json
// @Param name path string true "Character name"
// @Success 200 {object} character.KillResult
// @Router /api/v1/characters/{name}/kill [post]
func (h *CharacterHandlers) HandleKill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := h.svc.RecordKill(r.Context(), characterName(r))
		if err != nil {
			respondServiceError(w, r, "Record kill", err)
			return
		}
		respondJSON(w, http.StatusOK, res)
	}
}

func (h *CharacterHandlers) amountAction(opName string, action func(ctx context.Context, name string, amount int) (*domain.Character, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AmountRequest
		if err := DecodeAndValidateRequest(r, w, &req, opName); err != nil {
			return
		}

		c, err := action(r.Context(), characterName(r), req.Amount)
		if err != nil {
			respondServiceError(w, r, opName, err)
			return
		}
		respondJSON(w, http.StatusOK, c)
	}
}
