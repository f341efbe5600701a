package handler

import (
	"net/http"
)

// HandleGenerateLoot rolls a weapon into the character's loot slot
// @Summary Generate loot
// @Description Rolls a weapon for the character's level, replacing any pending loot
// @Tags loot
// @Produce json
// @Param name path string true "Character name"
// @Success 201 {object} domain.Weapon
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/characters/{name}/loot [post]
func (h *CharacterHandlers) HandleGenerateLoot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weapon, err := h.svc.GenerateLoot(r.Context(), characterName(r))
		if err != nil {
			respondServiceError(w, r, "Generate loot", err)
			return
		}
		respondJSON(w, http.StatusCreated, weapon)
	}
}

// HandlePeekLoot returns the pending loot without taking it
// @Summary Pending loot
// @Tags loot
// @Produce json
// @Param name path string true "Character name"
// @Success 200 {object} domain.Weapon
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/characters/{name}/loot [get]
func (h *CharacterHandlers) HandlePeekLoot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weapon, err := h.svc.PeekLoot(r.Context(), characterName(r))
		if err != nil {
			respondServiceError(w, r, "Peek loot", err)
			return
		}
		respondJSON(w, http.StatusOK, weapon)
	}
}

// HandleAcceptLoot moves the pending loot into the inventory
// @Summary Accept loot
// @Tags loot
// @Produce json
// @Param name path string true "Character name"
// @Success 200 {object} domain.Character
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/characters/{name}/loot/accept [post]
func (h *CharacterHandlers) HandleAcceptLoot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := h.svc.AcceptLoot(r.Context(), characterName(r))
		if err != nil {
			respondServiceError(w, r, "Accept loot", err)
			return
		}
		respondJSON(w, http.StatusOK, c)
	}
}

// HandleDiscardLoot empties the loot slot
// @Summary Discard loot
// @Tags loot
// @Produce json
// @Param name path string true "Character name"
// @Success 200 {object} SuccessResponse
// @Router /api/v1/characters/{name}/loot [delete]
func (h *CharacterHandlers) HandleDiscardLoot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.svc.DiscardLoot(r.Context(), characterName(r)); err != nil {
			respondServiceError(w, r, "Discard loot", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgLootDiscarded})
	}
}
