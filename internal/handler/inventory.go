package handler

import (
	"context"
	"net/http"

	"github.com/osse101/armory/internal/domain"
)

// HandleEquip equips an inventory weapon
// @Summary Equip weapon
// @Description Equips the weapon, unequipping any other weapon of the same kind. Shields refill the shield pool.
// @Tags inventory
// @Produce json
// @Param name path string true "Character name"
// @Param id path string true "Weapon id"
// @Success 200 {object} domain.Character
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/characters/{name}/weapons/{id}/equip [post]
func (h *CharacterHandlers) HandleEquip() http.HandlerFunc {
	return h.weaponAction("Equip weapon", h.svc.Equip)
}

// HandleUnequip unequips an inventory weapon
// @Summary Unequip weapon
// @Tags inventory
// @Produce json
// @Param name path string true "Character name"
// @Param id path string true "Weapon id"
// @Success 200 {object} domain.Character
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/characters/{name}/weapons/{id}/unequip [post]
func (h *CharacterHandlers) HandleUnequip() http.HandlerFunc {
	return h.weaponAction("Unequip weapon", h.svc.Unequip)
}

// HandleRemoveWeapon drops a weapon from the inventory
// @Summary Remove weapon
// @Tags inventory
// @Produce json
// @Param name path string true "Character name"
// @Param id path string true "Weapon id"
// @Success 200 {object} domain.Character
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/characters/{name}/weapons/{id} [delete]
func (h *CharacterHandlers) HandleRemoveWeapon() http.HandlerFunc {
	return h.weaponAction("Remove weapon", h.svc.RemoveWeapon)
}

func (h *CharacterHandlers) weaponAction(opName string, action func(ctx context.Context, name, weaponID string) (*domain.Character, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := action(r.Context(), characterName(r), weaponID(r))
		if err != nil {
			respondServiceError(w, r, opName, err)
			return
		}
		respondJSON(w, http.StatusOK, c)
	}
}
