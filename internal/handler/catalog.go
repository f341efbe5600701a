package handler

import (
	"net/http"

	"github.com/osse101/armory/internal/domain"
)

// CatalogReader exposes the loaded weapon classes and rarity tiers
type CatalogReader interface {
	Classes() []domain.WeaponClass
	Rarities() []domain.Rarity
}

// ClassView is a weapon class as served to clients
type ClassView struct {
	domain.WeaponClass
	Kind string `json:"kind"`
}

// RarityView is a rarity tier with its rank, 0 (common) through 4 (legendary)
type RarityView struct {
	domain.Rarity
	Rank int `json:"rank"`
}

// CatalogResponse lists every class and rarity
type CatalogResponse struct {
	Classes  []ClassView  `json:"classes"`
	Rarities []RarityView `json:"rarities"`
}

// HandleGetCatalog returns the weapon classes and rarity tiers.
// The catalog is immutable, so the response is built once.
// @Summary Weapon catalog
// @Tags catalog
// @Produce json
// @Success 200 {object} CatalogResponse
// @Router /api/v1/catalog [get]
func HandleGetCatalog(cat CatalogReader) http.HandlerFunc {
	classes := cat.Classes()
	rarities := cat.Rarities()

	resp := CatalogResponse{
		Classes:  make([]ClassView, 0, len(classes)),
		Rarities: make([]RarityView, 0, len(rarities)),
	}
	for _, c := range classes {
		resp.Classes = append(resp.Classes, ClassView{WeaponClass: c, Kind: c.Kind.String()})
	}
	for rank, r := range rarities {
		resp.Rarities = append(resp.Rarities, RarityView{Rarity: r, Rank: rank})
	}

	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, resp)
	}
}
