package loot

import "github.com/osse101/armory/internal/domain"

// RarityWeights are relative odds indexed by rarity rank
type RarityWeights [domain.RarityCount]int

// BaseRarityWeights apply below the first level threshold.
var BaseRarityWeights = RarityWeights{50, 30, 15, 4, 1}

type rarityThreshold struct {
	minLevel int
	weights  RarityWeights
}

// rarityThresholds are ordered from highest level down. The first one a weapon
// level meets replaces the base weights outright; tables never stack.
var rarityThresholds = []rarityThreshold{
	{12, RarityWeights{15, 20, 30, 25, 10}},
	{8, RarityWeights{20, 25, 30, 20, 5}},
	{5, RarityWeights{30, 30, 25, 12, 3}},
	{3, RarityWeights{40, 35, 20, 4, 1}},
}

// WeightsForLevel returns the rarity table keyed by weapon level
func WeightsForLevel(weaponLevel int) RarityWeights {
	for _, t := range rarityThresholds {
		if weaponLevel >= t.minLevel {
			return t.weights
		}
	}
	return BaseRarityWeights
}

// Total returns the sum of all weights
func (w RarityWeights) Total() int {
	total := 0
	for _, weight := range w {
		total += weight
	}
	return total
}

// PickRarity runs a roulette walk over the weights with roll in [0, 1).
// The remainder is compared with <= 0, so a roll landing exactly on a
// boundary goes to the lower rank.
func PickRarity(weights RarityWeights, roll float64) int {
	remainder := roll * float64(weights.Total())
	for rank, weight := range weights {
		if weight <= 0 {
			continue
		}
		remainder -= float64(weight)
		if remainder <= 0 {
			return rank
		}
	}
	return len(weights) - 1
}
