package loot

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/armory/internal/catalog"
	"github.com/osse101/armory/internal/domain"
	"github.com/osse101/armory/internal/logger"
	"github.com/osse101/armory/internal/metrics"
)

// Generator derives weapons from a catalog and a pseudo-random source
type Generator struct {
	catalog *catalog.Catalog

	mu  sync.Mutex // guards rnd; math/rand sources are not goroutine safe
	rnd Random

	now   func() time.Time
	newID func() (uuid.UUID, error)
}

// NewGenerator creates a generator over cat. A nil rnd uses a PCG source
// seeded from crypto/rand.
func NewGenerator(cat *catalog.Catalog, rnd Random) *Generator {
	if rnd == nil {
		rnd = NewRandom()
	}
	return &Generator{
		catalog: cat,
		rnd:     rnd,
		now:     time.Now,
		newID:   uuid.NewV7,
	}
}

// rolls holds every random draw for one weapon, in draw order
type rolls struct {
	class        domain.WeaponClass
	typeName     string
	level        int
	rarityRank   int
	rangeRoll    float64
	damageRoll   float64
	accuracyRoll float64
}

// Generate produces one weapon for a character of the given level.
// The weapon is transient: nothing is stored.
func (g *Generator) Generate(ctx context.Context, characterLevel int) (*domain.Weapon, error) {
	if g == nil || g.catalog == nil {
		return nil, domain.ErrNotReady
	}
	if characterLevel < 1 || characterLevel > domain.MaxLevel {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidLevel, characterLevel)
	}

	r := g.roll(characterLevel)

	rarity, ok := g.catalog.Rarity(r.rarityRank)
	if !ok {
		return nil, fmt.Errorf("%w: rarity rank %d", domain.ErrInvalidCatalog, r.rarityRank)
	}

	id, err := g.newID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate weapon id: %w", err)
	}

	w := buildWeapon(r, rarity)
	w.ID = id.String()
	w.CreatedAt = g.now().UTC()

	metrics.LootGenerated.WithLabelValues(w.Rarity, w.WeaponClass).Inc()
	logger.FromContext(ctx).Debug(LogMsgWeaponGenerated,
		LogFieldWeaponID, w.ID,
		LogFieldClass, w.WeaponClass,
		LogFieldRarity, w.Rarity,
		LogFieldLevel, w.Level)

	return w, nil
}

// roll draws class, type, level, rarity and stat rolls under the source lock
func (g *Generator) roll(characterLevel int) rolls {
	g.mu.Lock()
	defer g.mu.Unlock()

	names := g.catalog.ClassNames()
	class, _ := g.catalog.Class(names[g.rnd.IntN(len(names))])

	var r rolls
	r.class = class
	r.typeName = class.Types[g.rnd.IntN(len(class.Types))]

	low := max(1, characterLevel-LevelSpreadBelow)
	high := characterLevel + LevelSpreadAbove
	r.level = low + g.rnd.IntN(high-low+1)

	r.rarityRank = PickRarity(WeightsForLevel(r.level), g.rnd.Float64())

	r.rangeRoll = g.rnd.Float64()
	r.damageRoll = uniform(g.rnd, DamageRollMin, DamageRollMax)
	r.accuracyRoll = uniform(g.rnd, AccuracyRollMin, AccuracyRollMax)
	return r
}

// LevelMultiplier returns the damage scale for a weapon level
func LevelMultiplier(weaponLevel int) float64 {
	return 1 + float64(weaponLevel-1)*LevelMultiplierStep
}

// buildWeapon turns the rolls into final stats. Base stats are floored, then
// the rarity bonus is applied and floored again.
func buildWeapon(r rolls, rarity domain.Rarity) *domain.Weapon {
	mods := r.class.StatModifiers

	jitter := r.class.BaseRange * RangeJitter * (2*r.rangeRoll - 1)
	baseRange := max(1, int(math.Floor(r.class.BaseRange+jitter)))
	baseDamage := int(math.Floor(r.damageRoll * LevelMultiplier(r.level) * mods.Damage))
	baseAccuracy := int(math.Floor(r.accuracyRoll * mods.Accuracy))

	w := &domain.Weapon{
		Name:        domain.DisplayName(rarity.Name, r.typeName),
		Type:        r.typeName,
		WeaponClass: r.class.Name,
		Rarity:      rarity.Name,
		Color:       rarity.Color,
		Level:       r.level,
		Damage:      applyBonus(baseDamage, rarity.StatBonus),
		Accuracy:    min(MaxAccuracy, applyBonus(baseAccuracy, rarity.StatBonus)),
		Range:       max(1, applyBonus(baseRange, rarity.StatBonus)),
	}

	switch r.class.Kind {
	case domain.ClassShield:
		// Shield points scale from the pre-rarity damage roll
		w.ShieldPoints = max(1, int(math.Floor(float64(baseDamage)*rarity.StatBonus*ShieldPointsFactor)))
	case domain.ClassStandard:
		w.ShieldPoints = 0
	}

	return w
}

func applyBonus(stat int, bonus float64) int {
	return int(math.Floor(float64(stat) * bonus))
}
