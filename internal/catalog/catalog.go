package catalog

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/osse101/armory/internal/domain"
)

// Catalog is the immutable set of weapon classes and rarity tiers.
// It is built once at startup and shared read-only by the loot generator,
// the share codec and the HTTP layer.
type Catalog struct {
	classes    map[string]domain.WeaponClass // folded class name -> class
	classNames []string                      // canonical names, sorted
	typeClass  map[string]string             // folded type name -> canonical class name
	typeNames  map[string]string             // folded type name -> canonical type name

	rarities   []domain.Rarity
	rarityRank map[string]int // folded rarity name -> rank
}

// fold normalizes a lookup key. A Caser is stateful, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// New validates the classes and rarities and builds a Catalog from them.
// Rarities must be ordered common to legendary.
func New(classes []domain.WeaponClass, rarities []domain.Rarity) (*Catalog, error) {
	if len(classes) == 0 {
		return nil, fmt.Errorf(ErrFmtNoClasses, domain.ErrInvalidCatalog)
	}

	c := &Catalog{
		classes:    make(map[string]domain.WeaponClass, len(classes)),
		classNames: make([]string, 0, len(classes)),
		typeClass:  make(map[string]string),
		typeNames:  make(map[string]string),
		rarityRank: make(map[string]int, len(rarities)),
	}

	for i := range classes {
		if err := c.addClass(classes[i]); err != nil {
			return nil, err
		}
	}
	slices.Sort(c.classNames)

	if err := c.setRarities(rarities); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Catalog) addClass(class domain.WeaponClass) error {
	name := strings.TrimSpace(class.Name)
	if name == "" {
		return fmt.Errorf(ErrFmtEmptyClassName, domain.ErrInvalidCatalog)
	}
	key := fold(name)
	if _, exists := c.classes[key]; exists {
		return fmt.Errorf(ErrFmtDuplicateClass, domain.ErrInvalidCatalog, name)
	}
	if len(class.Types) == 0 {
		return fmt.Errorf(ErrFmtClassNoTypes, domain.ErrInvalidCatalog, name)
	}
	if class.BaseRange <= 0 {
		return fmt.Errorf(ErrFmtBadBaseRange, domain.ErrInvalidCatalog, name)
	}
	if class.StatModifiers.Damage <= 0 || class.StatModifiers.Accuracy <= 0 {
		return fmt.Errorf(ErrFmtBadModifiers, domain.ErrInvalidCatalog, name)
	}

	class.Name = name
	class.Types = slices.Clone(class.Types)
	for _, typeName := range class.Types {
		typeKey := fold(typeName)
		if typeKey == "" {
			return fmt.Errorf(ErrFmtEmptyTypeName, domain.ErrInvalidCatalog, name)
		}
		if owner, taken := c.typeClass[typeKey]; taken {
			return fmt.Errorf(ErrFmtDuplicateType, domain.ErrInvalidCatalog, typeName, owner, name)
		}
		c.typeClass[typeKey] = name
		c.typeNames[typeKey] = typeName
	}

	c.classes[key] = class
	c.classNames = append(c.classNames, name)
	return nil
}

func (c *Catalog) setRarities(rarities []domain.Rarity) error {
	if len(rarities) != domain.RarityCount {
		return fmt.Errorf(ErrFmtRarityCount, domain.ErrInvalidCatalog, domain.RarityCount, len(rarities))
	}

	c.rarities = make([]domain.Rarity, len(rarities))
	for rank, r := range rarities {
		r.Name = strings.TrimSpace(r.Name)
		if r.Name == "" {
			return fmt.Errorf(ErrFmtEmptyRarityName, domain.ErrInvalidCatalog, rank)
		}
		key := fold(r.Name)
		if _, exists := c.rarityRank[key]; exists {
			return fmt.Errorf(ErrFmtDuplicateRarity, domain.ErrInvalidCatalog, r.Name)
		}
		if r.StatBonus < 1.0 {
			return fmt.Errorf(ErrFmtRarityBonusTooLow, domain.ErrInvalidCatalog, r.Name)
		}
		if rank > 0 && r.StatBonus < c.rarities[rank-1].StatBonus {
			return fmt.Errorf(ErrFmtRarityNotMonotonic, domain.ErrInvalidCatalog, r.Name)
		}
		c.rarities[rank] = r
		c.rarityRank[key] = rank
	}
	return nil
}

// ClassNames returns the class names in sorted order
func (c *Catalog) ClassNames() []string {
	return slices.Clone(c.classNames)
}

// Classes returns every class in ClassNames order
func (c *Catalog) Classes() []domain.WeaponClass {
	out := make([]domain.WeaponClass, 0, len(c.classNames))
	for _, name := range c.classNames {
		class, _ := c.Class(name)
		out = append(out, class)
	}
	return out
}

// Class looks up a class by name, case-insensitively
func (c *Catalog) Class(name string) (domain.WeaponClass, bool) {
	class, ok := c.classes[fold(name)]
	if !ok {
		return domain.WeaponClass{}, false
	}
	class.Types = slices.Clone(class.Types)
	return class, true
}

// ClassOfType returns the class owning typeName and the type's canonical spelling
func (c *Catalog) ClassOfType(typeName string) (domain.WeaponClass, string, bool) {
	key := fold(typeName)
	className, ok := c.typeClass[key]
	if !ok {
		return domain.WeaponClass{}, "", false
	}
	class, _ := c.Class(className)
	return class, c.typeNames[key], true
}

// IsShieldClass reports whether the named class is a shield class
func (c *Catalog) IsShieldClass(name string) bool {
	class, ok := c.classes[fold(name)]
	return ok && class.IsShield()
}

// Rarities returns the rarity tiers ordered by rank
func (c *Catalog) Rarities() []domain.Rarity {
	return slices.Clone(c.rarities)
}

// Rarity returns the rarity at the given rank
func (c *Catalog) Rarity(rank int) (domain.Rarity, bool) {
	if rank < 0 || rank >= len(c.rarities) {
		return domain.Rarity{}, false
	}
	return c.rarities[rank], true
}

// RarityByName returns the rarity with the given name and its rank
func (c *Catalog) RarityByName(name string) (domain.Rarity, int, bool) {
	rank, ok := c.rarityRank[fold(name)]
	if !ok {
		return domain.Rarity{}, -1, false
	}
	return c.rarities[rank], rank, true
}

// TypeNames returns every type name across the catalog, grouped by class in ClassNames order
func (c *Catalog) TypeNames() []string {
	var out []string
	for _, name := range c.classNames {
		out = append(out, c.classes[fold(name)].Types...)
	}
	return out
}
