package main

import (
	"context"
	"fmt"

	"github.com/osse101/armory/internal/catalog"
	"github.com/osse101/armory/internal/config"
)

type CheckCatalogCommand struct{}

func (c *CheckCatalogCommand) Name() string {
	return "check-catalog"
}

func (c *CheckCatalogCommand) Description() string {
	return "Load and validate the weapon catalog files [classes-path rarities-path]"
}

func (c *CheckCatalogCommand) Run(args []string) error {
	classesPath := config.ConfigPathWeaponClasses
	raritiesPath := config.ConfigPathRarities
	if len(args) >= 2 {
		classesPath, raritiesPath = args[0], args[1]
	}

	PrintHeader("Catalog Check")
	PrintInfo("classes:  %s", classesPath)
	PrintInfo("rarities: %s", raritiesPath)

	cat, err := catalog.Load(context.Background(), classesPath, raritiesPath)
	if err != nil {
		return err
	}

	for _, class := range cat.Classes() {
		fmt.Printf("  %-12s %-8s %d types\n", class.Name, class.Kind, len(class.Types))
	}
	for rank, rarity := range cat.Rarities() {
		fmt.Printf("  %d %-12s bonus x%.2f\n", rank, rarity.Name, rarity.StatBonus)
	}

	PrintSuccess("Catalog valid: %d classes, %d types, %d rarities", len(cat.Classes()), len(cat.TypeNames()), len(cat.Rarities()))
	return nil
}
