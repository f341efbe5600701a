package main

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	registry := NewRegistry()
	registry.Register(&MigrateCommand{})
	registry.Register(&WaitForDBCommand{})
	registry.Register(&HealthCheckCommand{})
	registry.Register(&CheckCatalogCommand{})
	registry.Register(&DecodeCommand{})

	if err := registry.Dispatch(os.Args[1:]); err != nil {
		PrintError("%v", err)
		if errors.Is(err, ErrUnknownCommand) {
			registry.PrintHelp()
		}
		os.Exit(1)
	}
}
