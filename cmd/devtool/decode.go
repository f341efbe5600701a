package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/osse101/armory/internal/catalog"
	"github.com/osse101/armory/internal/config"
	"github.com/osse101/armory/internal/share"
)

type DecodeCommand struct{}

func (c *DecodeCommand) Name() string {
	return "decode"
}

func (c *DecodeCommand) Description() string {
	return "Decode a share payload, or a QR image with --image <file>"
}

func (c *DecodeCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: decode <payload> | decode --image <file>")
	}

	payload := args[0]
	if args[0] == "--image" {
		if len(args) < 2 {
			return fmt.Errorf("image path required")
		}
		data, err := os.ReadFile(args[1])
		if err != nil {
			return err
		}
		payload, err = share.ScanBytes(data)
		if err != nil {
			return err
		}
		PrintInfo("Scanned payload: %s", payload)
	}

	cat, err := catalog.Load(context.Background(), config.ConfigPathWeaponClasses, config.ConfigPathRarities)
	if err != nil {
		return err
	}
	codec, err := share.NewCodec(cat)
	if err != nil {
		return err
	}

	weapon, err := codec.Decode(payload)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(weapon, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	PrintSuccess("Payload decodes to %s", weapon.Name)
	return nil
}
