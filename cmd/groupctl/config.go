package main

import (
	"errors"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/tos-network/groupdag/config"
)

// loadConfig returns the effective config.Config for ctx: config.DefaultConfig
// if --config is unset or the file doesn't exist, otherwise the decoded file.
func loadConfig(ctx *cli.Context) (config.Config, error) {
	path := ctx.String(configFlag.Name)
	if path == "" {
		return config.DefaultConfig, nil
	}
	cfg, err := config.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return config.DefaultConfig, nil
	}
	return cfg, err
}
