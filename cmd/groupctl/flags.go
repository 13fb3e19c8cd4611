package main

import (
	"strings"

	"github.com/urfave/cli/v2"
)

var (
	keyfileFlag = &cli.StringFlag{
		Name:  "keyfile",
		Usage: "file containing the hex-encoded signing key",
		Value: "groupdag.key",
	}
	datadirFlag = &cli.StringFlag{
		Name:  "datadir",
		Usage: "directory holding the durable operation log",
		Value: "groupdag-data",
	}
	predsFlag = &cli.StringFlag{
		Name:  "preds",
		Usage: "comma-separated predecessor operation hashes",
	}
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML config file (see package config); unset fields keep DefaultConfig",
	}
)

func splitPreds(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
