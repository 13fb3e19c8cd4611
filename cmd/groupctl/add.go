package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tos-network/groupdag/group"
)

var commandAdd = &cli.Command{
	Name:      "add",
	Usage:     "sign and store an add operation",
	ArgsUsage: "<added-key-hex>",
	Flags:     []cli.Flag{keyfileFlag, datadirFlag, predsFlag},
	Action: func(ctx *cli.Context) error {
		addedKey := ctx.Args().First()
		if addedKey == "" {
			return fmt.Errorf("add requires the added member's hex public key")
		}
		sk, err := loadKey(ctx.String(keyfileFlag.Name))
		if err != nil {
			return fmt.Errorf("loading key: %w", err)
		}
		raw, err := group.AddOp(sk, addedKey, splitPreds(ctx.String(predsFlag.Name)))
		if err != nil {
			return err
		}
		return appendAndPrint(ctx, raw)
	},
}
