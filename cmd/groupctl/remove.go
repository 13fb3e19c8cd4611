package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tos-network/groupdag/group"
)

var commandRemove = &cli.Command{
	Name:      "remove",
	Usage:     "sign and store a remove operation",
	ArgsUsage: "<removed-key-hex>",
	Flags:     []cli.Flag{keyfileFlag, datadirFlag, predsFlag},
	Action: func(ctx *cli.Context) error {
		removedKey := ctx.Args().First()
		if removedKey == "" {
			return fmt.Errorf("remove requires the removed member's hex public key")
		}
		sk, err := loadKey(ctx.String(keyfileFlag.Name))
		if err != nil {
			return fmt.Errorf("loading key: %w", err)
		}
		raw, err := group.RemoveOp(sk, removedKey, splitPreds(ctx.String(predsFlag.Name)))
		if err != nil {
			return err
		}
		return appendAndPrint(ctx, raw)
	},
}
