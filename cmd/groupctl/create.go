package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tos-network/groupdag/group"
)

var commandCreate = &cli.Command{
	Name:  "create",
	Usage: "sign and store a new create operation, founding a group",
	Flags: []cli.Flag{keyfileFlag, datadirFlag},
	Action: func(ctx *cli.Context) error {
		sk, err := loadKey(ctx.String(keyfileFlag.Name))
		if err != nil {
			return fmt.Errorf("loading key: %w", err)
		}
		raw, err := group.CreateOp(sk)
		if err != nil {
			return err
		}
		return appendAndPrint(ctx, raw)
	},
}
