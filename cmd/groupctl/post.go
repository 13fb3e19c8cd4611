package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tos-network/groupdag/group"
)

var commandPost = &cli.Command{
	Name:      "post",
	Usage:     "sign and store a post operation",
	ArgsUsage: "<message>",
	Flags:     []cli.Flag{keyfileFlag, datadirFlag, predsFlag},
	Action: func(ctx *cli.Context) error {
		message := ctx.Args().First()
		if message == "" {
			return fmt.Errorf("post requires a message")
		}
		sk, err := loadKey(ctx.String(keyfileFlag.Name))
		if err != nil {
			return fmt.Errorf("loading key: %w", err)
		}
		raw, err := group.PostOp(sk, message, splitPreds(ctx.String(predsFlag.Name)))
		if err != nil {
			return err
		}
		return appendAndPrint(ctx, raw)
	},
}
