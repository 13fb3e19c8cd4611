// Command groupctl signs, stores, and interprets groupdag operations
// from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var app = &cli.App{
	Name:  "groupctl",
	Usage: "sign, store, and interpret groupdag operations",
	Commands: []*cli.Command{
		commandKeygen,
		commandCreate,
		commandAdd,
		commandRemove,
		commandPost,
		commandInterpret,
	},
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
