package main

import (
	"encoding/hex"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/tos-network/groupdag/envelope"
	"github.com/tos-network/groupdag/log"
)

var commandKeygen = &cli.Command{
	Name:  "keygen",
	Usage: "generate a new signing key",
	Flags: []cli.Flag{keyfileFlag},
	Action: func(ctx *cli.Context) error {
		pub, sk, err := envelope.GenerateKey()
		if err != nil {
			return err
		}
		path := ctx.String(keyfileFlag.Name)
		if err := os.WriteFile(path, []byte(hex.EncodeToString(sk)), 0o600); err != nil {
			return err
		}
		log.Info("generated signing key", "keyfile", path, "public_key", hex.EncodeToString(pub))
		return nil
	},
}

// loadKey reads the hex-encoded private key written by commandKeygen.
// Key management proper (encryption at rest, key derivation, rotation)
// is out of scope; this is a thin convenience for signing from the CLI.
func loadKey(path string) (envelope.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	raw, err := hex.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, err
	}
	return envelope.PrivateKey(raw), nil
}
