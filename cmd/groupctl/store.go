package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tos-network/groupdag/envelope"
	"github.com/tos-network/groupdag/log"
	"github.com/tos-network/groupdag/store"
)

// appendAndPrint durably appends raw to the operation log at the
// command's --datadir and prints its content hash.
func appendAndPrint(ctx *cli.Context, raw []byte) error {
	s, err := store.Open(ctx.String(datadirFlag.Name))
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer s.Close()

	seq, err := s.Append(raw)
	if err != nil {
		return err
	}
	hash := envelope.Hash(raw)
	log.Info("appended operation", "hash", hash, "seq", seq)
	fmt.Fprintln(ctx.App.Writer, hash)
	return nil
}
