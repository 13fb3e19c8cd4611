package main

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tos-network/groupdag/group"
	"github.com/tos-network/groupdag/log"
	"github.com/tos-network/groupdag/metrics"
	"github.com/tos-network/groupdag/store"
)

var commandInterpret = &cli.Command{
	Name:  "interpret",
	Usage: "replay the operation log and print the resulting membership",
	Flags: []cli.Flag{datadirFlag, configFlag},
	Action: func(ctx *cli.Context) error {
		cfg, err := loadConfig(ctx)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		s, err := store.Open(ctx.String(datadirFlag.Name))
		if err != nil {
			return err
		}
		defer s.Close()

		raws, err := s.All()
		if err != nil {
			return err
		}

		if cfg.Metrics.Enabled {
			metrics.Default.Counter("interpret.calls").Inc(1)
		}
		m, err := group.Interpret(raws)
		if err != nil {
			return err
		}

		log.Info("interpreted operation log",
			"ops", len(raws),
			"members", m.Members.Cardinality(),
			"dropped", m.Dropped.Cardinality(),
		)
		if cfg.Metrics.Enabled {
			log.Debug("metrics snapshot", "snapshot", metrics.Default.Snapshot())
		}

		out := struct {
			Members       []interface{} `json:"members"`
			ValidMessages []interface{} `json:"valid_messages"`
			Dropped       []interface{} `json:"dropped"`
		}{
			Members:       m.Members.ToSlice(),
			ValidMessages: m.ValidMessages.ToSlice(),
			Dropped:       m.Dropped.ToSlice(),
		}

		enc := json.NewEncoder(ctx.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}
