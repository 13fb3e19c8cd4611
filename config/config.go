// Package config loads and saves cmd/groupctl's TOML configuration file,
// the same format and library the rest of the repo's lineage uses for
// its node configuration.
package config

import (
	"io"
	"os"
	"reflect"

	"github.com/naoina/toml"

	"github.com/tos-network/groupdag/log"
	"github.com/tos-network/groupdag/metrics"
)

// Config is cmd/groupctl's top-level configuration.
type Config struct {
	// DataDir names a directory for the durable operation-log store
	// (package store). cmd/groupctl does not read it; its commands take
	// the store directory from the --datadir flag.
	DataDir string `toml:",omitempty"`
	// Listen is an address for the gossip transport (package gossip).
	// No package in this module reads it.
	Listen string `toml:",omitempty"`
	// LogLevel is one of CRIT, ERROR, WARN, INFO, DEBUG, TRACE.
	LogLevel string `toml:",omitempty"`

	Metrics metrics.Config `toml:",omitempty"`
}

// DefaultConfig mirrors metrics.DefaultConfig's pattern of a ready-to-use
// zero-config starting point.
var DefaultConfig = Config{
	DataDir:  "groupdag-data",
	Listen:   "127.0.0.1:9391",
	LogLevel: "INFO",
	Metrics:  metrics.DefaultConfig,
}

var tomlSettings = toml.Config{
	NormFieldName: func(typ reflect.Type, key string) string { return key },
	FieldToKey:    func(typ reflect.Type, field string) string { return field },
	MissingField:  func(typ reflect.Type, field string) error { return nil },
}

// Load reads and decodes a TOML config file at path, starting from
// DefaultConfig so unset fields keep their defaults.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses a TOML config document from r.
func Decode(r io.Reader) (Config, error) {
	cfg := DefaultConfig
	if err := tomlSettings.NewDecoder(r).Decode(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes cfg as a TOML document to path.
func Save(path string, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return tomlSettings.NewEncoder(f).Encode(cfg)
}

// ApplyLogLevel wires cfg's configured level into the package-wide
// logger; an unrecognised level selects INFO.
func ApplyLogLevel(cfg Config) {
	switch cfg.LogLevel {
	case "CRIT":
		log.SetLevel(log.LvlCrit)
	case "ERROR":
		log.SetLevel(log.LvlError)
	case "WARN":
		log.SetLevel(log.LvlWarn)
	case "DEBUG":
		log.SetLevel(log.LvlDebug)
	case "TRACE":
		log.SetLevel(log.LvlTrace)
	default:
		log.SetLevel(log.LvlInfo)
	}
}
