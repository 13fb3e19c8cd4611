package config

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeAppliesDefaultsForMissingFields(t *testing.T) {
	cfg, err := Decode(bytes.NewBufferString(`Listen = "0.0.0.0:9000"`))
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:9000", cfg.Listen)
	require.Equal(t, DefaultConfig.DataDir, cfg.DataDir)
	require.Equal(t, DefaultConfig.LogLevel, cfg.LogLevel)
}

func TestSaveThenDecodeRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig
	cfg.DataDir = "/tmp/groupdag"

	require.NoError(t, tomlSettings.NewEncoder(&buf).Encode(cfg))

	decoded, err := Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, "/tmp/groupdag", decoded.DataDir)
}
