package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "barscan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFileAppliesValues(t *testing.T) {
	path := writeConfigFile(t, `
log_level: debug
detection:
  cluster_eps: 0.2
  cluster_min_samples: 7
server:
  port: 9000
`)

	cfg, err := NewLoaderWith(viper.New()).LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.InDelta(t, 0.2, cfg.Detection.ClusterEps, 1e-9)
	assert.Equal(t, 7, cfg.Detection.ClusterMinSamples)
	assert.Equal(t, 9000, cfg.Server.Port)
	// Untouched keys keep their defaults.
	assert.Equal(t, DefaultConfig().Detection.MinBlobArea, cfg.Detection.MinBlobArea)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := NewLoaderWith(viper.New()).LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestLoadFileRejectsInvalidConfig(t *testing.T) {
	path := writeConfigFile(t, "detection:\n  cluster_eps: -1\n")

	_, err := NewLoaderWith(viper.New()).LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cluster_eps")
}

func TestLoadUsesDefaultsWithoutFile(t *testing.T) {
	cfg, err := NewLoaderWith(viper.New()).Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), *cfg)
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("BARSCAN_DETECTION_CLUSTER_MIN_SAMPLES", "9")
	t.Setenv("BARSCAN_LOG_LEVEL", "warn")

	cfg, err := NewLoaderWith(viper.New()).Load()
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Detection.ClusterMinSamples)
	assert.Equal(t, "warn", cfg.LogLevel)
}
