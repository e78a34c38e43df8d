package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/codemend/pkg/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "codemend", cfg.Telemetry.Service)
	assert.Empty(t, cfg.Telemetry.OTLPEndpoint)
	assert.Equal(t, 10, cfg.Rewrite.MaxPasses)
}

func TestLoadMissingExplicitPathFails(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
logging:
  level: debug
  format: json
telemetry:
  service: rewriter
  env: staging
rewrite:
  max_passes: 3
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "rewriter", cfg.Telemetry.Service)
	assert.Equal(t, "staging", cfg.Telemetry.Env)
	assert.Equal(t, 3, cfg.Rewrite.MaxPasses)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() *config.Config {
		return &config.Config{
			Logging: config.LoggingConfig{Level: "info", Format: "text"},
			Rewrite: config.RewriteConfig{MaxPasses: 10},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr error
	}{
		{"bad level", func(c *config.Config) { c.Logging.Level = "loud" }, config.ErrInvalidLogLevel},
		{"bad format", func(c *config.Config) { c.Logging.Format = "xml" }, config.ErrInvalidLogFormat},
		{"zero passes", func(c *config.Config) { c.Rewrite.MaxPasses = 0 }, config.ErrInvalidMaxPasses},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.mutate(cfg)
			require.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}

	require.NoError(t, valid().Validate())
}
