package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recgo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ';', cfg.Input.Comma())
	assert.Equal(t, slog.LevelInfo, cfg.Logging.SlogLevel())
}

func TestLoadFileAndEnv(t *testing.T) {
	path := writeFile(t, `
recommend:
  neighbors: 20
  top_n: 3
  bridge_mode: catalog-ordinal
input:
  delimiter: ","
store:
  backend: s3
  bucket: ratings
  prefix: bx/
logging:
  level: debug
`)
	t.Setenv("RECGO_RECOMMEND_TOP_N", "7")
	t.Setenv("RECGO_RECOMMEND_WORKERS", "4")
	t.Setenv("RECGO_LOGGING_FORMAT", "json")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Recommend.Neighbors)
	assert.Equal(t, 7, cfg.Recommend.TopN)
	assert.Equal(t, 4, cfg.Recommend.Workers)
	assert.Equal(t, "catalog-ordinal", cfg.Recommend.BridgeMode)
	assert.Equal(t, ',', cfg.Input.Comma())
	assert.Equal(t, "s3", cfg.Store.Backend)
	assert.Equal(t, "ratings", cfg.Store.Bucket)
	assert.Equal(t, "bx/", cfg.Store.Prefix)
	assert.Equal(t, slog.LevelDebug, cfg.Logging.SlogLevel())
	assert.Equal(t, "json", cfg.Logging.Format)

	// untouched defaults survive
	assert.Equal(t, 5.0, cfg.Recommend.Scale)
	assert.True(t, cfg.Recommend.Prefilter)
}

func TestLoadConfigPathEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeFile(t, "recommend:\n  neighbors: 42\n")
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.Recommend.Neighbors)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero neighbors", func(c *Config) { c.Recommend.Neighbors = 0 }, "Recommend.Neighbors"},
		{"zero top n", func(c *Config) { c.Recommend.TopN = 0 }, "Recommend.TopN"},
		{"negative workers", func(c *Config) { c.Recommend.Workers = -1 }, "Recommend.Workers"},
		{"inverted bounds", func(c *Config) { c.Recommend.MaxScore = 0 }, "Recommend.MaxScore"},
		{"bad bridge", func(c *Config) { c.Recommend.BridgeMode = "guess" }, "Recommend.BridgeMode"},
		{"long delimiter", func(c *Config) { c.Input.Delimiter = ";;" }, "Input.Delimiter"},
		{"bad format", func(c *Config) { c.Output.Format = "xml" }, "Output.Format"},
		{"bad codec", func(c *Config) { c.Output.Codec = "msgpack" }, "Output.Codec"},
		{"s3 without bucket", func(c *Config) { c.Store.Backend = "s3" }, "Store.Bucket"},
		{"minio without endpoint", func(c *Config) {
			c.Store.Backend = "minio"
			c.Store.Bucket = "b"
		}, "Store.Endpoint"},
		{"bad level", func(c *Config) { c.Logging.Level = "trace" }, "Logging.Level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Len(t, verr.Fields, 1)
			assert.Equal(t, tt.field, verr.Fields[0].Field)
			assert.Contains(t, verr.Error(), tt.field)
		})
	}

	require.NoError(t, Default().Validate())
}

func TestEnvTransform(t *testing.T) {
	assert.Equal(t, "recommend.top_n", envTransformFunc("RECGO_RECOMMEND_TOP_N"))
	assert.Equal(t, "store.access_key", envTransformFunc("RECGO_STORE_ACCESS_KEY"))
	assert.Equal(t, "", envTransformFunc("RECGO_CONFIG"))
}
