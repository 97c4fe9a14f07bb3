package config

import (
	"log/slog"
	"strings"
)

// Config is the complete CLI configuration.
type Config struct {
	Recommend RecommendConfig `koanf:"recommend"`
	Input     InputConfig     `koanf:"input"`
	Artifacts ArtifactConfig  `koanf:"artifacts"`
	Output    OutputConfig    `koanf:"output"`
	Store     StoreConfig     `koanf:"store"`
	Logging   LoggingConfig   `koanf:"logging"`
	Metrics   MetricsConfig   `koanf:"metrics"`
}

// RecommendConfig tunes the engine.
type RecommendConfig struct {
	Neighbors int `koanf:"neighbors" validate:"min=1"`
	TopN      int `koanf:"top_n" validate:"min=1"`
	// Workers of 0 means one per CPU.
	Workers      int     `koanf:"workers" validate:"min=0"`
	Prefilter    bool    `koanf:"prefilter"`
	Scale        float64 `koanf:"scale" validate:"gt=0"`
	MinScore     float64 `koanf:"min_score"`
	MaxScore     float64 `koanf:"max_score" validate:"gtefield=MinScore"`
	BridgeMode   string  `koanf:"bridge_mode" validate:"oneof=keys catalog-ordinal"`
	StrictBridge bool    `koanf:"strict_bridge"`
}

// InputConfig locates raw rating and catalog files.
type InputConfig struct {
	Ratings   string `koanf:"ratings"`
	Catalog   string `koanf:"catalog"`
	Delimiter string `koanf:"delimiter" validate:"len=1"`
	Header    bool   `koanf:"header"`
}

// Comma returns the delimiter as a rune.
func (c InputConfig) Comma() rune {
	for _, r := range c.Delimiter {
		return r
	}
	return ';'
}

// ArtifactConfig names the encode phase outputs. A .zst or .lz4 suffix
// compresses the artifact.
type ArtifactConfig struct {
	LIBSVM  string `koanf:"libsvm" validate:"required"`
	UserMap string `koanf:"user_map"`
	ItemMap string `koanf:"item_map"`
}

// OutputConfig controls recommendation output.
type OutputConfig struct {
	Path string `koanf:"path" validate:"required"`
	// Format "auto" derives the format from Path.
	Format string `koanf:"format" validate:"oneof=auto csv jsonl"`
	Codec  string `koanf:"codec" validate:"oneof=go-json json"`
}

// StoreConfig selects where files are read and written.
type StoreConfig struct {
	Backend   string `koanf:"backend" validate:"oneof=local s3 minio"`
	Root      string `koanf:"root"`
	Bucket    string `koanf:"bucket" validate:"required_unless=Backend local"`
	Prefix    string `koanf:"prefix"`
	Endpoint  string `koanf:"endpoint" validate:"required_if=Backend minio"`
	AccessKey string `koanf:"access_key"`
	SecretKey string `koanf:"secret_key"`
	Secure    bool   `koanf:"secure"`
	Region    string `koanf:"region"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=text json"`
}

// SlogLevel returns Level as a slog.Level.
func (c LoggingConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MetricsConfig controls Prometheus metrics.
type MetricsConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Namespace string `koanf:"namespace" validate:"required_if=Enabled true"`
	// Path receives a text exposition dump when the command finishes.
	Path string `koanf:"path"`
}
