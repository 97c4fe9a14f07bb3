package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"recgo.yaml",
	"recgo.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "RECGO_CONFIG"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "RECGO_"

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Recommend: RecommendConfig{
			Neighbors:  10,
			TopN:       5,
			Workers:    1,
			Prefilter:  true,
			Scale:      5,
			MinScore:   1,
			MaxScore:   10,
			BridgeMode: "keys",
		},
		Input: InputConfig{
			Ratings:   "Ratings.csv",
			Catalog:   "Books.csv",
			Delimiter: ";",
			Header:    true,
		},
		Artifacts: ArtifactConfig{
			LIBSVM:  "ratings.libsvm",
			UserMap: "users.csv",
			ItemMap: "items.csv",
		},
		Output: OutputConfig{
			Path:   "library_suggestions.csv",
			Format: "auto",
			Codec:  "go-json",
		},
		Store: StoreConfig{
			Backend: "local",
			Root:    ".",
			Secure:  true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled:   false,
			Namespace: "recgo",
		},
	}
}

// Load builds the configuration from defaults, the config file at path and
// the environment. An empty path falls back to $RECGO_CONFIG and then to
// DefaultConfigPaths; a missing default file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	explicit := path != ""
	if !explicit {
		path = findConfigFile()
	}
	if path != "" {
		if _, err := os.Stat(path); err != nil && explicit {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envTransformFunc maps RECGO_SECTION_FIELD_NAME to section.field_name.
// Returning "" drops the variable.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	if key == "config" {
		return ""
	}
	return strings.Replace(key, "_", ".", 1)
}
