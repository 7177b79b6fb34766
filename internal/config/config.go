// Package config loads symhash settings from an optional YAML file and
// SYMHASH_ environment variables. Command-line flags are applied on top by
// the CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/roach88/symhash/internal/pass/md5name"
	"github.com/roach88/symhash/internal/pipeline"
)

// DefaultPath is read when no --config flag is given. A missing file at
// this path is not an error.
const DefaultPath = "symhash.yaml"

// EnvPrefix selects environment overrides, e.g. SYMHASH_ENTRY_POINT.
const EnvPrefix = "SYMHASH_"

// SchemaVersion is the only accepted value of the optional version key.
const SchemaVersion = "1"

// Config holds every setting that is not a per-invocation argument.
type Config struct {
	Version    string   `koanf:"version"`
	Reserved   []string `koanf:"reserved"`    // names never renamed
	EntryPoint string   `koanf:"entry_point"` // program entry, never renamed
	Pipeline   string   `koanf:"pipeline"`    // default pipeline text
	Database   string   `koanf:"database"`    // rename log path; empty disables it
	LogLevel   string   `koanf:"log_level"`
}

// Load reads path (which must exist) and then the environment.
func Load(path string) (Config, error) {
	return load(path, false)
}

// LoadDefault reads DefaultPath if present and then the environment.
func LoadDefault() (Config, error) {
	return load(DefaultPath, true)
}

func load(path string, optional bool) (Config, error) {
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if !optional || !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("load config %s: %w", path, err)
			}
		}
	}

	// only checked when a file set it
	if sv := k.String("version"); sv != "" && sv != SchemaVersion {
		return Config{}, fmt.Errorf("config version %q not supported (want %s)", sv, SchemaVersion)
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	applyDefaults(&cfg)
	return cfg, nil
}

// envValue maps SYMHASH_ENTRY_POINT to entry_point. List settings are
// comma separated.
func envValue(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	if key == "reserved" {
		if value == "" {
			return key, []string{}
		}
		return key, strings.Split(value, ",")
	}
	return key, value
}

func applyDefaults(c *Config) {
	def := md5name.DefaultConfig()
	if c.Reserved == nil {
		c.Reserved = def.Reserved
	}
	if c.EntryPoint == "" {
		c.EntryPoint = def.EntryPoint
	}
	if c.Pipeline == "" {
		c.Pipeline = pipeline.DefaultText
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// PassConfig returns the exclusions for the renaming pass.
func (c Config) PassConfig() md5name.Config {
	return md5name.Config{
		Reserved:   c.Reserved,
		EntryPoint: c.EntryPoint,
	}
}
