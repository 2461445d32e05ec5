// Package config resolves the Arbor settings from defaults, an optional YAML
// file and ARBOR_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/arbor/internal/runtime"
	"github.com/aretw0/arbor/pkg/layout"
	"github.com/aretw0/arbor/pkg/shape"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no explicit path is given and it exists.
const DefaultFile = "arbor.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ARBOR_"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the resolved application configuration.
type Config struct {
	Timings  runtime.Timings `mapstructure:"timings" yaml:"timings"`
	Layout   layout.Config   `mapstructure:"layout" yaml:"layout"`
	Server   Server          `mapstructure:"server" yaml:"server"`
	Redis    Redis           `mapstructure:"redis" yaml:"redis"`
	Shape    string          `mapstructure:"shape" yaml:"shape"` // empty inserts values as given
	LogLevel string          `mapstructure:"log_level" yaml:"log_level"`
}

// Server configures the HTTP and SSE listeners.
type Server struct {
	Addr    string `mapstructure:"addr" yaml:"addr"`
	MCPAddr string `mapstructure:"mcp_addr" yaml:"mcp_addr"`
}

// Redis configures the event publisher. An empty Addr disables it.
type Redis struct {
	Addr     string `mapstructure:"addr" yaml:"addr"`
	Password string `mapstructure:"password" yaml:"password"`
	DB       int    `mapstructure:"db" yaml:"db"`
	Channel  string `mapstructure:"channel" yaml:"channel"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Timings:  runtime.DefaultTimings(),
		Layout:   layout.DefaultConfig(),
		Server:   Server{Addr: ":8080", MCPAddr: ":8081"},
		Redis:    Redis{Channel: "arbor:events"},
		LogLevel: "info",
	}
}

// envKeys lists the dotted keys that can be overridden from the environment.
// "timings.build" is read from ARBOR_TIMINGS_BUILD.
var envKeys = []string{
	"timings.build", "timings.traversal", "timings.highlight", "timings.reveal",
	"layout.min_width", "layout.min_height", "layout.level_width", "layout.level_height",
	"layout.bottom_padding", "layout.top_margin", "layout.max_spacing",
	"layout.spacing_decay", "layout.vertical_spacing",
	"server.addr", "server.mcp_addr",
	"redis.addr", "redis.password", "redis.db", "redis.channel",
	"shape", "log_level",
}

// EnvName returns the environment variable for a dotted key.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Load resolves the configuration using the process environment.
func Load(path string) (Config, error) {
	return LoadWith(path, os.LookupEnv)
}

// LoadWith resolves the configuration with a custom environment lookup.
// An explicit path must exist; the default file is optional.
func LoadWith(path string, lookup func(string) (string, bool)) (Config, error) {
	raw := map[string]any{}

	file := path
	if file == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			file = DefaultFile
		}
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", file, err)
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", file, err)
		}
		if raw == nil {
			raw = map[string]any{}
		}
	}

	for _, key := range envKeys {
		if v, ok := lookup(EnvName(key)); ok {
			set(raw, strings.Split(key, "."), v)
		}
	}

	cfg := Default()
	if err := Decode(raw, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode merges raw into cfg. Durations accept Go duration strings ("250ms").
func Decode(raw map[string]any, cfg *Config) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           cfg,
	})
	if err != nil {
		return fmt.Errorf("failed to create config decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// set writes v at the nested path, creating intermediate maps.
func set(m map[string]any, path []string, v any) {
	for _, k := range path[:len(path)-1] {
		next, ok := m[k].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[k] = next
		}
		m = next
	}
	m[path[len(path)-1]] = v
}

// Validate rejects values the animation cannot run with.
func (c Config) Validate() error {
	t := c.Timings
	if t.Build < 0 || t.Traversal < 0 || t.Highlight < 0 || t.Reveal < 0 {
		return fmt.Errorf("%w: timings must not be negative", ErrInvalidConfig)
	}
	if c.Layout.SpacingDecay <= 0 || c.Layout.SpacingDecay > 1 {
		return fmt.Errorf("%w: layout.spacing_decay must be in (0, 1]", ErrInvalidConfig)
	}
	if c.Layout.VerticalSpacing <= 0 {
		return fmt.Errorf("%w: layout.vertical_spacing must be positive", ErrInvalidConfig)
	}
	if c.Shape != "" {
		if _, err := shape.Parse(c.Shape); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}
