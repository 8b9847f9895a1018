package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/mgubran1/dispatchgrid/core/grid"
	"github.com/mgubran1/dispatchgrid/core/model"
	"github.com/mgubran1/dispatchgrid/core/schedule"
	"github.com/mgubran1/dispatchgrid/infra/mqtt"
	"github.com/mgubran1/dispatchgrid/metrics"
)

// Config is the root configuration, loaded once in cmd and passed down by
// reference. There are no global settings accessors.
type Config struct {
	HTTP                   HTTPConfig              `json:"http"`
	Repository             RepositoryConfig        `json:"repository"`
	Schedule               schedule.BuilderConfig  `json:"schedule"`
	Display                DisplayConfig           `json:"display"`
	Metrics                metrics.Config          `json:"metrics"`
	MQTT                   mqtt.Config             `json:"mqtt"`
	RefreshIntervalSeconds int                     `json:"refresh_interval_seconds"`
}

// HTTPConfig defines the schedule query API listener.
type HTTPConfig struct {
	Addr string `json:"addr"`
}

// RepositoryConfig selects the load/driver store backend.
type RepositoryConfig struct {
	// Backend is "sqlite" or "memory".
	Backend string `json:"backend"`
	// Path is the database file for the sqlite backend.
	Path string `json:"path"`
}

// DisplayConfig selects the timeline window and pixel geometry.
type DisplayConfig struct {
	// Mode is "12h" (07:00-19:00) or "24h".
	Mode   string      `json:"mode"`
	Layout grid.Layout `json:"layout"`
}

// Load reads the configuration file (yaml or json by extension) and applies
// K_-prefixed environment overrides.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides. The provider delimiter must match the
	// callback output: keys are rewritten to dotted paths, so the provider
	// unflattens on "." or the override lands as a dead top-level key.
	if err := k.Load(env.Provider("K_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults fills unset sections with the dispatcher defaults.
func (c *Config) SetDefaults() {
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.Repository.Backend == "" {
		c.Repository.Backend = "sqlite"
	}
	if c.Repository.Backend == "sqlite" && c.Repository.Path == "" {
		c.Repository.Path = "dispatch.db"
	}
	if c.Display.Mode == "" {
		c.Display.Mode = model.TwelveHour.String()
	}
	c.Display.Layout.SetDefaults()
	c.Schedule.SetDefaults()
	if c.RefreshIntervalSeconds == 0 {
		c.RefreshIntervalSeconds = 300
	}
}

// Validate fails fast on configurations the engine would otherwise turn into
// nonsensical output, display modes in particular.
func (c Config) Validate() error {
	switch c.Repository.Backend {
	case "sqlite", "memory":
	default:
		return fmt.Errorf("unknown repository backend %q", c.Repository.Backend)
	}
	if err := c.Schedule.Validate(); err != nil {
		return fmt.Errorf("schedule: %w", err)
	}
	mode, err := model.ParseDisplayMode(c.Display.Mode)
	if err != nil {
		return fmt.Errorf("display: %w", err)
	}
	if err := mode.Grid().Validate(); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	if c.RefreshIntervalSeconds < 0 {
		return fmt.Errorf("refresh interval must not be negative")
	}
	return nil
}

// DisplayMode returns the parsed display mode. Call Validate first.
func (c Config) DisplayMode() model.DisplayMode {
	mode, err := model.ParseDisplayMode(c.Display.Mode)
	if err != nil {
		return model.TwelveHour
	}
	return mode
}
