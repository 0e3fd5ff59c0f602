// Package config loads server and chart settings from a JSON, YAML or TOML
// file, filling anything left unset with defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	yaml "gopkg.in/yaml.v3"

	"github.com/wdm0006/datavis/pkg/clean"
	"github.com/wdm0006/datavis/pkg/viz"
)

// Duration decodes from strings such as "30m" in every supported format.
type Duration struct{ time.Duration }

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

type Server struct {
	Addr      string `json:"addr" yaml:"addr" toml:"addr"`
	BodyLimit string `json:"body_limit" yaml:"body_limit" toml:"body_limit"`
}

type Uploads struct {
	TTL           Duration `json:"ttl" yaml:"ttl" toml:"ttl"`
	SweepInterval Duration `json:"sweep_interval" yaml:"sweep_interval" toml:"sweep_interval"`
	MaxItems      int      `json:"max_items" yaml:"max_items" toml:"max_items"`
	PreviewRows   int      `json:"preview_rows" yaml:"preview_rows" toml:"preview_rows"`
}

// Chart sizes are in inches.
type Chart struct {
	Width  float64 `json:"width" yaml:"width" toml:"width"`
	Height float64 `json:"height" yaml:"height" toml:"height"`
	Format string  `json:"format" yaml:"format" toml:"format"`
	Bins   int     `json:"bins" yaml:"bins" toml:"bins"`
}

type Logging struct {
	Level  string `json:"level" yaml:"level" toml:"level"`
	SeqURL string `json:"seq_url" yaml:"seq_url" toml:"seq_url"`
}

type Clean struct {
	NumericStrategy string `json:"numeric_strategy" yaml:"numeric_strategy" toml:"numeric_strategy"`
}

type Config struct {
	Server  Server  `json:"server" yaml:"server" toml:"server"`
	Uploads Uploads `json:"uploads" yaml:"uploads" toml:"uploads"`
	Chart   Chart   `json:"chart" yaml:"chart" toml:"chart"`
	Logging Logging `json:"logging" yaml:"logging" toml:"logging"`
	Clean   Clean   `json:"clean" yaml:"clean" toml:"clean"`
}

func Default() Config {
	return Config{
		Server:  Server{Addr: ":8080", BodyLimit: "32M"},
		Uploads: Uploads{TTL: Duration{30 * time.Minute}, SweepInterval: Duration{5 * time.Minute}, MaxItems: 64, PreviewRows: 5},
		Chart:   Chart{Width: 8, Height: 6, Format: "png", Bins: 20},
		Logging: Logging{Level: "info"},
		Clean:   Clean{NumericStrategy: string(clean.StrategyMedian)},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := decode(path, b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config %s: %w", filepath.Base(path), err)
		}
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(path string, b []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.Unmarshal(b, cfg)
	case ".yaml", ".yml":
		return yaml.Unmarshal(b, cfg)
	case ".toml":
		return toml.Unmarshal(b, cfg)
	default:
		return fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DATAVIS_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("DATAVIS_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

func (c Config) Validate() error {
	switch {
	case c.Server.Addr == "":
		return fmt.Errorf("server.addr is required")
	case c.Server.BodyLimit == "":
		return fmt.Errorf("server.body_limit is required")
	case c.Uploads.TTL.Duration <= 0:
		return fmt.Errorf("uploads.ttl must be positive")
	case c.Uploads.SweepInterval.Duration <= 0:
		return fmt.Errorf("uploads.sweep_interval must be positive")
	case c.Uploads.MaxItems <= 0:
		return fmt.Errorf("uploads.max_items must be positive")
	case c.Uploads.PreviewRows < 0:
		return fmt.Errorf("uploads.preview_rows must not be negative")
	case c.Chart.Width <= 0 || c.Chart.Height <= 0:
		return fmt.Errorf("chart size must be positive")
	case c.Chart.Bins <= 0:
		return fmt.Errorf("chart.bins must be positive")
	case viz.MIMEType(c.Chart.Format) == "":
		return fmt.Errorf("unknown chart.format %q", c.Chart.Format)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown logging.level %q", c.Logging.Level)
	}
	if _, err := clean.New(clean.Options{NumericStrategy: clean.Strategy(c.Clean.NumericStrategy)}); err != nil {
		return fmt.Errorf("clean: %w", err)
	}
	return nil
}
