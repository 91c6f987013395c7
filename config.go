package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Engine names accepted in Config.Engine.
const (
	EngineRelax = "relax"
	EngineFixed = "fixed"
)

// MaxWorkers bounds Config.Workers.
const MaxWorkers = 1024

// Config controls a pleat run. Paths are relative to BaseDir.
type Config struct {
	BaseDir          string  `toml:"base_dir"`
	ModelOut         string  `toml:"model_out"`
	DiagramOut       string  `toml:"diagram_out"`
	Canvas           float64 `toml:"canvas"`
	Engine           string  `toml:"engine"`
	EngineMode       int     `toml:"engine_mode"`
	LegacyKindColors bool    `toml:"legacy_kind_colors"`
	Workers          int     `toml:"workers"`
	LogLevel         string  `toml:"log_level"`
}

// Defaults returns the configuration used when no file is given.
func Defaults() Config {
	return Config{
		BaseDir:    ".",
		ModelOut:   "example.tmd5",
		DiagramOut: "example.svg",
		Canvas:     2000,
		Engine:     EngineRelax,
		EngineMode: 110,
		Workers:    1,
		LogLevel:   "info",
	}
}

// LoadConfig reads a TOML file over Defaults. Unknown keys are an error. A
// relative base_dir is taken relative to the file's directory.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	cfg, err := decodeConfig(f)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	if !filepath.IsAbs(cfg.BaseDir) {
		cfg.BaseDir = filepath.Join(filepath.Dir(path), cfg.BaseDir)
	}
	return cfg, nil
}

func decodeConfig(r io.Reader) (Config, error) {
	cfg := Defaults()
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate checks field ranges.
func (c Config) Validate() error {
	switch {
	case c.Canvas <= 0:
		return fmt.Errorf("canvas must be positive, got %g", c.Canvas)
	case c.Workers < 0 || c.Workers > MaxWorkers:
		return fmt.Errorf("workers must be in [0, %d], got %d", MaxWorkers, c.Workers)
	case c.ModelOut == "" || c.DiagramOut == "":
		return fmt.Errorf("model_out and diagram_out are required")
	case c.Engine != EngineRelax && c.Engine != EngineFixed:
		return fmt.Errorf("unknown engine %q", c.Engine)
	}
	_, err := c.Level()
	return err
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}
