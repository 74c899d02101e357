// Package config loads the optional immediate.yaml (or immediate.toml)
// project file and resolves it into the theme and engine settings an
// Interface runs with.
package config

import (
	stderrors "errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-drift/immediate/pkg/errors"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"
)

// Config represents the optional project configuration file.
type Config struct {
	App    AppConfig    `yaml:"app" toml:"app"`
	Theme  ThemeConfig  `yaml:"theme" toml:"theme"`
	Engine EngineConfig `yaml:"engine" toml:"engine"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty" toml:"name,omitempty"`
}

// ThemeConfig holds the visual defaults widgets read at build time.
// Colours are hex strings ("#rrggbb" or "#rrggbbaa").
type ThemeConfig struct {
	Padding    float32 `yaml:"padding,omitempty" toml:"padding,omitempty"`
	Separator  float32 `yaml:"separator,omitempty" toml:"separator,omitempty"`
	FontSize   float32 `yaml:"font_size,omitempty" toml:"font_size,omitempty"`
	Foreground string  `yaml:"foreground,omitempty" toml:"foreground,omitempty"`
	Background string  `yaml:"background,omitempty" toml:"background,omitempty"`
	Accent     string  `yaml:"accent,omitempty" toml:"accent,omitempty"`
	Focus      string  `yaml:"focus,omitempty" toml:"focus,omitempty"`
}

// EngineConfig contains engine settings.
type EngineConfig struct {
	// RootObjective is the objective of the top-level layout query on both
	// axes: "minimize" (default), "maximize" or "none".
	RootObjective string `yaml:"root_objective,omitempty" toml:"root_objective,omitempty"`
	RecoverPanics bool   `yaml:"recover_panics,omitempty" toml:"recover_panics,omitempty"`
	LogLevel      string `yaml:"log_level,omitempty" toml:"log_level,omitempty"`
}

// Theme is a ThemeConfig with colours parsed.
type Theme struct {
	Padding    float32
	Separator  float32
	FontSize   float32
	Foreground color.NRGBA
	Background color.NRGBA
	Accent     color.NRGBA
	Focus      color.NRGBA
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	ModulePath string
	AppName    string
	Theme      Theme
	Engine     EngineConfig
}

// File names probed by LoadOptional, in order.
const (
	YAMLFile = "immediate.yaml"
	TOMLFile = "immediate.toml"
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Theme: ThemeConfig{
			Padding:    4,
			Separator:  0.5,
			FontSize:   13,
			Foreground: "#1f2328",
			Background: "#ffffff",
			Accent:     "#0969da",
			Focus:      "#bf8700",
		},
		Engine: EngineConfig{
			RootObjective: "minimize",
			LogLevel:      "info",
		},
	}
}

func configError(op string, err error) error {
	return &errors.FrameError{Op: op, Kind: errors.KindConfig, Err: err}
}

// Load reads a configuration file, choosing the decoder by extension.
// Fields the file leaves out keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, configError("config.Load", fmt.Errorf("failed to read %s: %w", filepath.Base(path), err))
	}
	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, configError("config.Load", fmt.Errorf("unsupported config format %q", filepath.Ext(path)))
	}
	if err != nil {
		return nil, configError("config.Load", fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err))
	}
	return cfg, nil
}

// LoadOptional reads immediate.yaml, or immediate.toml if there is no YAML
// file. A directory with neither yields the defaults.
func LoadOptional(dir string) (*Config, error) {
	for _, name := range []string{YAMLFile, TOMLFile} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			if stderrors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, configError("config.LoadOptional", err)
		}
		return Load(path)
	}
	return Default(), nil
}

// Resolve loads the project configuration (if present) and resolves
// defaults. dir must contain a go.mod.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modulePath, dir)
	}

	theme, err := cfg.Theme.Parse()
	if err != nil {
		return nil, err
	}

	return &Resolved{
		Root:       dir,
		ModulePath: modulePath,
		AppName:    appName,
		Theme:      theme,
		Engine:     cfg.Engine,
	}, nil
}

// FindProjectRoot walks up from dir to find go.mod.
func FindProjectRoot(dir string) (string, error) {
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", configError("config.FindProjectRoot", fmt.Errorf("not in a Go module (no go.mod found)"))
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", configError("config.Resolve", fmt.Errorf("failed to read go.mod: %w", err))
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", configError("config.Resolve", fmt.Errorf("could not determine module path from go.mod"))
	}
	return path, nil
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	modName, _, ok := module.SplitPathVersion(modulePath)
	if ok {
		parts := strings.Split(modName, "/")
		if len(parts) > 0 {
			base = parts[len(parts)-1]
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "immediate_app"
	}
	return base
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	t := c.Theme
	switch {
	case t.Padding < 0:
		return configError("config.Validate", fmt.Errorf("theme.padding must not be negative (got %v)", t.Padding))
	case t.Separator < 0:
		return configError("config.Validate", fmt.Errorf("theme.separator must not be negative (got %v)", t.Separator))
	case t.FontSize <= 0:
		return configError("config.Validate", fmt.Errorf("theme.font_size must be positive (got %v)", t.FontSize))
	}
	switch strings.ToLower(c.Engine.RootObjective) {
	case "", "minimize", "maximize", "none":
	default:
		return configError("config.Validate", fmt.Errorf("engine.root_objective must be minimize, maximize or none (got %q)", c.Engine.RootObjective))
	}
	if _, err := ParseLevel(c.Engine.LogLevel); err != nil {
		return err
	}
	return nil
}

// Parse converts the colour strings.
func (t ThemeConfig) Parse() (Theme, error) {
	theme := Theme{Padding: t.Padding, Separator: t.Separator, FontSize: t.FontSize}
	fields := []struct {
		name string
		hex  string
		dst  *color.NRGBA
	}{
		{"foreground", t.Foreground, &theme.Foreground},
		{"background", t.Background, &theme.Background},
		{"accent", t.Accent, &theme.Accent},
		{"focus", t.Focus, &theme.Focus},
	}
	for _, f := range fields {
		c, err := ParseColor(f.hex)
		if err != nil {
			return Theme{}, configError("config.Theme", fmt.Errorf("theme.%s: %w", f.name, err))
		}
		*f.dst = c
	}
	return theme, nil
}

// DefaultTheme returns the parsed built-in theme.
func DefaultTheme() Theme {
	theme, err := Default().Theme.Parse()
	if err != nil {
		panic(err)
	}
	return theme
}

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa". The leading '#' is
// optional.
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// ParseLevel maps a log_level string to a slog level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, configError("config.ParseLevel", fmt.Errorf("engine.log_level: %w", err))
	}
	return level, nil
}
