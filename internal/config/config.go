package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/pathcopycopy/pathcopy/internal/plugin"
	"github.com/pathcopycopy/pathcopy/internal/system"
)

// Config holds the global pathcopy configuration.
type Config struct {
	Log          LogConfig      `yaml:"log"`
	Separator    string         `yaml:"separator"`
	UnexpandVars []string       `yaml:"unexpand_vars"`
	Plugins      []PluginConfig `yaml:"plugins"`
}

// LogConfig controls logging.
type LogConfig struct {
	Format string `yaml:"format"` // text or json
	Level  string `yaml:"level"`  // none, debug, info, warn, error
}

// PluginConfig defines a user plugin. Exactly one of Elements and Script is set.
type PluginConfig struct {
	ID          string `yaml:"id"`
	Description string `yaml:"description"`
	// Elements is an encoded elements stream.
	Elements string `yaml:"elements"`
	// Script is Starlark source, or "@path" to read it from a file.
	Script string `yaml:"script"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Format: "text",
			Level:  "warn",
		},
		Separator:    "\n",
		UnexpandVars: append([]string(nil), system.DefaultUnexpandVars...),
	}
}

// Load reads the config from the standard location (~/.config/pathcopy/config.yaml).
// If the file doesn't exist, returns the default config.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultConfig(), nil
	}

	path := filepath.Join(home, ".config", "pathcopy", "config.yaml")
	return LoadFrom(path)
}

// LoadFrom reads the config from the given path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	// Script files are relative to the config file; ~ is the home directory.
	for i := range cfg.Plugins {
		if s := cfg.Plugins[i].Script; len(s) > 1 && s[0] == '@' {
			cfg.Plugins[i].Script = "@" + resolvePath(filepath.Dir(path), s[1:])
		}
	}

	return cfg, nil
}

func resolvePath(dir, p string) string {
	if p != "" && p[0] == '~' {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, p[1:])
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// Validate checks every plugin definition without building it.
func (c *Config) Validate() error {
	var errs []error
	seen := make(map[uuid.UUID]bool)
	for i, p := range c.Plugins {
		id, err := uuid.Parse(trimBraces(p.ID))
		if err != nil {
			errs = append(errs, fmt.Errorf("plugin %d: id %q: %w", i, p.ID, err))
			continue
		}
		if seen[id] {
			errs = append(errs, fmt.Errorf("plugin %d: duplicate id %s", i, id))
		}
		seen[id] = true
		if (p.Elements == "") == (p.Script == "") {
			errs = append(errs, fmt.Errorf("plugin %d (%s): exactly one of elements and script must be set", i, id))
		}
	}
	return errors.Join(errs...)
}

// System returns the OS collaborator configured by the config.
func (c *Config) System() *system.OS {
	return system.New(c.UnexpandVars)
}

// ApplyPlugins registers the configured plugins. Definitions that cannot be
// registered are logged and skipped; broken pipelines are still registered so
// their error is shown where the path would be.
func (c *Config) ApplyPlugins(reg *plugin.Registry, logger *zap.Logger) {
	for i, p := range c.Plugins {
		id, err := uuid.Parse(trimBraces(p.ID))
		if err != nil {
			logger.Warn("skipping plugin with invalid id", zap.Int("index", i), zap.String("id", p.ID), zap.Error(err))
			continue
		}
		switch {
		case p.Elements != "":
			reg.Register(plugin.NewPipelinePlugin(id, p.Description, p.Elements, reg))
		case p.Script != "":
			src, err := p.scriptSource()
			if err != nil {
				logger.Warn("skipping script plugin", zap.Stringer("plugin", id), zap.Error(err))
				continue
			}
			reg.Register(plugin.NewScriptPlugin(id, p.Description, src, logger))
		default:
			logger.Warn("skipping empty plugin definition", zap.Stringer("plugin", id))
		}
	}
}

func (p PluginConfig) scriptSource() (string, error) {
	if len(p.Script) > 1 && p.Script[0] == '@' {
		data, err := os.ReadFile(p.Script[1:])
		if err != nil {
			return "", fmt.Errorf("read script: %w", err)
		}
		return string(data), nil
	}
	return p.Script, nil
}

func trimBraces(s string) string {
	if len(s) > 1 && s[0] == '{' && s[len(s)-1] == '}' {
		return s[1 : len(s)-1]
	}
	return s
}

// ConfigPath returns the standard config file path.
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "pathcopy", "config.yaml")
}
