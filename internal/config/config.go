// Package config handles loading tasktree.toml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/amonks/tasktree/internal/paths"
	"github.com/amonks/tasktree/task"
)

// ProjectFile is the name of the per-directory configuration file.
const ProjectFile = "tasktree.toml"

// DefaultStorePath is the task file used when none is configured.
const DefaultStorePath = "tasks.jsonl"

// Config represents the tasktree.toml configuration file.
type Config struct {
	Display Display `toml:"display"`
	Store   Store   `toml:"store"`
}

// Display contains rendering configuration.
type Display struct {
	// TextLengthThreshold is the title length past which titles are
	// abbreviated. Defaults to task.DefaultTextLengthThreshold.
	TextLengthThreshold int `toml:"text-length-threshold"`

	// Color is one of "auto", "always" or "never".
	Color string `toml:"color"`
}

// Store contains task file configuration.
type Store struct {
	// Path is the task file. Relative paths resolve against the directory
	// holding the project config.
	Path string `toml:"path"`
}

// Load loads configuration from dir and the global config file.
// Returns a defaulted config if no config files exist.
func Load(dir string) (*Config, error) {
	globalPath, err := globalConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(dir, ProjectFile))
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta)
	merged.Store.Path = paths.Absolute(dir, merged.Store.Path)
	if err := merged.applyDefaults(dir); err != nil {
		return nil, err
	}
	return merged, nil
}

func globalConfigPath() (string, error) {
	dir, err := paths.DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.Display.Color = mergeString(projectMeta.IsDefined("display", "color"), projectCfg.Display.Color, globalCfg.Display.Color)
	merged.Store.Path = mergeString(projectMeta.IsDefined("store", "path"), projectCfg.Store.Path, globalCfg.Store.Path)
	if projectMeta.IsDefined("display", "text-length-threshold") {
		merged.Display.TextLengthThreshold = projectCfg.Display.TextLengthThreshold
	} else if globalMeta.IsDefined("display", "text-length-threshold") {
		merged.Display.TextLengthThreshold = globalCfg.Display.TextLengthThreshold
	}

	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}

func (cfg *Config) applyDefaults(dir string) error {
	if cfg.Display.TextLengthThreshold < 0 {
		return fmt.Errorf("display.text-length-threshold must not be negative: %d", cfg.Display.TextLengthThreshold)
	}
	if cfg.Display.TextLengthThreshold == 0 {
		cfg.Display.TextLengthThreshold = task.DefaultTextLengthThreshold
	}

	switch strings.ToLower(cfg.Display.Color) {
	case "":
		cfg.Display.Color = "auto"
	case "auto", "always", "never":
		cfg.Display.Color = strings.ToLower(cfg.Display.Color)
	default:
		return fmt.Errorf("display.color must be auto, always or never: %q", cfg.Display.Color)
	}

	if cfg.Store.Path == "" {
		cfg.Store.Path = filepath.Join(dir, DefaultStorePath)
	}
	return nil
}
