// Package config handles loading and saving user configuration for cjdict.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the settings file cjdict looks for in its config directory.
const FileName = "cjdict.yaml"

// Tables points at the default code table files and how to parse them.
type Tables struct {
	Cangjie3  string `yaml:"cangjie3"`
	Cangjie5  string `yaml:"cangjie5"`
	CodeFirst bool   `yaml:"code_first"`
	Delimiter string `yaml:"delimiter"`
}

// Dictionary carries default Pleco dictionary metadata.
type Dictionary struct {
	Name      string `yaml:"name"`
	MenuName  string `yaml:"menu_name"`
	ShortName string `yaml:"short_name"`
	Icon      string `yaml:"icon"`
	Separator string `yaml:"separator"`
}

// Unihan carries annotator defaults.
type Unihan struct {
	Database string `yaml:"database"`
	CacheDB  string `yaml:"cache_db"`
}

// Config holds all user configuration for cjdict.
type Config struct {
	Tables     Tables     `yaml:"tables"`
	Dictionary Dictionary `yaml:"dictionary"`
	Unihan     Unihan     `yaml:"unihan"`
}

// LoadConfig reads FileName from a directory.
func LoadConfig(dir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// SaveConfig writes the configuration to FileName in a directory.
func SaveConfig(dir string, cfg *Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, FileName), out, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "cjdict"), nil
}
