package process

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// KitchenConfig describes the external command that receives placed orders.
type KitchenConfig struct {
	Command     string            `yaml:"command" json:"command"`
	Args        []string          `yaml:"args" json:"args"`
	Environment map[string]string `yaml:"env" json:"env"`
	Dir         string            `yaml:"dir" json:"dir"`
	Timeout     time.Duration     `yaml:"timeout" json:"timeout"`
}

// ConfigFile represents the structure of kitchen.yaml.
type ConfigFile struct {
	Kitchen KitchenConfig `yaml:"kitchen" json:"kitchen"`
}

// LoadConfig reads a kitchen configuration file (YAML or JSON, by extension).
func LoadConfig(path string) (KitchenConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return KitchenConfig{}, fmt.Errorf("failed to read kitchen config: %w", err)
	}

	var cfg ConfigFile
	ext := strings.ToLower(filepath.Ext(path))

	if ext == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return KitchenConfig{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return KitchenConfig{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if cfg.Kitchen.Command == "" {
		return KitchenConfig{}, fmt.Errorf("kitchen config %s: command is required", path)
	}
	return cfg.Kitchen, nil
}
