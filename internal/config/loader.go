package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSnake loads the configuration for a snake variant. Values absent from
// a file keep the variant's built-in defaults.
// Search order: customPath -> ~/.arcade/configs/<id>.yaml -> ./configs/<id>.yaml -> embedded default
func LoadSnake(gameID, customPath string) (SnakeConfig, error) {
	filename := gameID + ".yaml"

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultFor(gameID), fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := parseSnake(gameID, data)
		if err != nil {
			return DefaultFor(gameID), fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseSnake(gameID, data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if cfg, err := parseSnake(gameID, data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if data := GetDefaultYAML(gameID); data != nil {
		if cfg, err := parseSnake(gameID, data); err == nil {
			return cfg, nil
		}
	}
	return DefaultFor(gameID), nil // Fallback to hardcoded if embed fails
}

// parseSnake decodes YAML over the variant defaults.
func parseSnake(gameID string, data []byte) (SnakeConfig, error) {
	cfg := DefaultFor(gameID)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	switch cfg.Target.Kind {
	case TargetFood, TargetHuman:
	default:
		return cfg, fmt.Errorf("unknown target kind %q", cfg.Target.Kind)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
