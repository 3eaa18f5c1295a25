package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	jsonv2 "github.com/go-json-experiment/json"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TURTLE_"

// Load builds the configuration for a game.
// Search order, later layers overriding earlier ones: embedded default ->
// ~/.turtle/config.yaml -> <gameDir>/conf.{yaml,yml,toml,json} ->
// customPath -> TURTLE_* environment variables.
func Load(gameDir, customPath string) (Config, error) {
	var cfg Config

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		cfg = Default() // Fallback to hardcoded if embed fails
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if err := mergeFile(&cfg, userCfgPath, false); err != nil {
			return cfg, err
		}
	}

	// Try the game's own config
	if gameDir != "" {
		for _, name := range []string{"conf.yaml", "conf.yml", "conf.toml", "conf.json"} {
			path := filepath.Join(gameDir, name)
			if _, err := os.Stat(path); err == nil {
				if err := mergeFile(&cfg, path, true); err != nil {
					return cfg, err
				}
				break
			}
		}
	}

	// Custom path must exist
	if customPath != "" {
		if err := mergeFile(&cfg, customPath, true); err != nil {
			return cfg, err
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	return cfg, cfg.Validate()
}

// mergeFile overlays a YAML, TOML or JSON file onto cfg. JSON files may
// carry comments and trailing commas. A missing file is an error only when
// required.
func mergeFile(cfg *Config, path string, required bool) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".json":
		err = mergeJSON(cfg, data)
	default:
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func mergeJSON(cfg *Config, huJSONData []byte) error {
	jsonData, err := hujson.Standardize(huJSONData)
	if err != nil {
		return err
	}
	return jsonv2.Unmarshal(jsonData, cfg, jsonv2.RejectUnknownMembers(false))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".turtle", filename)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
