package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

const (
	defaultRefreshSeconds = 60
	minRefreshSeconds     = 10
)

type Config struct {
	// RefreshIntervalSeconds is the periodic refresh cadence. Values below
	// 10 are clamped on load.
	RefreshIntervalSeconds int `json:"refresh_interval_seconds"`
	// ShowPercentage selects remaining-percent text in the status line;
	// false shows the remaining request count instead.
	ShowPercentage bool `json:"show_percentage"`
}

func DefaultConfig() Config {
	return Config{
		RefreshIntervalSeconds: defaultRefreshSeconds,
		ShowPercentage:         true,
	}
}

func ConfigDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), "cursorbar")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "cursorbar")
}

func Path() string {
	return filepath.Join(ConfigDir(), "settings.json")
}

func Load() (Config, error) {
	return LoadFrom(Path())
}

func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.RefreshIntervalSeconds <= 0 {
		cfg.RefreshIntervalSeconds = defaultRefreshSeconds
	}
	if cfg.RefreshIntervalSeconds < minRefreshSeconds {
		cfg.RefreshIntervalSeconds = minRefreshSeconds
	}

	return cfg, nil
}

// saveMu guards read-modify-write cycles on the config file.
var saveMu sync.Mutex

func Save(cfg Config) error {
	return SaveTo(Path(), cfg)
}

func SaveTo(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// SaveShowPercentage persists the display toggle (read-modify-write).
func SaveShowPercentage(show bool) error {
	return SaveShowPercentageTo(Path(), show)
}

func SaveShowPercentageTo(path string, show bool) error {
	saveMu.Lock()
	defer saveMu.Unlock()

	cfg, err := LoadFrom(path)
	if err != nil {
		cfg = DefaultConfig()
	}
	cfg.ShowPercentage = show
	return SaveTo(path, cfg)
}
