package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all asspp configuration.
type Config struct {
	Auth AuthConfig `toml:"auth"`
	UI   UIConfig   `toml:"ui"`
}

// AuthConfig holds the authentication backend settings. PodEndpoint is a
// URL template with one %s verb substituted with an account's pod hint.
type AuthConfig struct {
	Endpoint    string `toml:"endpoint"`
	PodEndpoint string `toml:"pod_endpoint"`
	Timeout     string `toml:"timeout"`
}

// UIConfig holds TUI display settings.
type UIConfig struct {
	ShowSecrets bool   `toml:"show_secrets"`
	Theme       string `toml:"theme"`
}

func defaults() Config {
	return Config{
		Auth: AuthConfig{
			Endpoint:    "https://buy.itunes.apple.com/auth/v1/native/fast",
			PodEndpoint: "https://%s-buy.itunes.apple.com/auth/v1/native/fast",
			Timeout:     "30s",
		},
		UI: UIConfig{
			Theme: "default",
		},
	}
}

// Load reads config from path. If path is empty, returns defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path == "" {
		return &cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// AuthTimeout parses the configured timeout, falling back to 30s on a bad or
// empty value.
func (c *Config) AuthTimeout() time.Duration {
	d, err := time.ParseDuration(c.Auth.Timeout)
	if err != nil || d < 0 {
		return 30 * time.Second
	}
	return d
}

// ConfigDir returns the asspp config directory path.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "asspp")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "asspp")
}

// DataDir returns the asspp data directory path.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "asspp")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "asspp")
}
