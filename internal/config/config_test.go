package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Auth.Endpoint == "" {
		t.Error("default auth endpoint should not be empty")
	}
	if !strings.Contains(cfg.Auth.PodEndpoint, "%s") {
		t.Errorf("pod endpoint = %q, want a %%s template", cfg.Auth.PodEndpoint)
	}
	if cfg.AuthTimeout() != 30*time.Second {
		t.Errorf("default timeout = %v, want 30s", cfg.AuthTimeout())
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	content := `
[auth]
endpoint = "https://auth.example.com/v1"
timeout = "5s"

[ui]
show_secrets = true
`
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Auth.Endpoint != "https://auth.example.com/v1" {
		t.Errorf("endpoint = %q", cfg.Auth.Endpoint)
	}
	if cfg.AuthTimeout() != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", cfg.AuthTimeout())
	}
	if !cfg.UI.ShowSecrets {
		t.Error("show_secrets should be true")
	}
}

func TestLoad_NonExistentFile(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("Load() should return defaults for missing file, got error: %v", err)
	}
	if cfg.Auth.Endpoint == "" {
		t.Error("defaults should apply for missing file")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfgPath, []byte("not valid [[ toml"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(cfgPath)
	if err == nil {
		t.Fatal("Load() should return error for invalid TOML")
	}
	if !strings.Contains(err.Error(), "failed to parse config") {
		t.Errorf("error = %q, want it to contain %q", err.Error(), "failed to parse config")
	}
}

func TestAuthTimeout_BadValue(t *testing.T) {
	cfg := &Config{Auth: AuthConfig{Timeout: "soon"}}
	if cfg.AuthTimeout() != 30*time.Second {
		t.Errorf("timeout = %v, want 30s fallback", cfg.AuthTimeout())
	}
}

func TestConfigDir(t *testing.T) {
	t.Run("with XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")
		dir := ConfigDir()
		want := "/custom/config/asspp"
		if dir != want {
			t.Errorf("ConfigDir() = %q, want %q", dir, want)
		}
	})
	t.Run("without XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		dir := ConfigDir()
		if !strings.HasSuffix(dir, filepath.Join(".config", "asspp")) {
			t.Errorf("ConfigDir() = %q, want suffix %q", dir, filepath.Join(".config", "asspp"))
		}
	})
}

func TestDataDir(t *testing.T) {
	t.Run("with XDG_DATA_HOME", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", "/custom/data")
		dir := DataDir()
		want := "/custom/data/asspp"
		if dir != want {
			t.Errorf("DataDir() = %q, want %q", dir, want)
		}
	})
	t.Run("without XDG_DATA_HOME", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", "")
		dir := DataDir()
		if !strings.HasSuffix(dir, filepath.Join(".local", "share", "asspp")) {
			t.Errorf("DataDir() = %q, want suffix %q", dir, filepath.Join(".local", "share", "asspp"))
		}
	})
}
