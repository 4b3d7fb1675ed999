package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Bind != ":8080" {
		t.Fatalf("bind = %q, want :8080", cfg.Server.Bind)
	}
	if cfg.Extract.Backend != BackendYTDLP {
		t.Fatalf("backend = %q, want ytdlp", cfg.Extract.Backend)
	}
	if cfg.Cache.RedisAddr != "" {
		t.Fatal("cache enabled by default")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	doc := `
[server]
bind = "127.0.0.1:9090"

[extract]
backend = "native"
timeout_seconds = 10

[limits]
requests_per_second = 0
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Bind != "127.0.0.1:9090" {
		t.Fatalf("bind = %q", cfg.Server.Bind)
	}
	if cfg.Extract.Backend != BackendNative {
		t.Fatalf("backend = %q, want native", cfg.Extract.Backend)
	}
	if cfg.Extract.TimeoutSeconds != 10 {
		t.Fatalf("timeout = %d, want 10", cfg.Extract.TimeoutSeconds)
	}
	if cfg.Limits.RequestsPerSecond != 0 {
		t.Fatal("limiter not disabled")
	}
	// Unset sections keep defaults.
	if cfg.Extract.ClientProfile != "android" {
		t.Fatalf("client profile = %q, want android", cfg.Extract.ClientProfile)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Bind != ":8080" {
		t.Fatalf("bind = %q, want default", cfg.Server.Bind)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("AUDIOBRIDGE_BIND", ":7070")
	t.Setenv("AUDIOBRIDGE_BACKEND", "native")
	t.Setenv("YTDLP_PATH", "/opt/bin/yt-dlp")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Bind != ":7070" {
		t.Fatalf("bind = %q, want :7070", cfg.Server.Bind)
	}
	if cfg.Extract.Backend != BackendNative {
		t.Fatalf("backend = %q, want native", cfg.Extract.Backend)
	}
	if cfg.Extract.YTDLPPath != "/opt/bin/yt-dlp" {
		t.Fatalf("ytdlp path = %q", cfg.Extract.YTDLPPath)
	}
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	t.Setenv("AUDIOBRIDGE_BACKEND", "carrier-pigeon")
	if _, err := Load(""); err == nil {
		t.Fatal("Load() accepted unknown backend")
	}
}
