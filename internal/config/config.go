// Package config loads service configuration from an optional TOML file with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Supported extraction backends.
const (
	BackendYTDLP  = "ytdlp"
	BackendNative = "native"
)

// Server contains bind address configuration.
type Server struct {
	Bind string `toml:"bind"`
}

// Extract contains extraction backend configuration.
type Extract struct {
	// Backend selects the primary extraction path: "ytdlp" or "native".
	Backend string `toml:"backend"`
	// YTDLPPath overrides where the yt-dlp binary is looked up.
	YTDLPPath string `toml:"ytdlp_path"`
	// ClientProfile is the player client yt-dlp should impersonate.
	ClientProfile string `toml:"client_profile"`
	// CookiesFile is an optional Netscape cookies file handed to yt-dlp.
	CookiesFile string `toml:"cookies_file"`
	// TimeoutSeconds bounds a single extraction call.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Cache contains the optional Redis metadata cache configuration. The cache
// is disabled unless redis_addr is set.
type Cache struct {
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	TTLMinutes    int    `toml:"ttl_minutes"`
}

// Limits contains the request limiter configuration. A non-positive
// requests_per_second disables limiting.
type Limits struct {
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// Config is the root configuration document.
type Config struct {
	Server  Server  `toml:"server"`
	Extract Extract `toml:"extract"`
	Cache   Cache   `toml:"cache"`
	Limits  Limits  `toml:"limits"`
}

// Default returns the configuration used when no file or overrides exist.
func Default() *Config {
	return &Config{
		Server: Server{Bind: ":8080"},
		Extract: Extract{
			Backend:        BackendYTDLP,
			ClientProfile:  "android",
			TimeoutSeconds: 45,
		},
		Cache: Cache{TTLMinutes: 30},
		Limits: Limits{
			RequestsPerSecond: 100,
			Burst:             200,
		},
	}
}

// Load reads path when it exists, applies environment overrides, and
// validates the result. An empty path or a missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// Fall through to defaults.
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	applyEnv(cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("AUDIOBRIDGE_BIND"); v != "" {
		cfg.Server.Bind = v
	}
	if v := os.Getenv("AUDIOBRIDGE_BACKEND"); v != "" {
		cfg.Extract.Backend = v
	}
	if v := os.Getenv("YTDLP_PATH"); v != "" {
		cfg.Extract.YTDLPPath = v
	}
	if v := os.Getenv("AUDIOBRIDGE_COOKIES_FILE"); v != "" {
		cfg.Extract.CookiesFile = v
	}
	if v := os.Getenv("AUDIOBRIDGE_REDIS_ADDR"); v != "" {
		cfg.Cache.RedisAddr = v
	}
}

func (c *Config) validate() error {
	c.Extract.Backend = strings.ToLower(strings.TrimSpace(c.Extract.Backend))
	switch c.Extract.Backend {
	case BackendYTDLP, BackendNative:
	default:
		return fmt.Errorf("extract.backend: unknown backend %q", c.Extract.Backend)
	}
	if strings.TrimSpace(c.Server.Bind) == "" {
		return errors.New("server.bind must not be empty")
	}
	if c.Extract.TimeoutSeconds <= 0 {
		return errors.New("extract.timeout_seconds must be positive")
	}
	return nil
}
