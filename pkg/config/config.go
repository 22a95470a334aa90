// Package config holds the service configuration: TOML file values merged
// over defaults, validated once at startup. The environment handed to the
// extractor subprocess is built here as a per-call copy so that nothing
// mutates the ambient process environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration.
type Config struct {
	// Port the HTTP server listens on.
	Port int `toml:"port"`
	// ExtractorPath is the yt-dlp binary name or path.
	ExtractorPath string `toml:"extractor_path"`
	// ExtraPathDirs are appended to PATH for the extractor subprocess.
	// Hosted environments (CGI, systemd with a stripped PATH) often lack
	// the directories yt-dlp and its helpers are installed into.
	ExtraPathDirs []string `toml:"extra_path_dirs"`
	// TimeoutSec bounds a single extractor invocation.
	TimeoutSec int `toml:"timeout_sec"`
	// RateLimit is the sustained requests-per-second admission rate.
	RateLimit float64 `toml:"rate_limit"`
	// RateBurst is the admission burst capacity.
	RateBurst int `toml:"rate_burst"`
	// ProbeStreams enables the reachability probe of resolved stream URLs
	// unless a request overrides it with ?probe=.
	ProbeStreams bool `toml:"probe_streams"`
	// WebUI serves the test page on /.
	WebUI bool `toml:"web_ui"`
	// Debug enables verbose logging.
	Debug bool `toml:"debug"`
	// JSONLogs switches the log handler to JSON lines.
	JSONLogs bool `toml:"json_logs"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Port:          8080,
		ExtractorPath: "yt-dlp",
		ExtraPathDirs: []string{"/opt/homebrew/bin", "/usr/local/bin", "/usr/bin", "/bin"},
		TimeoutSec:    60,
		RateLimit:     100,
		RateBurst:     200,
	}
}

// Load reads the config file at path and merges it over defaults.
// An empty path or a missing file returns defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if strings.TrimSpace(c.ExtractorPath) == "" {
		return fmt.Errorf("extractor_path cannot be empty")
	}
	if c.TimeoutSec <= 0 {
		return fmt.Errorf("timeout_sec must be positive, got %d", c.TimeoutSec)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("rate_limit must be positive, got %v", c.RateLimit)
	}
	if c.RateBurst < 1 {
		return fmt.Errorf("rate_burst must be at least 1, got %d", c.RateBurst)
	}
	return nil
}

// Timeout returns the extractor timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// Environ returns a copy of the process environment with PATH extended by
// ExtraPathDirs. The ambient environment is never modified, so concurrent
// invocations cannot observe each other's PATH.
func (c *Config) Environ() []string {
	base := os.Environ()
	env := make([]string, 0, len(base)+1)

	extra := strings.Join(c.ExtraPathDirs, string(os.PathListSeparator))
	found := false
	for _, kv := range base {
		if !found && strings.HasPrefix(kv, "PATH=") {
			found = true
			if extra != "" {
				kv = kv + string(os.PathListSeparator) + extra
			}
		}
		env = append(env, kv)
	}
	if !found && extra != "" {
		env = append(env, "PATH="+extra)
	}
	return env
}
