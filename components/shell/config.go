package shell

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the file/env configuration of a shell deployment.
type Config struct {
	BasePath      string        `yaml:"base_path"`
	HomePath      string        `yaml:"home_path"`
	Addr          string        `yaml:"addr"`
	MetricsAddr   string        `yaml:"metrics_addr"`
	LogLevel      string        `yaml:"log_level"`
	LogFormat     string        `yaml:"log_format"`
	Manifest      string        `yaml:"manifest"`
	Match         string        `yaml:"match"`
	Notifications int           `yaml:"notifications"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
	Layout        Widths        `yaml:"layout"`
	Branding      Branding      `yaml:"branding"`
	Charts        ChartConfig   `yaml:"charts"`
}

// ChartConfig tunes the CRM page chart rendering.
type ChartConfig struct {
	Theme      string        `yaml:"theme"`
	AssetsHost string        `yaml:"assets_host"`
	CacheTTL   time.Duration `yaml:"cache_ttl"`
}

// DefaultConfig returns a config usable without any file.
func DefaultConfig() Config {
	return Config{
		BasePath:      "/admin",
		HomePath:      DefaultHomePath,
		Addr:          ":8080",
		MetricsAddr:   ":9090",
		LogLevel:      "info",
		LogFormat:     "console",
		Match:         MatchLiteralPrefix.String(),
		Notifications: 3,
		SessionTTL:    DefaultSessionTTL,
		Layout:        DefaultWidths(),
		Branding:      DefaultBranding(),
		Charts: ChartConfig{
			CacheTTL: 5 * time.Minute,
		},
	}
}

// LoadConfig reads path (optional) over the defaults, then applies env overrides.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec
		if err != nil {
			return Config{}, fmt.Errorf("shell: read config %s: %w", path, err)
		}
		if err := decodeConfig(bytes.NewReader(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("shell: config %s: %w", path, err)
		}
	}
	cfg.applyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeConfig(r io.Reader, cfg *Config) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	overrides := map[string]*string{
		"SHELL_ADDR":               &c.Addr,
		"SHELL_METRICS_ADDR":       &c.MetricsAddr,
		"SHELL_LOG_LEVEL":          &c.LogLevel,
		"SHELL_MATCH":              &c.Match,
		"SHELL_MANIFEST":           &c.Manifest,
		"SHELL_CHARTS_ASSETS_HOST": &c.Charts.AssetsHost,
	}
	for key, target := range overrides {
		if value := strings.TrimSpace(getenv(key)); value != "" {
			*target = value
		}
	}
}

// Validate checks the config values.
func (c Config) Validate() error {
	if _, err := ParseMatchMode(c.Match); err != nil {
		return err
	}
	if c.BasePath != "" && !strings.HasPrefix(c.BasePath, "/") {
		return fmt.Errorf("shell: base_path %q must start with /", c.BasePath)
	}
	if !strings.HasPrefix(c.HomePath, "/") {
		return fmt.Errorf("shell: home_path %q must start with /", c.HomePath)
	}
	if c.Layout.CollapsedWidth < 0 || c.Layout.ExpandedWidth < 0 || c.Layout.HeaderHeight < 0 {
		return errors.New("shell: layout dimensions cannot be negative")
	}
	if c.Layout.CollapsedWidth > 0 && c.Layout.ExpandedWidth > 0 && c.Layout.CollapsedWidth >= c.Layout.ExpandedWidth {
		return errors.New("shell: collapsed_width must be smaller than expanded_width")
	}
	if c.SessionTTL < 0 {
		return errors.New("shell: session_ttl cannot be negative")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("shell: unknown log_level %q", c.LogLevel)
	}
	return nil
}

// MatchMode returns the parsed match mode; Validate has already rejected unknown values.
func (c Config) MatchMode() MatchMode {
	mode, _ := ParseMatchMode(c.Match)
	return mode
}
