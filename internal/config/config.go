// Package config provides configuration management for vwww.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/vwww/pkg/md"
)

// Config holds the vwww configuration.
type Config struct {
	Markdown MarkdownConfig `yaml:"markdown"`
	NoColor  bool           `yaml:"no_color,omitempty"`
}

// MarkdownConfig controls how page bodies are rendered.
type MarkdownConfig struct {
	Extensions []string `yaml:"extensions,omitempty"`
	EscapeHTML bool     `yaml:"escape_html,omitempty"`
	HardWraps  bool     `yaml:"hard_wraps,omitempty"`
	HeadingIDs bool     `yaml:"heading_ids,omitempty"`
}

// Validate checks that every configured markdown extension is supported.
func (c *Config) Validate() error {
	for _, name := range c.Markdown.Extensions {
		if strings.TrimSpace(name) == "" {
			return errors.New("markdown extension name is empty")
		}
		if !md.IsExtension(name) {
			return fmt.Errorf("unknown markdown extension %q (supported: %s)", name, strings.Join(md.ExtensionNames(), ", "))
		}
	}
	return nil
}

// RenderOptions returns the renderer options for this configuration.
func (c *Config) RenderOptions() md.Options {
	return md.Options{
		Extensions: c.Markdown.Extensions,
		EscapeHTML: c.Markdown.EscapeHTML,
		HardWraps:  c.Markdown.HardWraps,
		HeadingIDs: c.Markdown.HeadingIDs,
	}
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
// Precedence: VWWW_* → NO_COLOR → existing config value
func (c *Config) LoadFromEnv() error {
	if exts := os.Getenv("VWWW_EXTENSIONS"); exts != "" {
		c.Markdown.Extensions = SplitList(exts)
	}
	if err := envBool("VWWW_ESCAPE_HTML", &c.Markdown.EscapeHTML); err != nil {
		return err
	}
	if err := envBool("VWWW_HARD_WRAPS", &c.Markdown.HardWraps); err != nil {
		return err
	}
	if err := envBool("VWWW_HEADING_IDS", &c.Markdown.HeadingIDs); err != nil {
		return err
	}
	// NO_COLOR only needs to be present; VWWW_NO_COLOR is a boolean.
	if os.Getenv("VWWW_NO_COLOR") != "" {
		return envBool("VWWW_NO_COLOR", &c.NoColor)
	}
	if os.Getenv("NO_COLOR") != "" {
		c.NoColor = true
	}
	return nil
}

// EnvVars lists the environment variables LoadFromEnv reads.
var EnvVars = []string{
	"VWWW_EXTENSIONS",
	"VWWW_ESCAPE_HTML",
	"VWWW_HARD_WRAPS",
	"VWWW_HEADING_IDS",
	"VWWW_NO_COLOR",
	"NO_COLOR",
}

func envBool(name string, dst *bool) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %q", name, v)
	}
	*dst = b
	return nil
}

// SplitList splits a comma-separated list, dropping blank entries.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "vwww", "config.yml")
	}

	// Fall back to ~/.config/vwww/config.yml
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".vwww", "config.yml")
	}

	return filepath.Join(home, ".config", "vwww", "config.yml")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment
// variables. A missing file yields the defaults; a malformed one is an error.
// The result is validated.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg = &Config{}
	}

	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
