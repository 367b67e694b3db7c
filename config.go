package folio

import (
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// SiteConfig holds all configuration for a folio site.
type SiteConfig struct {
	Name        string `yaml:"name"`        // Site name (default "Blog")
	URL         string `yaml:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `yaml:"description"` // Site description for RSS and JSON-LD
	Author      string `yaml:"author"`      // Author name for JSON-LD

	ContentDir string `yaml:"content_dir"` // Blog collection directory (default "content/blog")
	OutputDir  string `yaml:"output_dir"`  // Build artifact directory (default "dist")
	Addr       string `yaml:"addr"`        // Preview server listen address (default ":3000")

	PostCacheTTL time.Duration `yaml:"-"` // Preview post cache TTL (default 5min)
}

// LoadConfig reads a folio.yaml config file. A missing file is not an
// error: the site then runs entirely on defaults and env overrides.
// FOLIO_SITE_URL and FOLIO_ADDR take precedence over the file, so a
// deployed build can override the canonical URL without editing config.
func LoadConfig(path string) (SiteConfig, error) {
	var cfg SiteConfig
	raw, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return SiteConfig{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return SiteConfig{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.URL = EnvOr("FOLIO_SITE_URL", cfg.URL)
	cfg.Addr = EnvOr("FOLIO_ADDR", cfg.Addr)
	cfg.setDefaults()
	return cfg, nil
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content/blog"
	}
	if c.OutputDir == "" {
		c.OutputDir = "dist"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
}

// Option configures additional Site behavior.
type Option func(*Site)

// WithStaticDir sets the directory for user-owned static assets served by
// the preview server (default "public").
func WithStaticDir(dir string) Option {
	return func(s *Site) {
		s.staticDir = dir
	}
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("folio: required environment variable %s is not set", key)
	}
	return v
}
