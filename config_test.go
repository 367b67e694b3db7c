package folio

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Name != "Blog" {
		t.Errorf("Name = %q, want Blog", cfg.Name)
	}
	if cfg.URL != "http://localhost:3000" {
		t.Errorf("URL = %q, want http://localhost:3000", cfg.URL)
	}
	if cfg.ContentDir != "content/blog" {
		t.Errorf("ContentDir = %q, want content/blog", cfg.ContentDir)
	}
	if cfg.OutputDir != "dist" {
		t.Errorf("OutputDir = %q, want dist", cfg.OutputDir)
	}
	if cfg.Addr != ":3000" {
		t.Errorf("Addr = %q, want :3000", cfg.Addr)
	}
	if cfg.PostCacheTTL != 5*time.Minute {
		t.Errorf("PostCacheTTL = %v, want 5m", cfg.PostCacheTTL)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.yaml")
	raw := `name: "My Site"
url: "https://example.com"
description: "A blog"
author: "Jane"
content_dir: "posts"
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Name != "My Site" {
		t.Errorf("Name = %q, want My Site", cfg.Name)
	}
	if cfg.URL != "https://example.com" {
		t.Errorf("URL = %q, want https://example.com", cfg.URL)
	}
	if cfg.ContentDir != "posts" {
		t.Errorf("ContentDir = %q, want posts", cfg.ContentDir)
	}
	// Unset fields still default.
	if cfg.OutputDir != "dist" {
		t.Errorf("OutputDir = %q, want dist", cfg.OutputDir)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("FOLIO_SITE_URL", "https://override.example.com")
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.URL != "https://override.example.com" {
		t.Errorf("URL = %q, want env override", cfg.URL)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.yaml")
	if err := os.WriteFile(path, []byte("name: [broken"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for invalid yaml")
	}
}

func TestEnvOr(t *testing.T) {
	t.Setenv("FOLIO_TEST_VAR", "set")
	if got := EnvOr("FOLIO_TEST_VAR", "fallback"); got != "set" {
		t.Errorf("EnvOr = %q, want set", got)
	}
	if got := EnvOr("FOLIO_TEST_UNSET_VAR", "fallback"); got != "fallback" {
		t.Errorf("EnvOr = %q, want fallback", got)
	}
}
