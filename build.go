package folio

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"folio/markdown"
)

// Build validates the content collection and writes every build artifact
// to the output directory: the SQLite content index, feed.xml,
// sitemap.xml, JSON-LD metadata documents, and rendered markdown
// fragments. Validation runs to completion before anything is written, so
// a failing collection produces no partial artifacts.
func (s *Site) Build() error {
	if err := s.Load(); err != nil {
		return err
	}
	posts := s.Collection.Posts()

	out := s.Config.OutputDir
	if err := os.MkdirAll(out, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if err := s.writeIndex(posts); err != nil {
		return err
	}
	if err := s.writeFeed(posts); err != nil {
		return err
	}
	if err := s.writeSitemap(posts); err != nil {
		return err
	}
	if err := s.writeMeta(posts); err != nil {
		return err
	}
	if err := s.writeFragments(posts); err != nil {
		return err
	}

	log.Printf("folio: built %d posts into %s", len(posts), out)
	return nil
}

func (s *Site) writeIndex(posts []BlogPost) error {
	store, err := NewStore(s.IndexPath())
	if err != nil {
		return fmt.Errorf("open content index: %w", err)
	}
	defer store.Close()

	if err := store.ReplaceAll(posts); err != nil {
		return fmt.Errorf("write content index: %w", err)
	}
	return nil
}

func (s *Site) writeFeed(posts []BlogPost) error {
	var buf bytes.Buffer
	if err := WriteFeed(&buf, s.Config, posts); err != nil {
		return fmt.Errorf("build feed: %w", err)
	}
	return os.WriteFile(filepath.Join(s.Config.OutputDir, "feed.xml"), buf.Bytes(), 0o644)
}

func (s *Site) writeSitemap(posts []BlogPost) error {
	var buf bytes.Buffer
	if err := WriteSitemap(&buf, s.Config, posts); err != nil {
		return fmt.Errorf("build sitemap: %w", err)
	}
	return os.WriteFile(filepath.Join(s.Config.OutputDir, "sitemap.xml"), buf.Bytes(), 0o644)
}

// writeMeta emits the JSON-LD documents the rendering layer injects into
// page heads: one WebSite document plus one BlogPosting per entry.
func (s *Site) writeMeta(posts []BlogPost) error {
	dir := filepath.Join(s.Config.OutputDir, "meta")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "site.json"), []byte(WebsiteJsonLD(s.Config)), 0o644); err != nil {
		return err
	}
	for _, p := range posts {
		path := filepath.Join(dir, p.Slug+".json")
		if err := os.WriteFile(path, []byte(BlogPostingJsonLD(p, s.Config)), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func (s *Site) writeFragments(posts []BlogPost) error {
	dir := filepath.Join(s.Config.OutputDir, "fragments")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, p := range posts {
		var buf bytes.Buffer
		markdown.Render(&buf, p.Body)
		path := filepath.Join(dir, p.Slug+".html")
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return err
		}
	}
	return nil
}

// IndexPath returns the location of the SQLite content index artifact.
func (s *Site) IndexPath() string {
	return filepath.Join(s.Config.OutputDir, "content.db")
}
