package folio

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeContent creates a content directory with the given files.
func writeContent(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

const postOne = `---
title: "First Post"
description: "The first one"
pubDate: "2025-01-10"
tags:
  - go
  - web
---

# First

body one
`

const postTwo = `---
title: "Second Post"
description: "The second one"
pubDate: 2025-03-05
tags:
  - go
image: "/covers/second.jpg"
---

body two
`

func TestLoadCollection(t *testing.T) {
	dir := writeContent(t, map[string]string{
		"first-post.md":  postOne,
		"second-post.md": postTwo,
	})

	coll, err := LoadCollection(dir)
	if err != nil {
		t.Fatalf("LoadCollection failed: %v", err)
	}
	if coll.Len() != 2 {
		t.Fatalf("Len = %d, want 2", coll.Len())
	}

	posts := coll.Posts()
	// Newest first.
	if posts[0].Slug != "second-post" || posts[1].Slug != "first-post" {
		t.Errorf("order = [%s %s], want [second-post first-post]", posts[0].Slug, posts[1].Slug)
	}
	if posts[0].Link != "/blog/second-post" {
		t.Errorf("Link = %q, want /blog/second-post", posts[0].Link)
	}
	if posts[0].Image != "/covers/second.jpg" {
		t.Errorf("Image = %q, want /covers/second.jpg", posts[0].Image)
	}
	if !strings.Contains(posts[1].Body, "body one") {
		t.Errorf("Body = %q, want markdown body", posts[1].Body)
	}
}

func TestLoadCollectionGet(t *testing.T) {
	dir := writeContent(t, map[string]string{"first-post.md": postOne})
	coll, err := LoadCollection(dir)
	if err != nil {
		t.Fatalf("LoadCollection failed: %v", err)
	}
	post, ok := coll.Get("first-post")
	if !ok {
		t.Fatal("Get(first-post) not found")
	}
	if post.Title != "First Post" {
		t.Errorf("Title = %q, want %q", post.Title, "First Post")
	}
	if _, ok := coll.Get("missing"); ok {
		t.Error("Get(missing) should not be found")
	}
}

func TestLoadCollectionTags(t *testing.T) {
	dir := writeContent(t, map[string]string{
		"first-post.md":  postOne,
		"second-post.md": postTwo,
	})
	coll, err := LoadCollection(dir)
	if err != nil {
		t.Fatalf("LoadCollection failed: %v", err)
	}
	tags := coll.Tags()
	if len(tags) != 2 || tags[0] != "go" || tags[1] != "web" {
		t.Errorf("Tags = %v, want [go web]", tags)
	}
	byTag := coll.ByTag("go")
	if len(byTag) != 2 {
		t.Errorf("ByTag(go) = %d posts, want 2", len(byTag))
	}
	byTag = coll.ByTag("web")
	if len(byTag) != 1 || byTag[0].Slug != "first-post" {
		t.Errorf("ByTag(web) = %v, want [first-post]", byTag)
	}
}

func TestLoadCollectionSkipsUnderscoreFiles(t *testing.T) {
	dir := writeContent(t, map[string]string{
		"first-post.md": postOne,
		"_draft.md":     "not even valid frontmatter",
	})
	coll, err := LoadCollection(dir)
	if err != nil {
		t.Fatalf("LoadCollection failed: %v", err)
	}
	if coll.Len() != 1 {
		t.Errorf("Len = %d, want 1", coll.Len())
	}
}

func TestLoadCollectionReportsEveryInvalidFile(t *testing.T) {
	dir := writeContent(t, map[string]string{
		"good.md": postOne,
		"no-title.md": `---
description: "A post"
pubDate: "2025-12-27"
---
body
`,
		"bad-date.md": `---
title: "Hello"
description: "A post"
pubDate: "not-a-date"
---
body
`,
	})

	_, err := LoadCollection(dir)
	if err == nil {
		t.Fatal("expected validation failure")
	}
	msg := err.Error()
	if !strings.Contains(msg, "no-title.md") || !strings.Contains(msg, "title") {
		t.Errorf("error should name no-title.md and its field: %v", msg)
	}
	if !strings.Contains(msg, "bad-date.md") || !strings.Contains(msg, "pubDate") {
		t.Errorf("error should name bad-date.md and its field: %v", msg)
	}

	var entryErr *EntryError
	if !errors.As(err, &entryErr) {
		t.Errorf("joined error should contain an *EntryError: %v", err)
	}
}

func TestLoadCollectionDuplicateSlug(t *testing.T) {
	dir := writeContent(t, map[string]string{
		"my-post.md": postOne,
		"My Post.md": postTwo,
	})
	_, err := LoadCollection(dir)
	if err == nil {
		t.Fatal("expected duplicate slug error")
	}
	if !strings.Contains(err.Error(), "duplicate slug") {
		t.Errorf("error = %v, want duplicate slug", err)
	}
}

func TestParseEntryNoFrontmatter(t *testing.T) {
	dir := writeContent(t, map[string]string{"bare.md": "# no metadata\n"})
	_, err := ParseEntry(filepath.Join(dir, "bare.md"))
	if err == nil {
		t.Fatal("expected validation failure for file without frontmatter")
	}
	var entryErr *EntryError
	if !errors.As(err, &entryErr) {
		t.Fatalf("error = %T, want *EntryError", err)
	}
	if findField(entryErr.Fields, "title") == nil {
		t.Errorf("expected missing title error, got %v", entryErr.Fields)
	}
}
