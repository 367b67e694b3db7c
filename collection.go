package folio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Collection is the validated blog content collection for a single build.
// It is loaded once, never mutated, and discarded when the build ends.
type Collection struct {
	posts  []BlogPost
	bySlug map[string]BlogPost
}

// LoadCollection reads every markdown file under dir, validates its
// frontmatter against the blog schema, and returns the collection.
//
// The load is fail-fast at the build level: if any entry is invalid the
// whole collection is rejected. It is report-all at the error level: the
// returned error joins an EntryError for every invalid file, so one run
// surfaces every problem. Files whose names start with "_" are skipped.
func LoadCollection(dir string) (*Collection, error) {
	var posts []BlogPost
	var errs []error
	bySlug := map[string]BlogPost{}
	seen := map[string]string{} // slug -> source file

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") || strings.HasPrefix(d.Name(), "_") {
			return nil
		}

		post, perr := ParseEntry(path)
		if perr != nil {
			errs = append(errs, perr)
			return nil
		}
		if prev, ok := seen[post.Slug]; ok {
			errs = append(errs, fmt.Errorf("%s: duplicate slug %q (already used by %s)", path, post.Slug, prev))
			return nil
		}
		seen[post.Slug] = path
		posts = append(posts, post)
		bySlug[post.Slug] = post
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load collection: %w", err)
	}
	if errs != nil {
		return nil, errors.Join(errs...)
	}

	// Newest first; slug tie-break keeps the order deterministic.
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].PubDate.Equal(posts[j].PubDate) {
			return posts[i].PubDate.After(posts[j].PubDate)
		}
		return posts[i].Slug < posts[j].Slug
	})

	return &Collection{posts: posts, bySlug: bySlug}, nil
}

// ParseEntry reads one markdown file, extracts its frontmatter, and
// validates it. The slug is derived from the file name, so the path is
// the entry's identity.
func ParseEntry(path string) (BlogPost, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return BlogPost{}, fmt.Errorf("read %s: %w", path, err)
	}

	meta, body, err := SplitFrontmatter(raw)
	if err != nil {
		return BlogPost{}, fmt.Errorf("%s: %w", path, err)
	}
	fm, err := ParseFrontmatter(meta)
	if err != nil {
		return BlogPost{}, fmt.Errorf("%s: %w", path, err)
	}

	post, fieldErrs := ValidateFrontmatter(fm)
	if fieldErrs != nil {
		return BlogPost{}, &EntryError{File: path, Fields: fieldErrs}
	}

	post.Slug = Slugify(strings.TrimSuffix(filepath.Base(path), ".md"))
	post.Body = body
	post.Link = "/blog/" + post.Slug
	return post, nil
}

// Posts returns all entries ordered by publication date descending.
func (c *Collection) Posts() []BlogPost {
	return c.posts
}

// Get returns the entry with the given slug.
func (c *Collection) Get(slug string) (BlogPost, bool) {
	p, ok := c.bySlug[slug]
	return p, ok
}

// Len returns the number of entries in the collection.
func (c *Collection) Len() int {
	return len(c.posts)
}

// Tags returns a sorted, deduplicated list of all tags in the collection,
// normalized to lowercase.
func (c *Collection) Tags() []string {
	set := make(map[string]struct{})
	for _, p := range c.posts {
		for _, t := range p.Tags {
			if s := strings.ToLower(strings.TrimSpace(t)); s != "" {
				set[s] = struct{}{}
			}
		}
	}
	var tags []string
	for t := range set {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// ByTag returns the entries carrying the given tag, case-insensitively,
// preserving collection order.
func (c *Collection) ByTag(tag string) []BlogPost {
	want := strings.ToLower(strings.TrimSpace(tag))
	var out []BlogPost
	for _, p := range c.posts {
		for _, t := range p.Tags {
			if strings.ToLower(strings.TrimSpace(t)) == want {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
