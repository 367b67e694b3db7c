package folio

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store wraps the SQLite content index that each build writes into the
// output directory. The index is a build artifact: the build replaces it
// wholesale, and the preview server (or any downstream rendering layer)
// only reads it.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the content index at path, ensures the
// parent directory exists, and runs schema setup.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL with a busy timeout lets the preview server read while a build
	// rewrites the index. synchronous=NORMAL is safe with WAL and avoids
	// an fsync per transaction.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    date TEXT NOT NULL,
    tags TEXT NOT NULL,
    image TEXT NOT NULL DEFAULT '',
    body TEXT NOT NULL
);
`)
	return err
}

// ReplaceAll rewrites the index with the given collection in a single
// transaction, so readers never observe a half-written build.
func (s *Store) ReplaceAll(posts []BlogPost) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM posts`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO posts (slug, title, description, date, tags, image, body) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range posts {
		if _, err := stmt.Exec(p.Slug, p.Title, p.Description, p.DateString(), encodeTags(p.Tags), p.Image, p.Body); err != nil {
			return fmt.Errorf("index post %s: %w", p.Slug, err)
		}
	}
	return tx.Commit()
}

// ListPosts returns all indexed posts ordered by date descending. If tag
// is non-empty, results are filtered to posts carrying that tag.
func (s *Store) ListPosts(tag string) ([]BlogPost, error) {
	var rows *sql.Rows
	var err error
	if tag == "" {
		rows, err = s.db.Query(`SELECT slug, title, description, date, tags, image, body FROM posts ORDER BY date DESC, slug ASC`)
	} else {
		normalized := strings.ToLower(strings.TrimSpace(tag))
		rows, err = s.db.Query(`SELECT slug, title, description, date, tags, image, body FROM posts WHERE instr(lower(tags), ',' || ? || ',') > 0 ORDER BY date DESC, slug ASC`, normalized)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []BlogPost
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ListTags returns a sorted, deduplicated slice of all tags in the index.
func (s *Store) ListTags() ([]string, error) {
	rows, err := s.db.Query(`SELECT tags FROM posts`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := make(map[string]struct{})
	for rows.Next() {
		var tags string
		if err := rows.Scan(&tags); err != nil {
			return nil, err
		}
		for _, t := range ParseTags(tags) {
			set[strings.ToLower(t)] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	var result []string
	for t := range set {
		result = append(result, t)
	}
	sort.Strings(result)
	return result, nil
}

// GetPost returns a single indexed post by slug.
func (s *Store) GetPost(slug string) (BlogPost, error) {
	row := s.db.QueryRow(`SELECT slug, title, description, date, tags, image, body FROM posts WHERE slug = ?`, slug)
	return scanPost(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(r rowScanner) (BlogPost, error) {
	var slug, title, description, date, tags, image, body string
	if err := r.Scan(&slug, &title, &description, &date, &tags, &image, &body); err != nil {
		return BlogPost{}, err
	}
	pubDate, err := time.Parse("2006-01-02", date)
	if err != nil {
		return BlogPost{}, fmt.Errorf("index post %s: bad date %q: %w", slug, date, err)
	}
	return BlogPost{
		Slug:        slug,
		Title:       title,
		Description: description,
		PubDate:     pubDate,
		Tags:        ParseTags(tags),
		Image:       image,
		Body:        body,
		Link:        "/blog/" + slug,
	}, nil
}

// encodeTags stores tags as a comma-wrapped string (",go,web,") so the
// tag filter can match with instr on delimiter boundaries.
func encodeTags(tags []string) string {
	if len(tags) == 0 {
		return ","
	}
	return "," + strings.Join(tags, ",") + ","
}

// ParseTags splits a comma-delimited tag string (e.g. ",go,web,") into a slice.
func ParseTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	return FilterEmpty(strings.Split(tagString, ","))
}
