// Package folio is a static blog and portfolio content toolchain built
// with Go, Echo, and templ. It loads a markdown content collection,
// validates every entry's frontmatter against the blog schema, and builds
// the artifacts a rendering layer consumes: a SQLite content index, an RSS
// feed, a sitemap, JSON-LD metadata, and rendered markdown fragments.
//
// Validation is a build-time gate: a collection with any invalid entry
// aborts the build and reports every offending file and field, so a site
// never publishes with malformed metadata.
package folio

// Site is the central folio application. It wires together configuration,
// the content collection, the build pipeline, and the preview server.
type Site struct {
	Config     SiteConfig
	Collection *Collection

	staticDir string
}

// New creates a Site with the given configuration.
func New(cfg SiteConfig, opts ...Option) *Site {
	cfg.setDefaults()

	s := &Site{
		Config:    cfg,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Load reads and validates the blog content collection. On failure the
// returned error joins one EntryError per invalid file; Collection stays
// nil and no artifact may be produced from this build.
func (s *Site) Load() error {
	coll, err := LoadCollection(s.Config.ContentDir)
	if err != nil {
		return err
	}
	s.Collection = coll
	return nil
}

// Check validates the collection without writing any artifacts.
func (s *Site) Check() error {
	return s.Load()
}
