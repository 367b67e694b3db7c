package folio

import "time"

// BlogPost is one validated entry of the blog content collection.
// Instances are produced by the frontmatter schema validator and are
// immutable for the lifetime of a build.
type BlogPost struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PubDate     time.Time `json:"pubDate"`
	Tags        []string  `json:"tags,omitempty"`  // nil when the frontmatter omits tags
	Image       string    `json:"image,omitempty"` // cover image path or URL, "" when unset
	Body        string    `json:"body"`            // markdown content below the frontmatter block
	Link        string    `json:"link"`
}

// DateString returns the post date in the canonical YYYY-MM-DD form used
// by the content index, sitemap, and JSON-LD artifacts.
func (p BlogPost) DateString() string {
	return p.PubDate.Format("2006-01-02")
}
