package folio

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello World", "hello-world"},
		{"My Post!", "my-post"},
		{"  spaces  ", "spaces"},
		{"already-a-slug", "already-a-slug"},
		{"Caché & Crème", "cach-cr-me"},
		{"2025 Year In Review", "2025-year-in-review"},
	}
	for _, tt := range tests {
		got := Slugify(tt.input)
		if got != tt.expected {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		expected string
	}{
		{"https://example.com", nil, "https://example.com"},
		{"https://example.com", []string{"blog", "hello"}, "https://example.com/blog/hello/"},
		{"https://example.com/sub", []string{"blog"}, "https://example.com/sub/blog/"},
	}
	for _, tt := range tests {
		got := BuildURL(tt.base, tt.segments...)
		if got != tt.expected {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.expected)
		}
	}
}

func TestRelatedPosts(t *testing.T) {
	current := testPost("current", "2024-01-01", "go", "web")
	posts := []BlogPost{
		current,
		testPost("shares-go", "2024-01-02", "Go"),
		testPost("shares-none", "2024-01-03", "rust"),
		testPost("shares-web", "2024-01-04", "web", "css"),
	}
	related := RelatedPosts(current, posts)
	if len(related) != 2 {
		t.Fatalf("len = %d, want 2: %v", len(related), related)
	}
	if related[0].Slug != "shares-go" || related[1].Slug != "shares-web" {
		t.Errorf("related = [%s %s], want [shares-go shares-web]", related[0].Slug, related[1].Slug)
	}
}

func TestBlogPostingJsonLD(t *testing.T) {
	cfg := SiteConfig{Name: "My Site", URL: "https://example.com", Author: "Jane"}
	post := testPost("hello", "2025-12-27", "go")
	post.Image = "/covers/hello.jpg"

	got := BlogPostingJsonLD(post, cfg)
	for _, want := range []string{
		`"headline":"Title of hello"`,
		`"datePublished":"2025-12-27"`,
		`"url":"https://example.com/blog/hello/"`,
		`"image":"/covers/hello.jpg"`,
		`"keywords":"go"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("JSON-LD %q missing %q", got, want)
		}
	}
}

func TestWebsiteJsonLD(t *testing.T) {
	cfg := SiteConfig{Name: "My Site", URL: "https://example.com", Description: "A site"}
	got := WebsiteJsonLD(cfg)
	if !strings.Contains(got, `"@type":"WebSite"`) || !strings.Contains(got, `"name":"My Site"`) {
		t.Errorf("JSON-LD = %q, want WebSite schema", got)
	}
}

func TestFilterEmpty(t *testing.T) {
	got := FilterEmpty([]string{"a", " ", "", "b "})
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("FilterEmpty = %v, want [a b]", got)
	}
}
