package folio

import (
	"strings"
	"testing"
	"time"
)

func TestSplitFrontmatter(t *testing.T) {
	raw := []byte("---\ntitle: \"Hello\"\n---\n\n# Body\n\ntext\n")
	meta, body, err := SplitFrontmatter(raw)
	if err != nil {
		t.Fatalf("SplitFrontmatter failed: %v", err)
	}
	if !strings.Contains(string(meta), `title: "Hello"`) {
		t.Errorf("meta = %q, want title line", meta)
	}
	if !strings.HasPrefix(body, "# Body") {
		t.Errorf("body = %q, want markdown body", body)
	}
	if strings.Contains(body, "---") {
		t.Errorf("body should not contain delimiter: %q", body)
	}
}

func TestSplitFrontmatterNoBlock(t *testing.T) {
	raw := []byte("# Just a body\n")
	meta, body, err := SplitFrontmatter(raw)
	if err != nil {
		t.Fatalf("SplitFrontmatter failed: %v", err)
	}
	if meta != nil {
		t.Errorf("meta = %q, want nil", meta)
	}
	if body != "# Just a body\n" {
		t.Errorf("body = %q, want full file", body)
	}
}

func TestSplitFrontmatterUnterminated(t *testing.T) {
	raw := []byte("---\ntitle: oops\n")
	_, _, err := SplitFrontmatter(raw)
	if err == nil {
		t.Fatal("expected error for unterminated frontmatter block")
	}
}

func TestSplitFrontmatterCRLF(t *testing.T) {
	raw := []byte("---\r\ntitle: win\r\n---\r\nbody\r\n")
	meta, body, err := SplitFrontmatter(raw)
	if err != nil {
		t.Fatalf("SplitFrontmatter failed: %v", err)
	}
	if !strings.Contains(string(meta), "title: win") {
		t.Errorf("meta = %q, want title line", meta)
	}
	if !strings.Contains(body, "body") {
		t.Errorf("body = %q, want body text", body)
	}
}

func TestSplitFrontmatterEmptyFile(t *testing.T) {
	meta, body, err := SplitFrontmatter(nil)
	if err != nil {
		t.Fatalf("SplitFrontmatter failed: %v", err)
	}
	if meta != nil || body != "" {
		t.Errorf("got meta=%q body=%q, want empty", meta, body)
	}
}

func TestParseFrontmatterNativeDate(t *testing.T) {
	fm, err := ParseFrontmatter([]byte("pubDate: 2025-12-27\n"))
	if err != nil {
		t.Fatalf("ParseFrontmatter failed: %v", err)
	}
	d, ok := fm["pubDate"].(time.Time)
	if !ok {
		t.Fatalf("pubDate = %T, want time.Time", fm["pubDate"])
	}
	if d.Year() != 2025 || d.Month() != time.December || d.Day() != 27 {
		t.Errorf("pubDate = %v, want 2025-12-27", d)
	}
}

func TestParseFrontmatterQuotedDateStaysText(t *testing.T) {
	fm, err := ParseFrontmatter([]byte("pubDate: \"2025-12-27\"\n"))
	if err != nil {
		t.Fatalf("ParseFrontmatter failed: %v", err)
	}
	if _, ok := fm["pubDate"].(string); !ok {
		t.Fatalf("pubDate = %T, want string", fm["pubDate"])
	}
}

func TestParseFrontmatterEmpty(t *testing.T) {
	fm, err := ParseFrontmatter(nil)
	if err != nil {
		t.Fatalf("ParseFrontmatter failed: %v", err)
	}
	if len(fm) != 0 {
		t.Errorf("fm = %v, want empty map", fm)
	}
}

func TestParseFrontmatterInvalidYAML(t *testing.T) {
	_, err := ParseFrontmatter([]byte("title: [unclosed\n"))
	if err == nil {
		t.Fatal("expected error for invalid yaml")
	}
}
