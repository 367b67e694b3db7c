package folio

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontmatterDelim = "---"

// SplitFrontmatter separates the YAML metadata block from the markdown
// body. The block is delimited by "---" lines at the very top of the file.
// A file without an opening delimiter has no frontmatter; the whole file
// is body. An opened but unterminated block is an error.
func SplitFrontmatter(raw []byte) (meta []byte, body string, err error) {
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	if !scanner.Scan() {
		return nil, "", nil
	}
	first := strings.TrimRight(scanner.Text(), "\r")
	if first != frontmatterDelim {
		return nil, string(raw), nil
	}

	var metaBuf strings.Builder
	closed := false
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == frontmatterDelim {
			closed = true
			break
		}
		metaBuf.WriteString(line)
		metaBuf.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, "", err
	}
	if !closed {
		return nil, "", fmt.Errorf("frontmatter block opened but never closed")
	}

	var bodyBuf strings.Builder
	for scanner.Scan() {
		bodyBuf.WriteString(scanner.Text())
		bodyBuf.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, "", err
	}
	return []byte(metaBuf.String()), strings.TrimLeft(bodyBuf.String(), "\n"), nil
}

// ParseFrontmatter decodes a YAML metadata block into a raw field mapping.
// Unquoted ISO dates decode to time.Time, which the schema validator
// accepts as the native-date branch of pubDate coercion.
func ParseFrontmatter(meta []byte) (map[string]any, error) {
	fm := map[string]any{}
	if len(bytes.TrimSpace(meta)) == 0 {
		return fm, nil
	}
	if err := yaml.Unmarshal(meta, &fm); err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return fm, nil
}
