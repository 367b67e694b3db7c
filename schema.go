package folio

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ErrorKind classifies a frontmatter validation failure.
type ErrorKind int

const (
	// MissingRequiredField means a required field is absent or empty.
	MissingRequiredField ErrorKind = iota
	// TypeMismatch means a field is present but has the wrong type.
	TypeMismatch
	// UnparseableDate means pubDate is present but not a calendar date.
	UnparseableDate
)

func (k ErrorKind) String() string {
	switch k {
	case MissingRequiredField:
		return "missing required field"
	case TypeMismatch:
		return "type mismatch"
	case UnparseableDate:
		return "unparseable date"
	default:
		return "unknown"
	}
}

// FieldError describes a single invalid frontmatter field. For sequence
// fields the offending element is named, e.g. "tags[1]".
type FieldError struct {
	Field  string
	Kind   ErrorKind
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Field, e.Kind, e.Reason)
}

// EntryError aggregates every field failure for one content file. A build
// never reports a subset: all invalid fields of an entry surface together.
type EntryError struct {
	File   string
	Fields []*FieldError
}

func (e *EntryError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return fmt.Sprintf("%s: invalid frontmatter: %s", e.File, strings.Join(msgs, "; "))
}

// ValidateFrontmatter checks a raw frontmatter mapping against the blog
// collection schema and returns the typed entry. Slug, Body, and Link are
// not part of the schema; the caller fills them in.
//
// Field checks are independent and every failure is reported, so a bad
// pubDate does not hide a missing description. A nil return for the error
// slice means the entry is valid.
func ValidateFrontmatter(fm map[string]any) (BlogPost, []*FieldError) {
	var post BlogPost
	var errs []*FieldError

	post.Title, errs = requireText(fm, "title", errs)
	post.Description, errs = requireText(fm, "description", errs)

	switch v := fm["pubDate"].(type) {
	case nil:
		errs = append(errs, &FieldError{Field: "pubDate", Kind: MissingRequiredField, Reason: "field is absent"})
	case time.Time:
		post.PubDate = v
	case string:
		t, err := dateparse.ParseStrict(v)
		if err != nil {
			errs = append(errs, &FieldError{Field: "pubDate", Kind: UnparseableDate, Reason: fmt.Sprintf("%q is not a calendar date", v)})
		} else {
			post.PubDate = t
		}
	default:
		errs = append(errs, &FieldError{Field: "pubDate", Kind: TypeMismatch, Reason: fmt.Sprintf("expected date or text, got %T", v)})
	}

	if v, ok := fm["tags"]; ok && v != nil {
		seq, ok := v.([]any)
		if !ok {
			errs = append(errs, &FieldError{Field: "tags", Kind: TypeMismatch, Reason: fmt.Sprintf("expected sequence of text, got %T", v)})
		} else {
			tags := make([]string, 0, len(seq))
			valid := true
			for i, el := range seq {
				s, ok := el.(string)
				if !ok {
					errs = append(errs, &FieldError{Field: fmt.Sprintf("tags[%d]", i), Kind: TypeMismatch, Reason: fmt.Sprintf("expected text, got %T", el)})
					valid = false
					continue
				}
				tags = append(tags, s)
			}
			if valid {
				post.Tags = tags
			}
		}
	}

	if v, ok := fm["image"]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			errs = append(errs, &FieldError{Field: "image", Kind: TypeMismatch, Reason: fmt.Sprintf("expected text, got %T", v)})
		} else {
			post.Image = s
		}
	}

	if errs != nil {
		return BlogPost{}, errs
	}
	return post, nil
}

// requireText enforces a required, non-empty text field.
func requireText(fm map[string]any, field string, errs []*FieldError) (string, []*FieldError) {
	v, ok := fm[field]
	if !ok || v == nil {
		return "", append(errs, &FieldError{Field: field, Kind: MissingRequiredField, Reason: "field is absent"})
	}
	s, ok := v.(string)
	if !ok {
		return "", append(errs, &FieldError{Field: field, Kind: TypeMismatch, Reason: fmt.Sprintf("expected text, got %T", v)})
	}
	if strings.TrimSpace(s) == "" {
		return "", append(errs, &FieldError{Field: field, Kind: MissingRequiredField, Reason: "field is empty"})
	}
	return s, errs
}
