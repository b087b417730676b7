// Package frontmatter reads ----delimited YAML metadata blocks from artifact
// documents. The projection engine emits documents by hand; this package is
// the read side, used when importing existing artifacts into the record store
// and by tests that round-trip emitted documents.
package frontmatter

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Result contains the split frontmatter and remaining content.
type Result struct {
	// Frontmatter contains the raw metadata bytes between the delimiters.
	Frontmatter []byte
	// Content contains the document body after the closing delimiter.
	Content string
	// Found indicates whether a complete metadata block was present.
	Found bool
}

// Split extracts a leading ----delimited metadata block from a document.
// Documents without a complete block are returned whole as content.
func Split(content []byte) Result {
	if !bytes.HasPrefix(content, []byte("---\n")) && !bytes.HasPrefix(content, []byte("---\r\n")) {
		return Result{Content: string(content)}
	}

	remaining := content[len("---"):]
	if bytes.HasPrefix(remaining, []byte("\r\n")) {
		remaining = remaining[2:]
	} else {
		remaining = remaining[1:]
	}

	var block []byte
	var bodyStart int
	switch {
	case bytes.HasPrefix(remaining, []byte("---")):
		// Empty metadata block.
		block = []byte{}
		bodyStart = len("---")
	default:
		idx := bytes.Index(remaining, []byte("\n---"))
		if idx == -1 {
			// No closing delimiter; treat as plain content.
			return Result{Content: string(content)}
		}
		block = remaining[:idx]
		bodyStart = idx + len("\n---")
	}

	body := remaining[bodyStart:]
	if bytes.HasPrefix(body, []byte("\r\n")) {
		body = body[2:]
	} else if bytes.HasPrefix(body, []byte("\n")) {
		body = body[1:]
	}

	block = bytes.ReplaceAll(block, []byte("\r\n"), []byte("\n"))
	block = bytes.TrimRight(block, "\r")

	return Result{
		Frontmatter: block,
		Content:     string(body),
		Found:       true,
	}
}

// Parse decodes a metadata block as YAML into a generic map.
func Parse(frontmatter []byte) (map[string]any, error) {
	if len(frontmatter) == 0 {
		return map[string]any{}, nil
	}
	var result map[string]any
	if err := yaml.Unmarshal(frontmatter, &result); err != nil {
		return nil, fmt.Errorf("parse YAML frontmatter: %w", err)
	}
	return result, nil
}

// String returns the string value for key, if present.
func String(fm map[string]any, key string) string {
	if v, ok := fm[key].(string); ok {
		return v
	}
	return ""
}

// Bool returns the boolean value for key, if present.
func Bool(fm map[string]any, key string) bool {
	if v, ok := fm[key].(bool); ok {
		return v
	}
	return false
}

// StringList returns the value for key as a list of strings. Both YAML
// sequences and comma-joined scalars (the claude frontmatter convention) are
// accepted.
func StringList(fm map[string]any, key string) []string {
	switch v := fm[key].(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	default:
		return nil
	}
}

// NormalizeContent trims surrounding whitespace and normalizes line endings.
func NormalizeContent(content string) string {
	return strings.ReplaceAll(strings.TrimSpace(content), "\r\n", "\n")
}

// ValidateName checks that a record name is safe to use as a filename
// component. Valid names contain only alphanumerics, hyphens, and
// underscores.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if strings.TrimSpace(name) != name {
		return fmt.Errorf("name cannot have leading/trailing whitespace: %q", name)
	}
	for _, r := range name {
		if !isNameChar(r) {
			return fmt.Errorf("name contains invalid character %q: %q", r, name)
		}
	}
	return nil
}

func isNameChar(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') ||
		r == '-' || r == '_'
}
