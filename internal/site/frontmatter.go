package site

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

// Metadata is the structured frontmatter of a source document. All fields
// are optional; documents without frontmatter get a zero Metadata.
type Metadata struct {
	Title  string
	Author string
	Date   time.Time
	Draft  bool
	Custom map[string]any
}

type metadataEnvelope struct {
	Title  string         `yaml:"title"`
	Author string         `yaml:"author"`
	Date   time.Time      `yaml:"date"`
	Draft  bool           `yaml:"draft"`
	Custom map[string]any `yaml:",inline"`
}

// parseFrontMatter splits optional YAML frontmatter from the Markdown body.
func parseFrontMatter(src []byte) (Metadata, []byte, error) {
	var env metadataEnvelope

	body, err := frontmatter.Parse(bytes.NewReader(src), &env)
	if err != nil {
		return Metadata{}, nil, fmt.Errorf("site: parse frontmatter: %w", err)
	}

	custom := env.Custom
	if custom == nil {
		custom = map[string]any{}
	}

	return Metadata{
		Title:  env.Title,
		Author: env.Author,
		Date:   env.Date,
		Draft:  env.Draft,
		Custom: custom,
	}, body, nil
}

// documentTitle resolves the page title: frontmatter first, then the first
// Markdown heading, then the source file stem.
func documentTitle(meta Metadata, body []byte, sourceName string) string {
	if meta.Title != "" {
		return meta.Title
	}
	if h := firstHeading(body); h != "" {
		return h
	}
	return strings.TrimSuffix(sourceName, filepath.Ext(sourceName))
}

// firstHeading returns the text of the first ATX heading in body.
func firstHeading(body []byte) string {
	for _, line := range strings.Split(string(body), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			return strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		}
	}
	return ""
}
