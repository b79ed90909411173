package site

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts Markdown bodies into HTML fragments. It is stateless and
// safe to share across documents without locking.
type Renderer struct {
	engine goldmark.Markdown
}

// NewRenderer builds a goldmark engine with GFM and autolink extensions.
// Raw HTML in the source is passed through; documents are trusted local
// files, not user submissions.
func NewRenderer() *Renderer {
	engine := goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	return &Renderer{engine: engine}
}

// Render converts Markdown source into an HTML fragment.
func (r *Renderer) Render(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.engine.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("site: render markdown: %w", err)
	}
	return buf.Bytes(), nil
}
