package site

import (
	"strings"
	"testing"
)

func TestRenderBasicMarkdown(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render([]byte("# Hello\n\nSome **bold** text."))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	html := string(out)
	if !strings.Contains(html, "<h1 id=\"hello\">Hello</h1>") {
		t.Fatalf("heading not rendered with auto ID: %s", html)
	}
	if !strings.Contains(html, "<strong>bold</strong>") {
		t.Fatalf("bold not rendered: %s", html)
	}
}

func TestRenderGFMExtensions(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render([]byte("~~gone~~ and https://example.com\n"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	html := string(out)
	if !strings.Contains(html, "<del>gone</del>") {
		t.Fatalf("strikethrough not rendered: %s", html)
	}
	if !strings.Contains(html, "<a href=\"https://example.com\"") {
		t.Fatalf("bare URL not autolinked: %s", html)
	}
}

func TestRenderPassesRawHTMLThrough(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render([]byte("before\n\n<div class=\"x\">kept</div>\n"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(out), "<div class=\"x\">kept</div>") {
		t.Fatalf("raw HTML was escaped: %s", out)
	}
}
