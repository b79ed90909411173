package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
)

const (
	configInvalidCode = "SITE_CONFIG_INVALID"
	sourceMissingCode = "SITE_SOURCE_MISSING"
	markdownExtension = ".md"
	outputFileMode    = 0o644
	outputDirMode     = 0o755
)

// Config controls where documents are read from and written to.
type Config struct {
	// SourceDir holds the Markdown documents, one page per file.
	SourceDir string
	// OutputDir receives one HTML file per source document.
	OutputDir string
	// TemplatePath optionally overrides the built-in page template.
	TemplatePath string
	// IncludeDrafts emits documents marked draft: true in frontmatter.
	IncludeDrafts bool
}

// DefaultConfig mirrors the CLI defaults.
func DefaultConfig() Config {
	return Config{SourceDir: "source", OutputDir: "public"}
}

// Validate checks the configuration once at construction.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.SourceDir, validation.Required),
		validation.Field(&c.OutputDir, validation.Required),
	)
}

// Generator builds a static HTML site from a flat directory of Markdown
// documents.
type Generator struct {
	cfg      Config
	renderer *Renderer
	tpl      *template.Template
	log      glog.Logger
}

// Option customises a Generator.
type Option func(*Generator)

// WithLogger attaches a logger that reports per-document progress.
func WithLogger(lgr glog.Logger) Option {
	return func(g *Generator) {
		g.log = lgr
	}
}

// New validates cfg, loads the page template, and builds a Generator.
func New(cfg Config, opts ...Option) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid generator config").
			WithTextCode(configInvalidCode)
	}

	tpl, err := loadTemplate(cfg.TemplatePath)
	if err != nil {
		return nil, err
	}

	g := &Generator{
		cfg:      cfg,
		renderer: NewRenderer(),
		tpl:      tpl,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Page records one converted document in a BuildResult.
type Page struct {
	Source string
	Output string
	Title  string
}

// BuildResult summarises a completed build.
type BuildResult struct {
	Pages    []Page
	Skipped  int
	Duration time.Duration
}

// Build converts every Markdown document in the source directory into an
// HTML page in the output directory. The output directory is created when
// missing. Build fails on the first unprocessable document; it never leaves
// a partially written page behind because pages are rendered in memory and
// written in one call.
func (g *Generator) Build(ctx context.Context) (*BuildResult, error) {
	start := time.Now()

	entries, err := os.ReadDir(g.cfg.SourceDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerrors.Wrap(err, goerrors.CategoryNotFound, "source directory not found").
				WithTextCode(sourceMissingCode)
		}
		return nil, fmt.Errorf("site: read source dir: %w", err)
	}

	if err := os.MkdirAll(g.cfg.OutputDir, outputDirMode); err != nil {
		return nil, fmt.Errorf("site: create output dir: %w", err)
	}

	result := &BuildResult{}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), markdownExtension) {
			continue
		}

		page, err := g.buildPage(entry.Name(), start)
		if err != nil {
			return nil, err
		}
		if page == nil {
			result.Skipped++
			continue
		}

		result.Pages = append(result.Pages, *page)
		if g.log != nil {
			g.log.Info("converted document", "source", page.Source, "output", page.Output)
		}
	}

	result.Duration = time.Since(start)
	return result, nil
}

// buildPage converts a single source document. It returns (nil, nil) when
// the document is a draft and drafts are excluded.
func (g *Generator) buildPage(name string, generatedAt time.Time) (*Page, error) {
	sourcePath := filepath.Join(g.cfg.SourceDir, name)

	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("site: read %s: %w", sourcePath, err)
	}

	meta, body, err := parseFrontMatter(data)
	if err != nil {
		return nil, fmt.Errorf("site: %s: %w", sourcePath, err)
	}
	if meta.Draft && !g.cfg.IncludeDrafts {
		return nil, nil
	}

	rendered, err := g.renderer.Render(body)
	if err != nil {
		return nil, fmt.Errorf("site: %s: %w", sourcePath, err)
	}

	page := PageData{
		Title:       documentTitle(meta, body, name),
		Body:        template.HTML(rendered),
		Author:      meta.Author,
		Date:        meta.Date,
		GeneratedAt: generatedAt,
	}

	var buf bytes.Buffer
	if err := g.tpl.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("site: execute template for %s: %w", sourcePath, err)
	}

	outputName := strings.TrimSuffix(name, filepath.Ext(name)) + ".html"
	outputPath := filepath.Join(g.cfg.OutputDir, outputName)
	if err := os.WriteFile(outputPath, buf.Bytes(), outputFileMode); err != nil {
		return nil, fmt.Errorf("site: write %s: %w", outputPath, err)
	}

	return &Page{Source: sourcePath, Output: outputPath, Title: page.Title}, nil
}
