package site

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
	require.Error(t, Config{OutputDir: "public"}.Validate())
	require.Error(t, Config{SourceDir: "source"}.Validate())
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
	require.True(t, goerrors.IsCategory(err, goerrors.CategoryValidation))
}

func TestBuildGeneratesPages(t *testing.T) {
	sourceDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "public")

	writeSource(t, sourceDir, "index.md", "---\ntitle: Home\n---\n\n# Welcome\n\nHello **world**.\n")
	writeSource(t, sourceDir, "about.md", "# About Us\n\nPlain document.\n")
	writeSource(t, sourceDir, "notes.txt", "not markdown, must be ignored")

	gen, err := New(Config{SourceDir: sourceDir, OutputDir: outputDir})
	require.NoError(t, err)

	result, err := gen.Build(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Pages, 2)
	require.Zero(t, result.Skipped)

	index, err := os.ReadFile(filepath.Join(outputDir, "index.html"))
	require.NoError(t, err)
	require.Contains(t, string(index), "<title>Home</title>")
	require.Contains(t, string(index), "<strong>world</strong>")

	about, err := os.ReadFile(filepath.Join(outputDir, "about.html"))
	require.NoError(t, err)
	require.Contains(t, string(about), "<title>About Us</title>")

	_, err = os.Stat(filepath.Join(outputDir, "notes.html"))
	require.True(t, os.IsNotExist(err), "non-markdown file must not be converted")
}

func TestBuildSkipsDrafts(t *testing.T) {
	sourceDir := t.TempDir()
	outputDir := t.TempDir()

	writeSource(t, sourceDir, "wip.md", "---\ntitle: WIP\ndraft: true\n---\n\nNot ready.\n")
	writeSource(t, sourceDir, "done.md", "# Done\n\nReady.\n")

	gen, err := New(Config{SourceDir: sourceDir, OutputDir: outputDir})
	require.NoError(t, err)

	result, err := gen.Build(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Pages, 1)
	require.Equal(t, 1, result.Skipped)

	_, err = os.Stat(filepath.Join(outputDir, "wip.html"))
	require.True(t, os.IsNotExist(err))
}

func TestBuildIncludesDraftsWhenConfigured(t *testing.T) {
	sourceDir := t.TempDir()
	outputDir := t.TempDir()

	writeSource(t, sourceDir, "wip.md", "---\ndraft: true\n---\n\n# Draft Page\n")

	gen, err := New(Config{SourceDir: sourceDir, OutputDir: outputDir, IncludeDrafts: true})
	require.NoError(t, err)

	result, err := gen.Build(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Pages, 1)
	require.Zero(t, result.Skipped)
}

func TestBuildMissingSourceDir(t *testing.T) {
	gen, err := New(Config{
		SourceDir: filepath.Join(t.TempDir(), "does-not-exist"),
		OutputDir: t.TempDir(),
	})
	require.NoError(t, err)

	_, err = gen.Build(context.Background())
	require.Error(t, err)
	require.True(t, goerrors.IsCategory(err, goerrors.CategoryNotFound))
}

func TestBuildCreatesOutputDir(t *testing.T) {
	sourceDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "nested", "public")
	writeSource(t, sourceDir, "page.md", "# Page\n")

	gen, err := New(Config{SourceDir: sourceDir, OutputDir: outputDir})
	require.NoError(t, err)

	_, err = gen.Build(context.Background())
	require.NoError(t, err)

	info, err := os.Stat(outputDir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestBuildCustomTemplate(t *testing.T) {
	sourceDir := t.TempDir()
	outputDir := t.TempDir()
	tplPath := filepath.Join(t.TempDir(), "page.tmpl")

	require.NoError(t, os.WriteFile(tplPath, []byte("<h1>{{.Title}}</h1><section>{{.Body}}</section>"), 0o644))
	writeSource(t, sourceDir, "custom.md", "---\ntitle: Custom\n---\n\nbody text\n")

	gen, err := New(Config{SourceDir: sourceDir, OutputDir: outputDir, TemplatePath: tplPath})
	require.NoError(t, err)

	_, err = gen.Build(context.Background())
	require.NoError(t, err)

	out, err := os.ReadFile(filepath.Join(outputDir, "custom.html"))
	require.NoError(t, err)
	require.Contains(t, string(out), "<h1>Custom</h1>")
	require.Contains(t, string(out), "<section>")
}

func TestBuildCancelledContext(t *testing.T) {
	sourceDir := t.TempDir()
	writeSource(t, sourceDir, "page.md", "# Page\n")

	gen, err := New(Config{SourceDir: sourceDir, OutputDir: t.TempDir()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = gen.Build(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestBuildFailsOnBrokenFrontmatter(t *testing.T) {
	sourceDir := t.TempDir()
	writeSource(t, sourceDir, "broken.md", "---\ntitle: [unclosed\n---\n\nbody\n")

	gen, err := New(Config{SourceDir: sourceDir, OutputDir: t.TempDir()})
	require.NoError(t, err)

	_, err = gen.Build(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "broken.md")
}

func TestBuildEmptySourceDir(t *testing.T) {
	gen, err := New(Config{SourceDir: t.TempDir(), OutputDir: t.TempDir()})
	require.NoError(t, err)

	result, err := gen.Build(context.Background())
	require.NoError(t, err)
	require.Empty(t, result.Pages)
	require.Zero(t, result.Skipped)
}
