package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"

	"github.com/halfwidth/asciipress/internal/site"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "sitegen: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("sitegen", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	source := fs.String("source", "source", "Directory containing Markdown documents")
	output := fs.String("output", "public", "Directory receiving generated HTML")
	tplPath := fs.String("template", "", "Optional HTML template file wrapping rendered pages")
	drafts := fs.Bool("drafts", false, "Include documents marked draft: true")
	serve := fs.Bool("serve", false, "Serve the output directory over HTTP after building")
	addr := fs.String("addr", ":8080", "Listen address used with -serve")

	if err := fs.Parse(args); err != nil {
		return err
	}

	lgr := glog.NewLogger(
		glog.WithLoggerTypeConsole(),
		glog.WithLevel(glog.Info),
	)
	log := lgr.GetLogger("sitegen")

	gen, err := site.New(site.Config{
		SourceDir:     *source,
		OutputDir:     *output,
		TemplatePath:  *tplPath,
		IncludeDrafts: *drafts,
	}, site.WithLogger(log))
	if err != nil {
		return err
	}

	result, err := gen.Build(context.Background())
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "generated %d page(s) in %s\n", len(result.Pages), result.Duration.Round(time.Millisecond))
	if result.Skipped > 0 {
		fmt.Fprintf(out, "skipped %d draft(s)\n", result.Skipped)
	}

	if !*serve {
		return nil
	}
	return serveSite(*output, *addr, log)
}

// serveSite exposes the generated output directory for local preview.
func serveSite(dir, addr string, log glog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(dir)))

	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("serving site", "dir", dir, "addr", addr)
	return srv.ListenAndServe()
}

func exitCode(err error) int {
	if goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		return 1
	}
	return 3
}
