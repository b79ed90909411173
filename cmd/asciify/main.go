package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"

	"github.com/halfwidth/asciipress/internal/converter"
	"github.com/halfwidth/asciipress/internal/imaging"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "asciify: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("asciify", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	width := fs.Int("width", 100, "Target width in characters")
	ramp := fs.String("ramp", converter.DefaultRamp, "Glyph ramp, lightest to darkest")
	invert := fs.Bool("invert", false, "Reverse the glyph ramp (darkest glyph first)")
	stretch := fs.Bool("stretch", false, "Print each row twice to compensate for character aspect ratio")
	verbose := fs.Bool("verbose", false, "Enable debug logging")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("exactly one image path is required")
	}

	level := glog.Warn
	if *verbose {
		level = glog.Debug
	}
	lgr := glog.NewLogger(
		glog.WithLoggerTypeConsole(),
		glog.WithLevel(level),
	)

	conv, err := converter.New(converter.Options{
		Width:   *width,
		Ramp:    *ramp,
		Invert:  *invert,
		Stretch: *stretch,
	}, converter.WithLogger(lgr.GetLogger("converter")))
	if err != nil {
		return err
	}

	frame, err := conv.ConvertFile(fs.Arg(0))
	if err != nil {
		return err
	}

	return conv.Render(out, frame)
}

// exitCode maps the error taxonomy onto the CLI contract: 1 for a missing
// file, 2 for bytes that are not a recognized image, 3 for everything else.
func exitCode(err error) int {
	switch {
	case goerrors.IsCategory(err, goerrors.CategoryNotFound):
		return 1
	case errors.Is(err, imaging.ErrUnsupportedFormat):
		return 2
	default:
		return 3
	}
}
