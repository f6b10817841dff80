// Command qrcorners encodes a text as a QR code whose locator
// patterns are drawn with one of the corner square styles,
// and exports it as SVG, PNG or PDF.
//
// It can also convert an existing SVG file with -in.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/phamquanglong/qr-styling/cornersquare"
	"github.com/phamquanglong/qr-styling/svgdoc"
	"github.com/phamquanglong/qr-styling/svgpdf"
	"github.com/phamquanglong/qr-styling/svgraster"
	"rsc.io/qr"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "qrcorners: %v\n", err)
		os.Exit(1)
	}
}

var levels = map[string]qr.Level{"L": qr.L, "M": qr.M, "Q": qr.Q, "H": qr.H}

func run(args []string, stdout, stderr io.Writer) (err error) {
	fs := flag.NewFlagSet("qrcorners", flag.ContinueOnError)
	fs.SetOutput(stderr)
	text := fs.String("text", "", "Text to encode")
	style := fs.String("style", string(cornersquare.Dot), "Corner square style: "+styleList())
	module := fs.Float64("module", 10, "Module size, in user units")
	margin := fs.Int("margin", 4, "Quiet zone, in modules")
	level := fs.String("level", "M", "Error correction level (L, M, Q or H)")
	format := fs.String("format", "svg", "Output format (svg, png or pdf)")
	output := fs.String("o", "", "Output file (default: standard output)")
	input := fs.String("in", "", "Convert this SVG file instead of encoding a text")
	verbose := fs.Bool("v", false, "Enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel}))
	cornersquare.SetLogger(logger)
	defer cornersquare.SetLogger(nil)

	var doc *svgdoc.Document
	if *input != "" {
		if doc, err = svgdoc.ReadFile(*input, svgdoc.WarnErrorMode); err != nil {
			return fmt.Errorf("reading %s: %w", *input, err)
		}
	} else {
		if *text == "" {
			fs.Usage()
			return errors.New("-text or -in is required")
		}
		if *module <= 0 || *margin < 0 {
			return errors.New("-module must be positive and -margin non negative")
		}
		lvl, ok := levels[strings.ToUpper(*level)]
		if !ok {
			return fmt.Errorf("invalid error correction level %q", *level)
		}
		code, err := qr.Encode(*text, lvl)
		if err != nil {
			return fmt.Errorf("encoding text: %w", err)
		}
		s := cornersquare.Style(*style)
		doc = layout{style: s, module: *module, margin: *margin}.document(code)
		doc.Title = *text
		logger.Debug("encoded", "modules", code.Size, "style", string(cornersquare.Resolve(s)))
	}

	w := stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}
	return write(doc, *format, w)
}

func write(doc *svgdoc.Document, format string, w io.Writer) error {
	switch format {
	case "svg":
		_, err := doc.WriteTo(w)
		return err
	case "png":
		img, err := svgraster.RasterDocument(doc, 1)
		if err != nil {
			return err
		}
		return png.Encode(w, img)
	case "pdf":
		return svgpdf.WriteDocument(doc, w)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

func styleList() string {
	names := make([]string, len(cornersquare.AvailableStyles))
	for i, s := range cornersquare.AvailableStyles {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
