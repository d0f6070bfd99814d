package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"github.com/wudi/dwgkit/parser"
)

type options struct {
	path  string
	out   string
	width int
	wmf   bool
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "dwgpreview: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "dwgpreview: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: go run ./cmd/dwgpreview [flags] <drawing.dwg>\n")
		flag.PrintDefaults()
	}
	out := flag.String("out", "", "Output file; .bmp writes a bitmap, anything else PNG (default: <drawing>.png)")
	width := flag.Int("width", 0, "Rescale the thumbnail to this width, keeping the aspect ratio")
	wmf := flag.Bool("wmf", false, "Write the raw metafile entry instead of the bitmap")
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		return options{}, fmt.Errorf("missing drawing path")
	}
	if *width < 0 {
		return options{}, fmt.Errorf("negative width %d", *width)
	}
	opts.path = flag.Arg(0)
	opts.out = *out
	opts.width = *width
	opts.wmf = *wmf
	if opts.out == "" {
		ext := ".png"
		if opts.wmf {
			ext = ".wmf"
		}
		opts.out = strings.TrimSuffix(opts.path, filepath.Ext(opts.path)) + ext
	}
	return opts, nil
}

func run(opts options) error {
	data, err := os.ReadFile(opts.path)
	if err != nil {
		return fmt.Errorf("read drawing: %w", err)
	}
	p, err := parser.ReadPreview(data)
	if opts.wmf {
		if p == nil || len(p.WMF) == 0 {
			return fmt.Errorf("no metafile preview")
		}
		return os.WriteFile(opts.out, p.WMF, 0o644)
	}
	if err != nil {
		return err
	}
	img, err := p.Image()
	if err != nil {
		return fmt.Errorf("decode thumbnail: %w", err)
	}
	img = scale(img, opts.width)

	f, err := os.Create(opts.out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := encode(f, opts.out, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// scale resizes img to width pixels wide. A zero width keeps the size.
func scale(img image.Image, width int) image.Image {
	b := img.Bounds()
	if width == 0 || b.Dx() == 0 || width == b.Dx() {
		return img
	}
	height := b.Dy() * width / b.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

func encode(w io.Writer, name string, img image.Image) error {
	if strings.EqualFold(filepath.Ext(name), ".bmp") {
		return bmp.Encode(w, img)
	}
	return png.Encode(w, img)
}
