package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/wudi/dwgkit/observability"
	"github.com/wudi/dwgkit/parser"
	"github.com/wudi/dwgkit/recovery"
)

type options struct {
	path   string
	format string
	level  observability.Level
	strict bool
	budget int
	parts  report
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "dwgdump: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "dwgdump: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: go run ./cmd/dwgdump [flags] <drawing.dwg>\n")
		flag.PrintDefaults()
	}
	format := flag.String("format", "markdown", "Output format: markdown, html or json")
	level := flag.String("level", "", "Log level (none, warn, error, info, trace, ...); defaults to $"+observability.EnvTrace)
	strict := flag.Bool("strict", false, "Fail on the first object that cannot be decoded")
	budget := flag.Int("budget", 0, "Fail once more than this many objects could not be decoded (0 skips them all)")
	variables := flag.Bool("variables", false, "Include header variables")
	classes := flag.Bool("classes", false, "Include the class table")
	sections := flag.Bool("sections", false, "Include the section map")
	objects := flag.Bool("objects", false, "List every object")
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		return options{}, fmt.Errorf("missing drawing path")
	}
	opts.path = flag.Arg(0)
	opts.format = *format
	opts.strict = *strict
	opts.budget = *budget
	if opts.budget < 0 {
		return options{}, fmt.Errorf("negative object budget %d", opts.budget)
	}
	opts.level = observability.LevelFromEnv()
	if *level != "" {
		lvl, ok := observability.ParseLevel(*level)
		if !ok {
			return options{}, fmt.Errorf("unknown log level %q", *level)
		}
		opts.level = lvl
	}
	opts.parts = report{Variables: *variables, Classes: *classes, Sections: *sections, Objects: *objects}
	switch opts.format {
	case "markdown", "html", "json":
	default:
		return options{}, fmt.Errorf("unknown format %q", opts.format)
	}
	return opts, nil
}

// strategy picks the recovery policy; a nil result keeps the parser's
// lenient default. -strict wins over -budget.
func (o options) strategy() recovery.Strategy {
	switch {
	case o.strict:
		return recovery.NewStrictStrategy()
	case o.budget > 0:
		return recovery.NewBudgetStrategy(o.budget)
	}
	return nil
}

func run(opts options, out io.Writer) error {
	data, err := os.ReadFile(opts.path)
	if err != nil {
		return fmt.Errorf("read drawing: %w", err)
	}
	p := parser.NewDocumentParser(parser.Config{LogLevel: opts.level, Recovery: opts.strategy()})
	doc, err := p.Parse(context.Background(), data)
	if doc == nil {
		return fmt.Errorf("parse drawing: %w", err)
	}
	diags := p.Errors().Drain()
	if err != nil {
		diags = append(diags, "[FATAL] "+err.Error())
	}

	switch opts.format {
	case "json":
		data, err := json.MarshalIndent(summarize(doc, diags), "", "  ")
		if err != nil {
			return fmt.Errorf("marshal summary: %w", err)
		}
		_, err = fmt.Fprintf(out, "%s\n", data)
		return err
	case "html":
		md := opts.parts.markdown(doc, diags)
		if err := goldmark.New(goldmark.WithExtensions(extension.Table)).Convert(md, out); err != nil {
			return fmt.Errorf("render html: %w", err)
		}
		return nil
	default:
		_, err := out.Write(opts.parts.markdown(doc, diags))
		return err
	}
}
