// Package parser decodes drawing files into raw.Document values.
package parser

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/text/encoding"

	"github.com/wudi/dwgkit/filters"
	"github.com/wudi/dwgkit/ir/raw"
	"github.com/wudi/dwgkit/observability"
	"github.com/wudi/dwgkit/recovery"
	"github.com/wudi/dwgkit/security"
	"github.com/wudi/dwgkit/xref"
)

var (
	ErrUnknownVersion     = errors.New("dwg: unknown version tag")
	ErrUnsupportedVersion = errors.New("dwg: unsupported version")
	ErrMissingSection     = errors.New("dwg: missing section")
	ErrNoObjects          = errors.New("dwg: no objects decoded")
	ErrSectionMap         = errors.New("dwg: bad section map")
	ErrObject             = errors.New("dwg: object decode failed")
	ErrNoPreview          = errors.New("dwg: no preview image")

	ErrImplausible = errors.New("dwg: implausible value")
	ErrCount       = errors.New("dwg: collection larger than remaining data")
)

// Config controls drawing decoding.
type Config struct {
	// Recovery decides what a failed object does to the parse. Default:
	// recovery.NewLenientStrategy().
	Recovery recovery.Strategy
	Limits   security.Limits

	// Logger receives diagnostics. When nil a logfmt logger on stderr is
	// used, with LogLevel as threshold (LevelFromEnv when LogLevel is 0).
	Logger   observability.Logger
	LogLevel observability.Level
	Tracer   observability.Tracer

	// SinkCapacity bounds the diagnostics kept for Errors.
	SinkCapacity int
}

// DocumentParser decodes drawings. A parser is not safe for concurrent use;
// each Parse call runs its own session.
type DocumentParser struct {
	cfg  Config
	sink *observability.ErrorSink
}

func NewDocumentParser(cfg Config) *DocumentParser {
	cfg.Limits = cfg.Limits.WithDefaults()
	if cfg.Recovery == nil {
		cfg.Recovery = recovery.NewLenientStrategy()
	}
	if cfg.Tracer == nil {
		cfg.Tracer = observability.NopTracer()
	}
	if cfg.Logger == nil {
		lvl := cfg.LogLevel
		if lvl == observability.LevelNone {
			lvl = observability.LevelFromEnv()
		}
		cfg.Logger = observability.NewKitLogger(os.Stderr, lvl)
	}
	return &DocumentParser{cfg: cfg, sink: observability.NewErrorSink(cfg.SinkCapacity)}
}

// Errors returns the warnings and errors of the last Parse, oldest first
// when drained.
func (p *DocumentParser) Errors() *observability.ErrorSink { return p.sink }

// Parse decodes data. On a fatal error the document decoded so far is
// returned with the error, except for an unknown version tag which yields a
// nil document.
func (p *DocumentParser) Parse(ctx context.Context, data []byte) (*raw.Document, error) {
	if p.cfg.Limits.MaxParseTime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Limits.MaxParseTime)
		defer cancel()
	}
	ctx, span := p.cfg.Tracer.StartSpan(ctx, observability.SpanDecode)
	defer span.Finish()

	p.sink.Clear()
	s := &session{
		ctx:      ctx,
		data:     data,
		limits:   p.cfg.Limits,
		logger:   observability.NewSinkLogger(p.cfg.Logger, p.sink),
		tracer:   p.cfg.Tracer,
		strategy: p.cfg.Recovery,
		registry: defaultRegistry,
		filters:  filters.NewPipeline([]filters.Decoder{filters.NewLZ77Decoder()}, filters.Limits{MaxDecompressedSize: p.cfg.Limits.MaxDecompressedSize}),
	}
	doc, err := s.decode()
	if doc != nil {
		span.SetTag(observability.MetricObjectCount, len(doc.Objects))
		span.SetTag(observability.MetricDropped, s.dropped)
	}
	if err != nil {
		span.SetError(err)
	}
	return doc, err
}

// session is the state of one Parse call.
type session struct {
	ctx      context.Context
	data     []byte
	doc      *raw.Document
	limits   security.Limits
	logger   observability.Logger
	tracer   observability.Tracer
	strategy recovery.Strategy
	registry *registry
	filters  *filters.Pipeline
	text     *encoding.Decoder

	dropped int
}

func (s *session) decode() (*raw.Document, error) {
	if len(s.data) < 6 {
		s.logger.Error("file too short for a version tag", observability.Int("size", len(s.data)))
		return nil, fmt.Errorf("%w: %d bytes", ErrUnknownVersion, len(s.data))
	}
	tag := string(s.data[:6])
	ver, ok := raw.ParseVersion(tag)
	if !ok {
		s.logger.Error("unknown format, not a drawing file?", observability.String("tag", tag))
		return nil, fmt.Errorf("%w: %q", ErrUnknownVersion, tag)
	}
	s.logger.Info("drawing version", observability.String("tag", tag), observability.String("version", ver.String()))
	s.doc = &raw.Document{
		Version: ver,
		Classes: []raw.Class{},
		Objects: []raw.Object{},
	}

	var err error
	switch ver {
	case raw.R13, raw.R14, raw.R2000:
		err = s.decodeLegacy()
	case raw.R2004:
		err = s.decodeCompressed()
	default:
		s.logger.Error("version not supported", observability.String("version", ver.String()))
		return s.doc, fmt.Errorf("%w: %s", ErrUnsupportedVersion, ver)
	}
	if p, perr := ReadPreview(s.data); perr == nil {
		s.doc.Preview = p
	} else {
		s.logger.Debug("no preview", observability.Error("err", perr))
	}
	s.buildIndex()
	return s.doc, err
}

func (s *session) setCodepage(cp uint16) {
	s.doc.Codepage = cp
	s.text = codepageDecoder(cp)
	observability.Trace(s.logger, observability.LevelTrace, "codepage", observability.Int("codepage", int(cp)))
}

func (s *session) buildIndex() {
	_, span := s.tracer.StartSpan(s.ctx, observability.SpanHandleIndex)
	defer span.Finish()
	idx := xref.BuildIndex(s.doc.Objects, s.doc.Variables.HANDSEED.Value, s.logger)
	s.doc.SetResolver(idx)
	span.SetTag(observability.MetricObjectCount, idx.Len())
}

func (s *session) cancelled() error {
	select {
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return nil
	}
}
