package parser

import (
	"fmt"

	"github.com/wudi/dwgkit/checksum"
	"github.com/wudi/dwgkit/ir/raw"
	"github.com/wudi/dwgkit/observability"
	"github.com/wudi/dwgkit/scanner"
)

const (
	codepageOffset = 0x13
	locatorOffset  = 0x15

	// Legacy sections start with a 16-byte sentinel and end with a 2-byte
	// CRC followed by the closing sentinel.
	sentinelSize     = 16
	sectionTrailer   = 18
	sectionOverhead  = 34
	legacyScanStart  = 70
	locatorEntrySize = 9

	cancelEvery = 1 << 12
)

// decodeLegacy reads an R13 to R2000 drawing: locator table, variables,
// classes, a byte-wise object scan and the measurement section.
func (s *session) decodeLegacy() error {
	_, span := s.tracer.StartSpan(s.ctx, observability.SpanContainer)
	defer span.Finish()

	r := scanner.NewBitReader(s.data, s.doc.Version)
	if err := s.readCodepage(r); err != nil {
		return err
	}
	if err := s.readLocator(r); err != nil {
		return err
	}
	secs := s.doc.Sections
	if len(secs) == 0 {
		s.logger.Warn("no sections in locator table, variables keep their defaults")
	}
	if len(secs) > 0 {
		s.legacyVariables(secs[0])
	}
	if len(secs) > 1 {
		s.legacyClasses(secs[1])
	}
	if err := s.scanObjects(); err != nil {
		return err
	}
	if len(secs) > 4 {
		s.measurement(secs[4])
	}
	return nil
}

func (s *session) readCodepage(r *scanner.BitReader) error {
	if err := r.SeekByte(codepageOffset); err != nil {
		return fmt.Errorf("%w: codepage: %w", ErrSectionMap, err)
	}
	cp, err := r.RS()
	if err != nil {
		return fmt.Errorf("%w: codepage: %w", ErrSectionMap, err)
	}
	s.setCodepage(cp)
	return nil
}

// readLocator reads the section locator records and checks their CRC.
func (s *session) readLocator(r *scanner.BitReader) error {
	if err := r.SeekByte(locatorOffset); err != nil {
		return fmt.Errorf("%w: locator: %w", ErrSectionMap, err)
	}
	n, err := r.RL()
	if err != nil {
		return fmt.Errorf("%w: locator: %w", ErrSectionMap, err)
	}
	if int64(n) > r.Remaining()/(locatorEntrySize*8) {
		return fmt.Errorf("%w: %d locator records", ErrSectionMap, n)
	}
	observability.Trace(s.logger, observability.LevelTrace, "locator", observability.Int("sections", int(n)))
	secs := make([]raw.Section, 0, n)
	for i := uint32(0); i < n; i++ {
		num, err := r.RC()
		if err != nil {
			return fmt.Errorf("%w: locator record %d: %w", ErrSectionMap, i, err)
		}
		addr, err := r.RL()
		if err != nil {
			return fmt.Errorf("%w: locator record %d: %w", ErrSectionMap, i, err)
		}
		size, err := r.RL()
		if err != nil {
			return fmt.Errorf("%w: locator record %d: %w", ErrSectionMap, i, err)
		}
		secs = append(secs, raw.Section{Number: int32(num), Address: addr, Size: size})
		observability.Trace(s.logger, observability.LevelTrace, "section",
			observability.Int("number", int(num)),
			observability.Hex("address", addr),
			observability.Int64("size", int64(size)))
	}
	s.doc.Sections = secs

	calc := checksum.CRC8(checksum.CRCSeed, s.data[:r.Byte])
	stored, err := r.RS()
	if err != nil {
		s.logger.Warn("locator CRC missing", observability.Error("err", err))
		return nil
	}
	if calc != stored {
		s.logger.Warn("locator CRC mismatch",
			observability.Hex("read", uint32(stored)),
			observability.Hex("calc", uint32(calc)))
		return nil
	}
	if r.SearchSentinel(scanner.SentinelHeaderEnd) {
		observability.Trace(s.logger, observability.LevelTrace, "header end", observability.Int("byte", r.Byte))
	}
	return nil
}

// window returns the bytes of sec, clipped to the file.
func (s *session) window(sec raw.Section) (start, end int) {
	start = int(sec.Address)
	end = start + int(sec.Size)
	if start > len(s.data) {
		start = len(s.data)
	}
	if end > len(s.data) || end < start {
		end = len(s.data)
	}
	return start, end
}

// sectionCRC checks the CRC stored near the end of a legacy section.
func (s *session) sectionCRC(name string, sec raw.Section) uint16 {
	if sec.Size < sectionOverhead {
		s.logger.Warn("section too small for a CRC", observability.String("section", name))
		return 0
	}
	at := int(sec.Address) + int(sec.Size) - sectionTrailer
	from := int(sec.Address) + sentinelSize
	to := from + int(sec.Size) - sectionOverhead
	if at+2 > len(s.data) || to > len(s.data) {
		s.logger.Warn("section CRC beyond end of file", observability.String("section", name))
		return 0
	}
	stored := uint16(s.data[at]) | uint16(s.data[at+1])<<8
	calc := checksum.CRC8(checksum.CRCSeed, s.data[from:to])
	if stored != calc {
		s.logger.Warn("section CRC mismatch",
			observability.String("section", name),
			observability.Hex("read", uint32(stored)),
			observability.Hex("calc", uint32(calc)))
	}
	return stored
}

func (s *session) legacyVariables(sec raw.Section) {
	_, span := s.tracer.StartSpan(s.ctx, observability.SpanVariables)
	defer span.Finish()

	if sec.Size < sectionOverhead {
		s.logger.Warn("variables section too small, variables keep their defaults",
			observability.Hex("address", sec.Address),
			observability.Int64("size", int64(sec.Size)))
		return
	}
	start, end := s.window(sec)
	r := scanner.NewBitReader(s.data[:end], s.doc.Version)
	if err := r.SeekByte(start + sentinelSize); err != nil {
		s.logger.Warn("variables section out of range", observability.Error("err", err))
		return
	}
	size, err := r.RL()
	if err != nil {
		s.logger.Warn("variables size missing", observability.Error("err", err))
		return
	}
	observability.Trace(s.logger, observability.LevelTrace, "variables",
		observability.Hex("address", sec.Address),
		observability.Int64("size", int64(size)))
	if size == 0 {
		return
	}
	pos := r.Byte
	if bound := pos + int(size); bound > pos && bound < end {
		r = scanner.NewBitReader(s.data[:bound], s.doc.Version)
		r.Byte = pos
	}
	f := newFieldReader(r, s.limits, s.text, false)
	if err := decodeVariables(f, &s.doc.Variables); err != nil {
		s.logger.Warn("variables truncated", observability.Error("err", err))
	}
	s.doc.Variables.CRC = s.sectionCRC("variables", sec)
}

func (s *session) legacyClasses(sec raw.Section) {
	_, span := s.tracer.StartSpan(s.ctx, observability.SpanClasses)
	defer span.Finish()

	if sec.Size < sectionOverhead {
		s.logger.Warn("classes section too small",
			observability.Hex("address", sec.Address),
			observability.Int64("size", int64(sec.Size)))
		return
	}
	start, end := s.window(sec)
	r := scanner.NewBitReader(s.data[:end], s.doc.Version)
	if err := r.SeekByte(start + sentinelSize); err != nil {
		s.logger.Warn("classes section out of range", observability.Error("err", err))
		return
	}
	size, err := r.RL()
	if err != nil {
		s.logger.Warn("classes size missing", observability.Error("err", err))
		return
	}
	s.readClasses(newFieldReader(r, s.limits, s.text, false), r.Byte+int(size))
	s.sectionCRC("classes", sec)
	observability.Trace(s.logger, observability.LevelTrace, "classes read", observability.Int("count", len(s.doc.Classes)))
	span.SetTag("classes", len(s.doc.Classes))
}

// scanObjects tries to decode a record at every byte between the file
// header and the end of the file, skipping the variables and classes
// sections. Objects are kept in discovery order.
func (s *session) scanObjects() error {
	_, span := s.tracer.StartSpan(s.ctx, observability.SpanObjects)
	defer span.Finish()

	skip := s.doc.Sections
	if len(skip) > 2 {
		skip = skip[:2]
	}
	end := len(s.data) - 2
	observability.Trace(s.logger, observability.LevelTrace, "scanning",
		observability.Int("begin", legacyScanStart),
		observability.Int("end", end))
	for pos := legacyScanStart; pos < end; pos++ {
		for _, sec := range skip {
			a, b := int(sec.Address), int(sec.Address)+int(sec.Size)
			if pos > a && pos < b {
				pos = b
			}
		}
		if pos%cancelEvery == 0 {
			if err := s.cancelled(); err != nil {
				return err
			}
		}
		obj, err := s.decodeObject(s.data, int64(pos))
		if err != nil {
			observability.Trace(s.logger, observability.LevelInsane, "no object",
				observability.Int("byte", pos),
				observability.Error("err", err))
			continue
		}
		s.add(obj)
		observability.Trace(s.logger, observability.LevelTrace, "object found",
			observability.String("type", obj.Name),
			observability.Int("byte", pos))
	}
	observability.Trace(s.logger, observability.LevelTrace, "scan done", observability.Int("objects", len(s.doc.Objects)))
	span.SetTag(observability.MetricObjectCount, len(s.doc.Objects))
	return nil
}

func (s *session) measurement(sec raw.Section) {
	r := scanner.NewBitReader(s.data, s.doc.Version)
	if err := r.SeekByte(int(sec.Address)); err != nil {
		s.logger.Warn("measurement section out of range", observability.Error("err", err))
		return
	}
	v, err := r.RL()
	if err != nil {
		s.logger.Warn("measurement missing", observability.Error("err", err))
		return
	}
	s.doc.Variables.Measurement = v
}
