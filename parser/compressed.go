package parser

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/wudi/dwgkit/checksum"
	"github.com/wudi/dwgkit/filters"
	"github.com/wudi/dwgkit/ir/raw"
	"github.com/wudi/dwgkit/observability"
	"github.com/wudi/dwgkit/recovery"
	"github.com/wudi/dwgkit/scanner"
	"github.com/wudi/dwgkit/security"
	"github.com/wudi/dwgkit/xref"
)

const (
	fileHeaderOffset  = 0x80
	fileID            = "AcFssFcAJMB"
	systemHeaderSize  = 0x14
	pageMapMagic      = 0x41630e3b
	pageInfoMagic     = 0x4163003b
	maxHandleBlock    = 2032
	handleBlockHeader = 2
	handleBlockCRC    = 2
)

// fileHeader holds the fields of the de-obfuscated R2004 header used for
// decoding.
type fileHeader struct {
	ID                  string
	LastSectionID       int32
	LastSectionAddress  uint32
	SecondHeaderAddress uint32
	GapAmount           uint32
	SectionAmount       uint32
	SectionMapID        uint32
	SectionMapAddress   uint32
	SectionInfoID       uint32
	SectionArraySize    uint32
	GapArraySize        uint32
	CRC                 uint32
}

func parseFileHeader(p []byte) fileHeader {
	le := binary.LittleEndian
	return fileHeader{
		ID:                  string(p[:11]),
		LastSectionID:       int32(le.Uint32(p[40:])),
		LastSectionAddress:  le.Uint32(p[44:]),
		SecondHeaderAddress: le.Uint32(p[52:]),
		GapAmount:           le.Uint32(p[60:]),
		SectionAmount:       le.Uint32(p[64:]),
		SectionMapID:        le.Uint32(p[80:]),
		SectionMapAddress:   le.Uint32(p[84:]),
		SectionInfoID:       le.Uint32(p[92:]),
		SectionArraySize:    le.Uint32(p[96:]),
		GapArraySize:        le.Uint32(p[100:]),
		CRC:                 le.Uint32(p[104:]),
	}
}

// systemSection is the header in front of the page map and the section
// info page.
type systemSection struct {
	Type        uint32
	DecompSize  uint32
	CompSize    uint32
	Compression uint32
	Checksum    uint32
}

// pageHeader is the unmasked header of a data page.
type pageHeader struct {
	Tag         uint32
	SectionType uint32
	DataSize    uint32
	PageSize    uint32
	StartOffset uint32
	Unknown     uint32
	Checksum1   uint32
	Checksum2   uint32
}

func parsePageHeader(p []byte) pageHeader {
	le := binary.LittleEndian
	return pageHeader{
		Tag:         le.Uint32(p[0:]),
		SectionType: le.Uint32(p[4:]),
		DataSize:    le.Uint32(p[8:]),
		PageSize:    le.Uint32(p[12:]),
		StartOffset: le.Uint32(p[16:]),
		Unknown:     le.Uint32(p[20:]),
		Checksum1:   le.Uint32(p[24:]),
		Checksum2:   le.Uint32(p[28:]),
	}
}

// decodeCompressed reads an R2004 drawing: the obfuscated file header, the
// page map, the section descriptions and then the variables, classes and
// handle sections.
func (s *session) decodeCompressed() error {
	_, span := s.tracer.StartSpan(s.ctx, observability.SpanContainer)
	defer span.Finish()

	r := scanner.NewBitReader(s.data, s.doc.Version)
	if err := s.readCodepage(r); err != nil {
		return err
	}
	if len(s.data) < fileHeaderOffset+security.FileHeaderSize {
		return fmt.Errorf("%w: file header: %d bytes", ErrSectionMap, len(s.data))
	}
	hdr := parseFileHeader(security.DecryptFileHeader(s.data[fileHeaderOffset:]))
	if hdr.ID != fileID {
		s.logger.Warn("unexpected file id", observability.String("id", hdr.ID))
	}
	observability.Trace(s.logger, observability.LevelCompress, "file header",
		observability.Int("last_section", int(hdr.LastSectionID)),
		observability.Hex("second_header", hdr.SecondHeaderAddress),
		observability.Int("sections", int(hdr.SectionAmount)),
		observability.Int("gaps", int(hdr.GapAmount)),
		observability.Int("map_id", int(hdr.SectionMapID)),
		observability.Hex("map_address", hdr.SectionMapAddress+xref.SectionMapBase),
		observability.Int("info_id", int(hdr.SectionInfoID)))

	pageMap, err := s.systemSection(int64(hdr.SectionMapAddress)+xref.SectionMapBase, pageMapMagic)
	if err != nil {
		s.logger.Error("failed to read section page map", observability.Error("err", err))
		return fmt.Errorf("%w: page map: %w", ErrSectionMap, err)
	}
	m, err := xref.ParseSectionMap(pageMap, s.logger)
	if err != nil {
		s.logger.Error("failed to read section page map", observability.Error("err", err))
		return fmt.Errorf("%w: %w", ErrSectionMap, err)
	}
	s.doc.Sections = m.Sections

	infoPage, ok := m.Find(int32(hdr.SectionInfoID))
	if !ok {
		s.logger.Error("section info not found", observability.Int("id", int(hdr.SectionInfoID)))
		return fmt.Errorf("%w: section info page %d", ErrSectionMap, hdr.SectionInfoID)
	}
	infoData, err := s.systemSection(int64(infoPage.Address), pageInfoMagic)
	if err != nil {
		return fmt.Errorf("%w: section info: %w", ErrSectionMap, err)
	}
	infos, err := xref.ParseSectionInfo(infoData, m, s.limits.MaxSectionPages, s.logger)
	if err != nil {
		// Descriptions read before the failure stay usable.
		s.logger.Warn("section info incomplete", observability.Error("err", err))
	}
	s.doc.SectionInfo = infos

	if err := s.compressedVariables(); err != nil {
		return err
	}
	if err := s.compressedClasses(); err != nil {
		return err
	}
	objects, err := s.section(raw.SectionTypeDbObjects, "objects")
	if err != nil {
		return err
	}
	handles, err := s.section(raw.SectionTypeHandles, "handles")
	if err != nil {
		return err
	}
	if err := s.walkHandles(handles, objects); err != nil {
		return err
	}
	if len(s.doc.Objects) == 0 {
		s.logger.Error("no objects found")
		return ErrNoObjects
	}
	return nil
}

// systemSection reads the header at address and decompresses the data
// following it.
func (s *session) systemSection(address int64, magic uint32) ([]byte, error) {
	if address < 0 || address+systemHeaderSize > int64(len(s.data)) {
		return nil, fmt.Errorf("system section at 0x%X beyond end of file", address)
	}
	le := binary.LittleEndian
	p := s.data[address:]
	ss := systemSection{
		Type:        le.Uint32(p[0:]),
		DecompSize:  le.Uint32(p[4:]),
		CompSize:    le.Uint32(p[8:]),
		Compression: le.Uint32(p[12:]),
		Checksum:    le.Uint32(p[16:]),
	}
	observability.Trace(s.logger, observability.LevelCompress, "system section",
		observability.Hex("type", ss.Type),
		observability.Hex("decomp", ss.DecompSize),
		observability.Hex("comp", ss.CompSize),
		observability.Hex("compression", ss.Compression),
		observability.Hex("checksum", ss.Checksum))
	if ss.Type != magic {
		s.logger.Warn("unexpected system section type",
			observability.Hex("type", ss.Type),
			observability.Hex("want", magic))
	}
	body := p[systemHeaderSize:]
	if int64(ss.CompSize) < int64(len(body)) {
		body = body[:ss.CompSize]
	}
	return s.filters.Decode(s.ctx, filters.LZ77, body, filters.Params{OutputSize: int(ss.DecompSize)})
}

// section assembles the logical section of type typ from its pages. Page i
// lands at i*MaxDecompSize.
func (s *session) section(typ uint32, name string) ([]byte, error) {
	info, ok := xref.FindInfo(s.doc.SectionInfo, typ)
	if !ok {
		s.logger.Error("section not found", observability.String("section", name))
		return nil, fmt.Errorf("%w: %s", ErrMissingSection, name)
	}
	total := int64(info.NumSections) * int64(info.MaxDecompSize)
	if total > s.limits.MaxDecompressedSize {
		return nil, fmt.Errorf("%s: %d bytes: %w", name, total, filters.ErrLimit)
	}
	buf := make([]byte, total)
	for i, page := range info.Pages {
		if err := s.cancelled(); err != nil {
			return nil, err
		}
		if page.Section == nil {
			s.logger.Warn("section page missing from page map",
				observability.String("section", name),
				observability.Int("page", int(page.Number)))
			continue
		}
		addr := page.Section.Address
		if int64(addr)+security.PageHeaderSize > int64(len(s.data)) {
			s.logger.Warn("section page beyond end of file",
				observability.String("section", name),
				observability.Hex("address", addr))
			continue
		}
		ph := parsePageHeader(security.UnmaskPageHeader(s.data[addr:], addr))
		observability.Trace(s.logger, observability.LevelCompress, "data page",
			observability.String("section", name),
			observability.Hex("tag", ph.Tag),
			observability.Hex("type", ph.SectionType),
			observability.Hex("data_size", ph.DataSize),
			observability.Hex("page_size", ph.PageSize),
			observability.Hex("start", ph.StartOffset))
		from := int64(addr) + security.PageHeaderSize
		to := from + int64(ph.DataSize)
		if to > int64(len(s.data)) {
			to = int64(len(s.data))
		}
		comp := s.data[from:to]
		if sum := checksum.PageChecksum(0, comp); sum != ph.Checksum1 {
			s.logger.Warn("page checksum mismatch",
				observability.String("section", name),
				observability.Int("page", i),
				observability.Hex("read", ph.Checksum1),
				observability.Hex("calc", sum))
		}
		out, err := s.filters.Decode(s.ctx, filters.LZ77, comp, filters.Params{OutputSize: int(info.MaxDecompSize)})
		if err != nil {
			s.logger.Warn("page decompression failed",
				observability.String("section", name),
				observability.Int("page", i),
				observability.Error("err", err))
		}
		copy(buf[int64(i)*int64(info.MaxDecompSize):], out)
	}
	return buf, nil
}

func (s *session) compressedVariables() error {
	_, span := s.tracer.StartSpan(s.ctx, observability.SpanVariables)
	defer span.Finish()

	data, err := s.section(raw.SectionTypeVariables, "variables")
	if err != nil {
		return err
	}
	r := scanner.NewBitReader(data, s.doc.Version)
	if !r.SearchSentinel(scanner.SentinelVariableBegin) {
		s.logger.Warn("variables sentinel not found")
		return nil
	}
	size, err := r.RL()
	if err != nil {
		s.logger.Warn("variables size missing", observability.Error("err", err))
		return nil
	}
	observability.Trace(s.logger, observability.LevelTrace, "variables", observability.Int64("size", int64(size)))
	pos := r.Byte
	if bound := pos + int(size); bound > pos && bound < len(data) {
		r = scanner.NewBitReader(data[:bound], s.doc.Version)
		r.Byte = pos
	}
	if err := decodeVariables(newFieldReader(r, s.limits, s.text, false), &s.doc.Variables); err != nil {
		s.logger.Warn("variables truncated", observability.Error("err", err))
	}
	return nil
}

func (s *session) compressedClasses() error {
	_, span := s.tracer.StartSpan(s.ctx, observability.SpanClasses)
	defer span.Finish()

	data, err := s.section(raw.SectionTypeClasses, "classes")
	if err != nil {
		return err
	}
	r := scanner.NewBitReader(data, s.doc.Version)
	if !r.SearchSentinel(scanner.SentinelClassBegin) {
		s.logger.Warn("classes sentinel not found")
		return nil
	}
	f := newFieldReader(r, s.limits, s.text, false)
	size := f.rl()
	last := r.Byte + int(size)
	maxNum := f.bs()
	f.rc()
	f.rc()
	f.b()
	if !f.ok() {
		s.logger.Warn("classes header truncated", observability.Error("err", f.err))
		return nil
	}
	observability.Trace(s.logger, observability.LevelTrace, "classes",
		observability.Int64("size", int64(size)),
		observability.Int("max_number", int(maxNum)))
	s.readClasses(f, last)
	span.SetTag("classes", len(s.doc.Classes))
	return nil
}

// walkHandles decodes one object per handle map entry. The map is a series
// of blocks, each a big-endian size followed by cumulative (handle, offset)
// deltas and a CRC; a block of size 2 ends it.
func (s *session) walkHandles(handles, objects []byte) error {
	_, span := s.tracer.StartSpan(s.ctx, observability.SpanObjects)
	defer span.Finish()
	defer func() {
		span.SetTag(observability.MetricObjectCount, len(s.doc.Objects))
		span.SetTag(observability.MetricDropped, s.dropped)
	}()

	r := scanner.NewBitReader(handles, s.doc.Version)
	for r.Byte+handleBlockHeader <= len(handles) {
		start := r.Byte
		size := int(binary.BigEndian.Uint16(handles[start:]))
		r.Byte += handleBlockHeader
		observability.Trace(s.logger, observability.LevelTrace, "handle block", observability.Int("size", size))
		if size > maxHandleBlock {
			s.logger.Warn("handle block larger than 2032 bytes", observability.Int("size", size))
		}
		var handle, offset int64
		for r.Byte-start < size {
			dh, err := r.MC()
			if err != nil {
				s.logger.Warn("handle map truncated", observability.Error("err", err))
				return nil
			}
			do, err := r.MC()
			if err != nil {
				s.logger.Warn("handle map truncated", observability.Error("err", err))
				return nil
			}
			handle += dh
			offset += do
			if offset < 0 || offset > int64(len(objects)) {
				s.logger.Error("object offset beyond object section",
					observability.Int64("offset", offset),
					observability.Int("size", len(objects)))
				return nil
			}
			if err := s.cancelled(); err != nil {
				return err
			}
			if err := s.handleEntry(objects, uint32(handle), offset); err != nil {
				return err
			}
		}
		r.Align()
		r.Byte += handleBlockCRC
		if size <= handleBlockHeader {
			break
		}
	}
	return nil
}

// handleEntry decodes the object at offset. Failures go to the recovery
// strategy; only ActionFail ends the walk.
func (s *session) handleEntry(objects []byte, handle uint32, offset int64) error {
	obj, err := s.decodeObject(objects, offset)
	if err == nil {
		s.add(obj)
		return nil
	}
	if errors.Is(err, errUnhandled) {
		s.logger.Debug("object type not handled",
			observability.Hex("handle", handle),
			observability.Int64("offset", offset))
		return nil
	}
	s.dropped++
	loc := recovery.Location{ByteOffset: offset, Handle: handle, Component: "objects"}
	s.logger.Warn("object dropped",
		observability.Hex("handle", handle),
		observability.Int64("offset", offset),
		observability.Error("err", err))
	if s.strategy.OnError(s.ctx, err, loc) == recovery.ActionFail {
		return fmt.Errorf("%s: %w", loc, err)
	}
	return nil
}
