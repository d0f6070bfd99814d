package xref

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/wudi/dwgkit/ir/raw"
	"github.com/wudi/dwgkit/observability"
)

// SectionMapBase is the file address of the first page.
const SectionMapBase = 0x100

var (
	ErrShortMap  = errors.New("xref: truncated section map")
	ErrShortInfo = errors.New("xref: truncated section info")
	ErrPageLimit = errors.New("xref: too many pages in section")
)

// SectionMap is the decoded page map of a compressed container.
type SectionMap struct {
	Sections []raw.Section
}

// ParseSectionMap reads {number, size} pairs from the decompressed page
// map. Addresses accumulate from SectionMapBase; negative numbers mark gaps
// followed by four tree words.
func ParseSectionMap(data []byte, logger observability.Logger) (*SectionMap, error) {
	if logger == nil {
		logger = observability.NopLogger{}
	}
	m := &SectionMap{Sections: []raw.Section{}}
	addr := uint32(SectionMapBase)
	le := binary.LittleEndian
	for off := 0; off < len(data); {
		if off+8 > len(data) {
			return m, fmt.Errorf("entry %d at %d: %w", len(m.Sections), off, ErrShortMap)
		}
		s := raw.Section{
			Number:  int32(le.Uint32(data[off:])),
			Size:    le.Uint32(data[off+4:]),
			Address: addr,
		}
		off += 8
		addr += s.Size
		if s.Number < 0 {
			if off+16 > len(data) {
				return m, fmt.Errorf("gap entry %d at %d: %w", len(m.Sections), off, ErrShortMap)
			}
			s.Parent = le.Uint32(data[off:])
			s.Left = le.Uint32(data[off+4:])
			s.Right = le.Uint32(data[off+8:])
			s.X00 = le.Uint32(data[off+12:])
			off += 16
		}
		observability.Trace(logger, observability.LevelCompress, "section page",
			observability.Int("number", int(s.Number)),
			observability.Hex("size", s.Size),
			observability.Hex("address", s.Address))
		m.Sections = append(m.Sections, s)
	}
	return m, nil
}

// Find returns the page with the given number. Number 0 is never a page.
func (m *SectionMap) Find(number int32) (*raw.Section, bool) {
	if m == nil || number == 0 {
		return nil, false
	}
	for i := range m.Sections {
		if m.Sections[i].Number == number {
			return &m.Sections[i], true
		}
	}
	return nil, false
}

const (
	infoHeaderSize      = 20
	descriptionSize     = 32
	descriptionNameSize = 64
	pageEntrySize       = 16
)

// ParseSectionInfo reads the logical section descriptions. A description
// listing maxPages pages or more is logged and ends the table, since its
// page list cannot be skipped reliably.
func ParseSectionInfo(data []byte, m *SectionMap, maxPages uint32, logger observability.Logger) ([]raw.SectionInfo, error) {
	if logger == nil {
		logger = observability.NopLogger{}
	}
	if len(data) < infoHeaderSize {
		return nil, ErrShortInfo
	}
	le := binary.LittleEndian
	num := int32(le.Uint32(data))
	observability.Trace(logger, observability.LevelCompress, "section info",
		observability.Int("descriptions", int(num)),
		observability.Hex("x02", le.Uint32(data[4:])),
		observability.Hex("x7400", le.Uint32(data[8:])))
	infos := make([]raw.SectionInfo, 0)
	off := infoHeaderSize
	for i := int32(0); i < num; i++ {
		if off+descriptionSize+descriptionNameSize > len(data) {
			return infos, fmt.Errorf("description %d: %w", i, ErrShortInfo)
		}
		d := data[off:]
		info := raw.SectionInfo{
			Size:          int32(le.Uint32(d[0:])),
			Unknown1:      int32(le.Uint32(d[4:])),
			NumSections:   le.Uint32(d[8:]),
			MaxDecompSize: le.Uint32(d[12:]),
			Unknown2:      int32(le.Uint32(d[16:])),
			Compressed:    le.Uint32(d[20:]),
			Type:          le.Uint32(d[24:]),
			Encrypted:     le.Uint32(d[28:]),
		}
		name := d[descriptionSize : descriptionSize+descriptionNameSize]
		if n := bytes.IndexByte(name, 0); n >= 0 {
			name = name[:n]
		}
		info.Name = string(name)
		off += descriptionSize + descriptionNameSize

		if info.NumSections >= maxPages {
			logger.Error("section page count too high",
				observability.String("name", info.Name),
				observability.Int64("pages", int64(info.NumSections)))
			return infos, fmt.Errorf("%s: %d pages: %w", info.Name, info.NumSections, ErrPageLimit)
		}
		info.Pages = make([]raw.SectionPage, 0, info.NumSections)
		for j := uint32(0); j < info.NumSections; j++ {
			if off+pageEntrySize > len(data) {
				return infos, fmt.Errorf("%s page %d: %w", info.Name, j, ErrShortInfo)
			}
			p := raw.SectionPage{
				Number:      int32(le.Uint32(data[off:])),
				DataSize:    le.Uint32(data[off+4:]),
				StartOffset: le.Uint32(data[off+8:]),
				Unknown:     le.Uint32(data[off+12:]),
			}
			off += pageEntrySize
			if s, ok := m.Find(p.Number); ok {
				p.Section = s
			}
			info.Pages = append(info.Pages, p)
		}
		observability.Trace(logger, observability.LevelCompress, "section description",
			observability.String("name", info.Name),
			observability.Int("type", int(info.Type)),
			observability.Int("pages", len(info.Pages)),
			observability.Hex("max_decomp", info.MaxDecompSize))
		infos = append(infos, info)
	}
	return infos, nil
}

// FindInfo returns the first description of the given type.
func FindInfo(infos []raw.SectionInfo, typ uint32) (*raw.SectionInfo, bool) {
	for i := range infos {
		if infos[i].Type == typ {
			return &infos[i], true
		}
	}
	return nil, false
}
