package parser

import (
	"context"
	"encoding/binary"

	"github.com/wudi/dwgkit/checksum"
	"github.com/wudi/dwgkit/filters"
	"github.com/wudi/dwgkit/ir/raw"
	"github.com/wudi/dwgkit/observability"
	"github.com/wudi/dwgkit/recovery"
	"github.com/wudi/dwgkit/scanner"
	"github.com/wudi/dwgkit/scanner/scannertest"
	"github.com/wudi/dwgkit/security"
	"github.com/wudi/dwgkit/xref"
)

const testHandseed = 0x1000

// newTestSession returns a session over an empty buffer with HANDSEED set,
// so records can be decoded without a variables section.
func newTestSession(ver raw.Version, strategy recovery.Strategy) (*session, *observability.ErrorSink) {
	sink := observability.NewErrorSink(0)
	limits := security.DefaultLimits()
	if strategy == nil {
		strategy = recovery.NewLenientStrategy()
	}
	s := &session{
		ctx:      context.Background(),
		doc:      &raw.Document{Version: ver, Classes: []raw.Class{}, Objects: []raw.Object{}},
		limits:   limits,
		logger:   observability.NewSinkLogger(observability.NopLogger{}, sink),
		tracer:   observability.NopTracer(),
		strategy: strategy,
		registry: defaultRegistry,
		filters:  filters.NewPipeline([]filters.Decoder{filters.NewLZ77Decoder()}, filters.Limits{MaxDecompressedSize: limits.MaxDecompressedSize}),
	}
	s.doc.Variables.HANDSEED = raw.Handle{Value: testHandseed}
	return s, sink
}

// objectStart writes the type code, bit size and handle of a record. The
// caller writes the extended data and its terminating zero length.
func objectStart(w *scannertest.Writer, typ uint16, handle uint32) {
	w.BS(typ)
	if w.Version >= raw.R2000 {
		w.RL(0)
	}
	w.Handle(0, handle)
}

func nongraphStart(w *scannertest.Writer, reactors uint32) {
	if w.Version <= raw.R14 {
		w.RL(0)
	}
	w.BL(reactors)
	if w.Version >= raw.R2004 {
		w.B(true)
	}
}

// sized prefixes R2004 records with their MS byte count.
func sized(w *scannertest.Writer) []byte {
	if w.Version < raw.R2004 {
		return w.Data()
	}
	p := scannertest.NewWriter(w.Version)
	p.MS(uint32(len(w.Data())))
	return append(p.Data(), w.Data()...)
}

// appIDRecord encodes an APPID table entry owned by the APPID control
// object 0x3. Reactor handles are only written for small counts.
func appIDRecord(ver raw.Version, handle uint32, name string, reactors uint32) []byte {
	w := scannertest.NewWriter(ver)
	objectStart(w, 0x43, handle)
	w.BS(0)
	nongraphStart(w, reactors)
	w.TV(name)
	w.B(false)
	w.BS(0)
	w.B(false)
	w.RC(0)
	w.Handle(4, 0x3)
	if reactors < 16 {
		for i := uint32(0); i < reactors; i++ {
			w.Handle(4, 0x3)
		}
	}
	if ver < raw.R2004 {
		w.Handle(3, 0)
	}
	w.Handle(5, 0)
	return sized(w)
}

// handleMap encodes one handle map block listing records at the given
// offsets with handles 1, 2, 3..., followed by the closing empty block.
func handleMap(offsets []int) []byte {
	w := scannertest.NewWriter(raw.R2004)
	prev := 0
	for _, off := range offsets {
		w.MC(1)
		w.MC(int64(off - prev))
		prev = off
	}
	body := w.Data()
	out := make([]byte, 2, 2+len(body)+2+4)
	binary.BigEndian.PutUint16(out, uint16(2+len(body)))
	out = append(out, body...)
	out = append(out, 0, 0)
	return append(out, 0x00, 0x02, 0x00, 0x00)
}

// lzLiteral codes p as a single literal run followed by the end opcode.
// p must hold at least four bytes.
func lzLiteral(p []byte) []byte {
	var out []byte
	if n := len(p); n <= 18 {
		out = append(out, byte(n-3))
	} else {
		out = append(out, 0)
		rem := n - 3 - 0x0F
		for ; rem > 0xFF; rem -= 0xFF {
			out = append(out, 0)
		}
		out = append(out, byte(rem))
	}
	out = append(out, p...)
	return append(out, 0x11)
}

type fixtureSection struct {
	typ  uint32
	name string
	data []byte
}

func le32(v ...uint32) []byte {
	out := make([]byte, 4*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint32(out[4*i:], x)
	}
	return out
}

// r2004File lays out a compressed drawing: one data page per section, the
// section info page and the page map, all literal coded.
func r2004File(sections []fixtureSection) []byte {
	file := make([]byte, xref.SectionMapBase)
	copy(file, "AC1018")
	binary.LittleEndian.PutUint16(file[codepageOffset:], 30)

	var pageMap []byte
	for i, sec := range sections {
		addr := uint32(len(file))
		comp := lzLiteral(sec.data)
		hdr := le32(0x4163043b, sec.typ, uint32(len(comp)), uint32(len(comp))+security.PageHeaderSize, 0, 0,
			checksum.PageChecksum(0, comp), 0)
		file = append(file, security.MaskPageHeader(hdr, addr)...)
		file = append(file, comp...)
		pageMap = append(pageMap, le32(uint32(i+1), uint32(len(file))-addr)...)
	}

	info := le32(uint32(len(sections)), 2, 0x7400, 0, 0)
	for i, sec := range sections {
		info = append(info, le32(uint32(len(sec.data)), 1, 1, uint32(len(sec.data)), 1, 2, sec.typ, 0)...)
		name := make([]byte, 64)
		copy(name, sec.name)
		info = append(info, name...)
		info = append(info, le32(uint32(i+1), uint32(len(sec.data)), 0, 0)...)
	}
	infoNumber := uint32(len(sections) + 1)
	infoComp := lzLiteral(info)
	infoPage := append(le32(pageInfoMagic, uint32(len(info)), uint32(len(infoComp)), 2, 0), infoComp...)
	file = append(file, infoPage...)
	pageMap = append(pageMap, le32(infoNumber, uint32(len(infoPage)))...)

	mapNumber := infoNumber + 1
	mapAddr := uint32(len(file))
	mapLen := len(pageMap) + 8
	mapPageSize := systemHeaderSize + len(lzLiteral(make([]byte, mapLen)))
	pageMap = append(pageMap, le32(mapNumber, uint32(mapPageSize))...)
	mapComp := lzLiteral(pageMap)
	file = append(file, le32(pageMapMagic, uint32(len(pageMap)), uint32(len(mapComp)), 2, 0)...)
	file = append(file, mapComp...)

	plain := make([]byte, security.FileHeaderSize)
	copy(plain, fileID)
	binary.LittleEndian.PutUint32(plain[80:], mapNumber)
	binary.LittleEndian.PutUint32(plain[84:], mapAddr-xref.SectionMapBase)
	binary.LittleEndian.PutUint32(plain[92:], infoNumber)
	copy(file[fileHeaderOffset:], security.EncryptFileHeader(plain))
	return file
}

// classSection encodes the classes section with one XRECORD class.
func classSection() []byte {
	w := scannertest.NewWriter(raw.R2004)
	w.BS(500)
	w.RC(0)
	w.RC(0)
	w.B(true)
	w.BS(500)
	w.BS(0)
	w.TV("ObjectDBX Classes")
	w.TV("AcDbXrecord")
	w.TV("XRECORD")
	w.B(false)
	w.BS(0x1F3)
	w.BL(0)
	w.BS(0)
	w.BS(0)
	w.BL(0)
	w.BL(0)
	body := w.Data()
	out := append([]byte{}, scanner.SentinelClassBegin[:]...)
	out = append(out, le32(uint32(len(body)))...)
	return append(out, body...)
}

func variablesSection() []byte {
	out := append([]byte{}, scanner.SentinelVariableBegin[:]...)
	out = append(out, le32(8)...)
	return append(out, make([]byte, 8)...)
}

// r2004Drawing returns a compressed drawing holding three APPID records.
// Its variables section is empty, so HANDSEED stays zero.
func r2004Drawing() []byte {
	var objects []byte
	var offsets []int
	for i, name := range []string{"ACAD", "ACAD_PSEXT", "ACAD_MLEADERVER"} {
		offsets = append(offsets, len(objects))
		objects = append(objects, appIDRecord(raw.R2004, uint32(i+1), name, 0)...)
	}
	return r2004File([]fixtureSection{
		{raw.SectionTypeVariables, "AcDb:Header", variablesSection()},
		{raw.SectionTypeClasses, "AcDb:Classes", classSection()},
		{raw.SectionTypeHandles, "AcDb:Handles", handleMap(offsets)},
		{raw.SectionTypeDbObjects, "AcDb:AcDbObjects", objects},
	})
}

// legacyFile returns an R2000 file with the given locator records and a
// valid locator CRC. Each blob is copied to its address; the file ends 128
// zero bytes after the last of them.
func legacyFile(locator []raw.Section, blobs map[uint32][]byte) []byte {
	data := make([]byte, locatorOffset, 0x100)
	copy(data, "AC1015")
	binary.LittleEndian.PutUint16(data[codepageOffset:], 30)
	data = binary.LittleEndian.AppendUint32(data, uint32(len(locator)))
	for _, sec := range locator {
		data = append(data, byte(sec.Number))
		data = binary.LittleEndian.AppendUint32(data, sec.Address)
		data = binary.LittleEndian.AppendUint32(data, sec.Size)
	}
	crc := checksum.CRC8(checksum.CRCSeed, data)
	data = binary.LittleEndian.AppendUint16(data, crc)
	end := len(data)
	for addr, blob := range blobs {
		if e := int(addr) + len(blob); e > end {
			end = e
		}
	}
	data = append(data, make([]byte, end+128-len(data))...)
	for addr, blob := range blobs {
		copy(data[addr:], blob)
	}
	return data
}

// legacyDrawing returns an R2000 file with an empty locator table.
func legacyDrawing() []byte {
	return legacyFile(nil, nil)
}
