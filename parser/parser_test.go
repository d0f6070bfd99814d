package parser

import (
	"context"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/wudi/dwgkit/ir/raw"
	"github.com/wudi/dwgkit/observability"
	"github.com/wudi/dwgkit/recovery"
	"github.com/wudi/dwgkit/scanner"
	"github.com/wudi/dwgkit/scanner/scannertest"
	"github.com/wudi/dwgkit/security"
)

func newQuietParser(strategy recovery.Strategy) *DocumentParser {
	return NewDocumentParser(Config{Recovery: strategy, Logger: observability.NopLogger{}})
}

func TestParseUnknownVersion(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("AC10"), []byte("%PDF-1.7 not a drawing")} {
		doc, err := newQuietParser(nil).Parse(context.Background(), data)
		if !errors.Is(err, ErrUnknownVersion) {
			t.Fatalf("%q: expected ErrUnknownVersion, got %v", data, err)
		}
		if doc != nil {
			t.Fatalf("%q: expected nil document", data)
		}
	}
}

func TestParseUnsupportedVersion(t *testing.T) {
	data := append([]byte("AC1021"), make([]byte, 0x100)...)
	doc, err := newQuietParser(nil).Parse(context.Background(), data)
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}
	if doc == nil || doc.Version != raw.R2007 {
		t.Fatalf("expected a document tagged R2007, got %+v", doc)
	}
}

func TestParseLegacyEmptyLocator(t *testing.T) {
	p := newQuietParser(nil)
	doc, err := p.Parse(context.Background(), legacyDrawing())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Version != raw.R2000 || doc.Codepage != 30 {
		t.Fatalf("version %s codepage %d", doc.Version, doc.Codepage)
	}
	if len(doc.Objects) != 0 || len(doc.Sections) != 0 {
		t.Fatalf("objects %d sections %d, want none", len(doc.Objects), len(doc.Sections))
	}
	for _, msg := range p.Errors().Drain() {
		if strings.Contains(msg, "CRC") {
			t.Fatalf("unexpected CRC warning %q", msg)
		}
	}
}

func TestParseLegacyZeroSizeVariables(t *testing.T) {
	data := legacyFile([]raw.Section{{Number: 0, Address: 0x100, Size: 0}}, nil)
	p := newQuietParser(nil)
	doc, err := p.Parse(context.Background(), data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(doc.Sections) != 1 || doc.Sections[0].Address != 0x100 || doc.Sections[0].Size != 0 {
		t.Fatalf("sections %+v", doc.Sections)
	}
	if len(doc.Objects) != 0 {
		t.Fatalf("objects = %d, want none", len(doc.Objects))
	}
	if doc.Variables.HANDSEED != (raw.Handle{}) || doc.Variables.CRC != 0 || doc.Variables.MENU != "" {
		t.Fatalf("variables changed: HANDSEED %+v CRC 0x%X", doc.Variables.HANDSEED, doc.Variables.CRC)
	}
	msgs := strings.Join(p.Errors().Drain(), "\n")
	if !strings.Contains(msgs, "variables section too small") {
		t.Fatalf("missing size warning in %q", msgs)
	}
	if strings.Contains(msgs, "out of range") || strings.Contains(msgs, "CRC") {
		t.Fatalf("unexpected warning in %q", msgs)
	}
}

func TestParseLegacyLocatorCRCMismatch(t *testing.T) {
	data := legacyDrawing()
	data[0x19] ^= 0xFF
	p := newQuietParser(nil)
	if _, err := p.Parse(context.Background(), data); err != nil {
		t.Fatalf("a CRC mismatch must not be fatal: %v", err)
	}
	if !strings.Contains(strings.Join(p.Errors().Drain(), "\n"), "locator CRC mismatch") {
		t.Fatal("missing locator CRC warning")
	}
}

func TestParseLegacyLocatorTooLarge(t *testing.T) {
	data := legacyDrawing()
	binary.LittleEndian.PutUint32(data[locatorOffset:], 1000)
	_, err := newQuietParser(nil).Parse(context.Background(), data)
	if !errors.Is(err, ErrSectionMap) {
		t.Fatalf("expected ErrSectionMap, got %v", err)
	}
}

func TestParseCompressedContainer(t *testing.T) {
	p := newQuietParser(nil)
	doc, err := p.Parse(context.Background(), r2004Drawing())
	// The empty variables section leaves HANDSEED at zero, so every record
	// fails its handle check.
	if !errors.Is(err, ErrNoObjects) {
		t.Fatalf("expected ErrNoObjects, got %v", err)
	}
	if doc == nil {
		t.Fatal("expected a partial document")
	}
	if doc.Version != raw.R2004 || doc.Codepage != 30 {
		t.Fatalf("version %s codepage %d", doc.Version, doc.Codepage)
	}
	if len(doc.Sections) != 6 {
		t.Fatalf("page map has %d pages, want 6", len(doc.Sections))
	}
	if len(doc.SectionInfo) != 4 || doc.SectionInfo[3].Name != "AcDb:AcDbObjects" {
		t.Fatalf("section info %+v", doc.SectionInfo)
	}
	for _, info := range doc.SectionInfo {
		if len(info.Pages) != 1 || info.Pages[0].Section == nil {
			t.Fatalf("section %s pages not resolved", info.Name)
		}
	}
	if len(doc.Classes) != 1 || doc.Classes[0].DxfName != "XRECORD" || doc.Classes[0].ItemClassID != 0x1F3 {
		t.Fatalf("classes %+v", doc.Classes)
	}
	msgs := strings.Join(p.Errors().Drain(), "\n")
	if !strings.Contains(msgs, "object dropped") {
		t.Fatalf("missing drop warnings: %q", msgs)
	}
	for _, unwanted := range []string{"page checksum mismatch", "unexpected file id", "unexpected system section type"} {
		if strings.Contains(msgs, unwanted) {
			t.Fatalf("unexpected warning %q", unwanted)
		}
	}
}

func TestParseCompressedStrict(t *testing.T) {
	_, err := newQuietParser(recovery.NewStrictStrategy()).Parse(context.Background(), r2004Drawing())
	if !errors.Is(err, ErrObject) {
		t.Fatalf("expected ErrObject, got %v", err)
	}
}

func TestParseCompressedBudget(t *testing.T) {
	// All three records fail their handle check.
	_, err := newQuietParser(recovery.NewBudgetStrategy(2)).Parse(context.Background(), r2004Drawing())
	if !errors.Is(err, ErrObject) {
		t.Fatalf("budget 2: expected ErrObject, got %v", err)
	}
	_, err = newQuietParser(recovery.NewBudgetStrategy(3)).Parse(context.Background(), r2004Drawing())
	if !errors.Is(err, ErrNoObjects) {
		t.Fatalf("budget 3: expected ErrNoObjects, got %v", err)
	}
}

func TestParseCompressedTruncated(t *testing.T) {
	data := r2004Drawing()
	_, err := newQuietParser(nil).Parse(context.Background(), data[:0x90])
	if !errors.Is(err, ErrSectionMap) {
		t.Fatalf("expected ErrSectionMap, got %v", err)
	}
}

func TestParseCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	data := append(legacyDrawing(), make([]byte, 3*cancelEvery)...)
	_, err := newQuietParser(nil).Parse(ctx, data)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestFileHeaderRoundTrip(t *testing.T) {
	plain := make([]byte, security.FileHeaderSize)
	copy(plain, fileID)
	binary.LittleEndian.PutUint32(plain[84:], 0x1234)
	binary.LittleEndian.PutUint32(plain[92:], 7)
	hdr := parseFileHeader(security.DecryptFileHeader(security.EncryptFileHeader(plain)))
	if hdr.ID != fileID || hdr.SectionMapAddress != 0x1234 || hdr.SectionInfoID != 7 {
		t.Fatalf("header %+v", hdr)
	}
}

func TestTextCodepage(t *testing.T) {
	w := scannertest.NewWriter(raw.R2000)
	w.TV("caf\xe9")
	w.TV("plain")
	r := scanner.NewBitReader(w.Data(), raw.R2000)
	f := newFieldReader(r, security.DefaultLimits(), codepageDecoder(30), false)
	if got := f.tv(); got != "café" {
		t.Fatalf("tv = %q, want café", got)
	}
	if got := f.tv(); got != "plain" {
		t.Fatalf("tv = %q", got)
	}
	if codepageDecoder(0) != nil {
		t.Fatal("code page 0 must pass text through")
	}
}

func TestFieldReaderStickyError(t *testing.T) {
	r := scanner.NewBitReader([]byte{0xFF}, raw.R2000)
	f := newFieldReader(r, security.DefaultLimits(), nil, true)
	f.rl()
	first := f.err
	if first == nil {
		t.Fatal("expected a read error")
	}
	if f.bs() != 0 || f.tv() != "" || f.err != first {
		t.Fatal("reads after an error must return zero values and keep the first error")
	}
}

func TestFieldReaderCount(t *testing.T) {
	r := scanner.NewBitReader(make([]byte, 4), raw.R2000)
	f := newFieldReader(r, security.DefaultLimits(), nil, true)
	if n := f.count(4, 8); n != 4 || f.err != nil {
		t.Fatalf("count(4, 8) = %d, %v", n, f.err)
	}
	if n := f.count(5, 8); n != 0 || !errors.Is(f.err, ErrCount) {
		t.Fatalf("count(5, 8) = %d, %v", n, f.err)
	}
}

func TestFieldReaderImplausibleDouble(t *testing.T) {
	w := scannertest.NewWriter(raw.R2000)
	w.RD(1e300)
	w.RD(1e300)
	strict := newFieldReader(scanner.NewBitReader(w.Data(), raw.R2000), security.DefaultLimits(), nil, true)
	strict.rd()
	if !errors.Is(strict.err, ErrImplausible) {
		t.Fatalf("expected ErrImplausible, got %v", strict.err)
	}
	loose := newFieldReader(scanner.NewBitReader(w.Data(), raw.R2000), security.DefaultLimits(), nil, false)
	if v := loose.rd(); v != 1e300 || loose.err != nil {
		t.Fatalf("non-strict read = %g, %v", v, loose.err)
	}
}

// previewFile places an image block with a header entry and a 1x1 bitmap
// after a fake file prefix.
func previewFile() []byte {
	dib := make([]byte, 40, 44)
	le := binary.LittleEndian
	le.PutUint32(dib[0:], 40)
	le.PutUint32(dib[4:], 1)
	le.PutUint32(dib[8:], 1)
	le.PutUint16(dib[12:], 1)
	le.PutUint16(dib[14:], 24)
	le.PutUint32(dib[20:], 4)
	dib = append(dib, 0x10, 0x20, 0x30, 0x00)

	data := make([]byte, 0x40)
	copy(data, "AC1015")
	le.PutUint32(data[previewSeeker:], 0x40)
	data = append(data, make([]byte, sentinelSize)...)
	data = le.AppendUint32(data, 0)
	data = append(data, 2)
	entries := len(data)
	data = append(data, make([]byte, 2*9)...)
	headerAt := len(data)
	data = append(data, "hdr"...)
	bmpAt := len(data)
	data = append(data, dib...)

	data[entries] = previewHeader
	le.PutUint32(data[entries+1:], uint32(headerAt))
	le.PutUint32(data[entries+5:], 3)
	data[entries+9] = previewBMP
	le.PutUint32(data[entries+10:], uint32(bmpAt))
	le.PutUint32(data[entries+14:], uint32(len(dib)))
	return data
}

func TestReadPreview(t *testing.T) {
	p, err := ReadPreview(previewFile())
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if string(p.Header) != "hdr" || len(p.BMP) != 44 || p.WMF != nil {
		t.Fatalf("preview header %q bmp %d wmf %d", p.Header, len(p.BMP), len(p.WMF))
	}
	img, err := p.Image()
	if err != nil {
		t.Fatalf("image: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 1 || b.Dy() != 1 {
		t.Fatalf("bounds %v", b)
	}
	r, g, b, _ := img.At(0, 0).RGBA()
	if r>>8 != 0x30 || g>>8 != 0x20 || b>>8 != 0x10 {
		t.Fatalf("pixel %x %x %x", r>>8, g>>8, b>>8)
	}
}

func TestReadPreviewMissing(t *testing.T) {
	if _, err := ReadPreview(legacyDrawing()); !errors.Is(err, ErrNoPreview) {
		t.Fatalf("expected ErrNoPreview, got %v", err)
	}
	if _, err := ReadPreview([]byte("AC1015")); !errors.Is(err, ErrNoPreview) {
		t.Fatalf("expected ErrNoPreview for a short file, got %v", err)
	}
}

func TestReadPreviewTruncatedEntry(t *testing.T) {
	data := previewFile()
	entries := 0x40 + sentinelSize + 4 + 1
	p, err := ReadPreview(data[:entries+9+3])
	if !errors.Is(err, ErrNoPreview) || !strings.Contains(err.Error(), "entry 1") {
		t.Fatalf("expected ErrNoPreview for entry 1, got %v", err)
	}
	if p == nil || p.BMP != nil {
		t.Fatalf("preview %+v", p)
	}
}
