package security

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

func TestDecryptFileHeaderStream(t *testing.T) {
	out := DecryptFileHeader(make([]byte, FileHeaderSize))
	want := []byte{0x29, 0x23, 0xBE, 0x84, 0xE1, 0x6C, 0xD6, 0xAE}
	if !bytes.Equal(out[:len(want)], want) {
		t.Fatalf("stream prefix % X, want % X", out[:len(want)], want)
	}
	if len(out) != FileHeaderSize {
		t.Fatalf("len = %d", len(out))
	}
}

func TestFileHeaderRoundTrip(t *testing.T) {
	plain := make([]byte, FileHeaderSize)
	copy(plain, "AcFssFcAJMB")
	plain[84] = 0x42
	got := DecryptFileHeader(EncryptFileHeader(plain))
	if !bytes.Equal(got, plain) {
		t.Fatalf("round trip mismatch")
	}
}

func TestDecryptShortInput(t *testing.T) {
	out := DecryptFileHeader([]byte{0x29})
	if len(out) != FileHeaderSize || out[0] != 0 || out[1] != 0 {
		t.Fatalf("short input: % X", out[:2])
	}
}

func TestPageHeaderMask(t *testing.T) {
	const addr = 0x100
	masked := MaskPageHeader(make([]byte, PageHeaderSize), addr)
	for i := 0; i < PageHeaderSize; i += 4 {
		if w := binary.LittleEndian.Uint32(masked[i:]); w != 0x4164536b^addr {
			t.Fatalf("word %d = 0x%X", i/4, w)
		}
	}
	if got := UnmaskPageHeader(masked, addr); !bytes.Equal(got, make([]byte, PageHeaderSize)) {
		t.Fatalf("unmask did not restore the header: % X", got)
	}
}

func TestPlausibleDouble(t *testing.T) {
	l := DefaultLimits()
	for _, v := range []float64{0, 1, -1, 1e-30, 1e26} {
		if !l.PlausibleDouble(v) {
			t.Fatalf("%g must be plausible", v)
		}
	}
	for _, v := range []float64{1e-40, -1e-40, 1e30, -1e30, math.Inf(1)} {
		if l.PlausibleDouble(v) {
			t.Fatalf("%g must be rejected", v)
		}
	}
}

func TestWithDefaults(t *testing.T) {
	l := Limits{MaxReactors: 7}.WithDefaults()
	if l.MaxReactors != 7 {
		t.Fatalf("explicit value overwritten: %d", l.MaxReactors)
	}
	d := DefaultLimits()
	if l.MaxDictionaryItems != d.MaxDictionaryItems || l.MaxDecompressedSize != d.MaxDecompressedSize {
		t.Fatalf("zero fields not defaulted: %+v", l)
	}
	if l.MaxParseTime != 0 {
		t.Fatal("a zero parse time disables the deadline and must stay zero")
	}
}
