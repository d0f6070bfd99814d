package filters

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func decodeLZ(t *testing.T, input []byte, size int) ([]byte, error) {
	t.Helper()
	return NewLZ77Decoder().Decode(context.Background(), input, Params{OutputSize: size})
}

func TestLZ77RepeatedRun(t *testing.T) {
	// 4 literal bytes, then a 16 byte copy at distance 1, then the terminator.
	input := []byte{0x01, 'a', 'a', 'a', 'a', 0x2E, 0x00, 0x00, 0x11}
	out, err := decodeLZ(t, input, 20)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if want := bytes.Repeat([]byte{'a'}, 20); !bytes.Equal(out, want) {
		t.Fatalf("decoded %q want %q", out, want)
	}
}

func TestLZ77ShortOpcodeWithLiterals(t *testing.T) {
	input := []byte{0x02, 'a', 'b', 'c', 'd', 'e', 0x52, 0x01, 'x', 'y', 0x11}
	out, err := decodeLZ(t, input, 64)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(out) != "abcdeabcdxy" {
		t.Fatalf("decoded %q", out)
	}
}

func TestLZ77LongLiteral(t *testing.T) {
	// a zero length byte extends the run: 0x0F + 0x01 + 3 = 19 bytes
	lit := bytes.Repeat([]byte{'z'}, 19)
	input := append([]byte{0x00, 0x01}, lit...)
	input = append(input, 0x11)
	out, err := decodeLZ(t, input, 19)
	if err != nil || !bytes.Equal(out, lit) {
		t.Fatalf("decoded %q,%v", out, err)
	}
}

func TestLZ77ReferenceBeforeStart(t *testing.T) {
	input := []byte{0x01, 'a', 'b', 'c', 'd', 0x2E, 0x40, 0x00, 0x11}
	if _, err := decodeLZ(t, input, 64); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}

func TestLZ77OutputBound(t *testing.T) {
	input := []byte{0x01, 'a', 'a', 'a', 'a', 0x2E, 0x00, 0x00, 0x11}
	if _, err := decodeLZ(t, input, 10); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}

func TestLZ77TruncatedInput(t *testing.T) {
	input := []byte{0x05, 'a', 'b'}
	if _, err := decodeLZ(t, input, 64); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}

func TestLZ77InvalidOpcode(t *testing.T) {
	input := []byte{0x01, 'a', 'b', 'c', 'd', 0x05}
	if _, err := decodeLZ(t, input, 64); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}

func TestPipelineLimits(t *testing.T) {
	p := NewPipeline([]Decoder{NewLZ77Decoder()}, Limits{MaxDecompressedSize: 16})
	if _, ok := p.Lookup(LZ77); !ok {
		t.Fatalf("lz77 not registered")
	}
	input := []byte{0x01, 'a', 'a', 'a', 'a', 0x2E, 0x00, 0x00, 0x11}
	if _, err := p.Decode(context.Background(), LZ77, input, Params{OutputSize: 20}); !errors.Is(err, ErrLimit) {
		t.Fatalf("expected ErrLimit, got %v", err)
	}
	if _, err := p.Decode(context.Background(), "Flate", input, Params{}); err == nil {
		t.Fatalf("expected unknown filter error")
	}
	out, err := p.Decode(context.Background(), LZ77, input[:5], Params{})
	if err != nil || string(out) != "aaaa" {
		t.Fatalf("decoded %q,%v", out, err)
	}
}

func TestLZ77Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	input := []byte{0x01, 'a', 'a', 'a', 'a', 0x2E, 0x00, 0x00, 0x11}
	if _, err := NewLZ77Decoder().Decode(ctx, input, Params{OutputSize: 20}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
