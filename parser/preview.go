package parser

import (
	"fmt"

	"github.com/wudi/dwgkit/ir/raw"
	"github.com/wudi/dwgkit/scanner"
)

const (
	previewSeeker = 0x0D

	previewHeader = 1
	previewBMP    = 2
	previewWMF    = 3
)

// ReadPreview extracts the thumbnail images of a drawing. Entry addresses
// are absolute file offsets. A file without a bitmap entry yields
// ErrNoPreview, with the other entries still filled in.
func ReadPreview(data []byte) (*raw.Preview, error) {
	r := scanner.NewBitReader(data, raw.R2000)
	if err := r.SeekByte(previewSeeker); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoPreview, err)
	}
	addr, err := r.RL()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoPreview, err)
	}
	if err := r.SeekByte(int(addr) + sentinelSize); err != nil {
		return nil, fmt.Errorf("%w: image block at 0x%X: %w", ErrNoPreview, addr, err)
	}
	if _, err := r.RL(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoPreview, err)
	}
	n, err := r.RC()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoPreview, err)
	}
	p := &raw.Preview{}
	found := false
	for i := 0; i < int(n); i++ {
		code, err := r.RC()
		if err != nil {
			return p, fmt.Errorf("%w: entry %d: %w", ErrNoPreview, i, err)
		}
		at, err := r.RL()
		if err != nil {
			return p, fmt.Errorf("%w: entry %d: %w", ErrNoPreview, i, err)
		}
		size, err := r.RL()
		if err != nil {
			return p, fmt.Errorf("%w: entry %d: %w", ErrNoPreview, i, err)
		}
		body := clip(data, at, size)
		switch code {
		case previewHeader:
			p.Header = body
		case previewBMP:
			p.BMP = body
			found = len(body) > 0
		case previewWMF:
			p.WMF = body
		}
	}
	if !found {
		return p, ErrNoPreview
	}
	return p, nil
}

func clip(data []byte, at, size uint32) []byte {
	start := int64(at)
	end := start + int64(size)
	if start >= int64(len(data)) {
		return nil
	}
	if end > int64(len(data)) {
		end = int64(len(data))
	}
	return data[start:end]
}
