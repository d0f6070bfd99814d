// Package filters holds the decompressors used by the compressed container.
package filters

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrCorrupt reports an invalid compressed stream.
	ErrCorrupt = errors.New("filters: corrupt stream")
	// ErrLimit reports a requested output larger than the configured limit.
	ErrLimit = errors.New("filters: decompressed size exceeds limit")
)

// Params describe one decode call.
type Params struct {
	// OutputSize pre-sizes the output. The decoder never writes more bytes.
	OutputSize int
}

type Decoder interface {
	Name() string
	Decode(ctx context.Context, input []byte, params Params) ([]byte, error)
}

type Limits struct {
	MaxDecompressedSize int64
	MaxDecodeTime       time.Duration
}

// Pipeline runs named decoders under shared limits.
type Pipeline struct {
	decoders map[string]Decoder
	limits   Limits
}

// NewPipeline constructs a pipeline with provided decoders and limits.
func NewPipeline(decoders []Decoder, limits Limits) *Pipeline {
	p := &Pipeline{decoders: make(map[string]Decoder, len(decoders)), limits: limits}
	for _, d := range decoders {
		p.decoders[d.Name()] = d
	}
	return p
}

// Lookup returns the decoder registered under name.
func (p *Pipeline) Lookup(name string) (Decoder, bool) {
	d, ok := p.decoders[name]
	return d, ok
}

// Decode runs the named decoder on input.
func (p *Pipeline) Decode(ctx context.Context, name string, input []byte, params Params) ([]byte, error) {
	dec, ok := p.decoders[name]
	if !ok {
		return nil, errors.New("unknown filter: " + name)
	}
	if params.OutputSize < 0 {
		return nil, fmt.Errorf("%s: negative output size %d", name, params.OutputSize)
	}
	if max := p.limits.MaxDecompressedSize; max > 0 {
		if int64(params.OutputSize) > max {
			return nil, fmt.Errorf("%s: %d bytes: %w", name, params.OutputSize, ErrLimit)
		}
		if params.OutputSize == 0 {
			params.OutputSize = int(max)
		}
	}
	if p.limits.MaxDecodeTime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.limits.MaxDecodeTime)
		defer cancel()
	}
	out, err := dec.Decode(ctx, input, params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}
