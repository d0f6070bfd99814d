package filters

import "context"

// LZ77 is the name of the section page decompressor.
const LZ77 = "LZ77"

type lz77Decoder struct{}

func NewLZ77Decoder() Decoder { return lz77Decoder{} }

func (lz77Decoder) Name() string { return LZ77 }

// lzStream is a bounded cursor over the compressed input.
type lzStream struct {
	in  []byte
	pos int
	err error
}

func (s *lzStream) next() byte {
	if s.pos >= len(s.in) {
		s.err = ErrCorrupt
		return 0
	}
	b := s.in[s.pos]
	s.pos++
	return b
}

// literalLength reads the length of a literal run. A byte with any of the
// high four bits set is not a length but the next opcode, returned as op.
func (s *lzStream) literalLength() (n int, op byte) {
	b := s.next()
	switch {
	case b >= 0x01 && b <= 0x0F:
		return int(b) + 3, 0
	case b == 0:
		total := 0x0F
		for b = s.next(); b == 0 && s.err == nil; b = s.next() {
			total += 0xFF
		}
		return total + int(b) + 3, 0
	default:
		return 0, b
	}
}

func (s *lzStream) longCompressionOffset() int {
	total := 0
	b := s.next()
	if b == 0 {
		total = 0xFF
		for b = s.next(); b == 0 && s.err == nil; b = s.next() {
			total += 0xFF
		}
	}
	return total + int(b)
}

func (s *lzStream) twoByteOffset() (offset, lit int) {
	b1 := s.next()
	b2 := s.next()
	return int(b1>>2) | int(b2)<<6, int(b1 & 0x03)
}

// Decode inflates input into a buffer of at most params.OutputSize bytes.
// Back-references reach into the output only.
func (lz77Decoder) Decode(ctx context.Context, input []byte, params Params) ([]byte, error) {
	limit := params.OutputSize
	if limit <= 0 {
		limit = 8 * len(input)
	}
	out := make([]byte, 0, limit)
	s := &lzStream{in: input}

	lit, op := s.literalLength()
	if s.err != nil {
		return nil, s.err
	}
	if len(out)+lit > limit || s.pos+lit > len(input) {
		return nil, ErrCorrupt
	}
	out = append(out, input[s.pos:s.pos+lit]...)
	s.pos += lit

	for iter := 0; s.pos < len(input); iter++ {
		if iter&0xFFF == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if op == 0 {
			op = s.next()
		}
		var compBytes, compOffset int
		switch {
		case op >= 0x40:
			compBytes = int(op>>4) - 1
			op2 := s.next()
			compOffset = int(op2)<<2 | int(op&0x0C)>>2
			if op&0x03 != 0 {
				lit = int(op & 0x03)
				op = 0
			} else {
				lit, op = s.literalLength()
			}
		case op >= 0x21 && op <= 0x3F:
			compBytes = int(op) - 0x1E
			compOffset, lit = s.twoByteOffset()
			op = s.trailingLiteral(&lit)
		case op == 0x20:
			compBytes = s.longCompressionOffset() + 0x21
			compOffset, lit = s.twoByteOffset()
			op = s.trailingLiteral(&lit)
		case op >= 0x12 && op <= 0x1F:
			compBytes = int(op&0x0F) + 2
			compOffset, lit = s.twoByteOffset()
			compOffset += 0x3FFF
			op = s.trailingLiteral(&lit)
		case op == 0x10:
			compBytes = s.longCompressionOffset() + 9
			compOffset, lit = s.twoByteOffset()
			compOffset += 0x3FFF
			op = s.trailingLiteral(&lit)
		case op == 0x11:
			return out, nil
		default:
			return nil, ErrCorrupt
		}
		if s.err != nil {
			return nil, s.err
		}

		src := len(out) - compOffset - 1
		if src < 0 || len(out)+compBytes > limit {
			return nil, ErrCorrupt
		}
		// The source may overlap the bytes being written.
		for i := 0; i < compBytes; i++ {
			out = append(out, out[src+i])
		}

		if len(out)+lit > limit || s.pos+lit > len(input) {
			return nil, ErrCorrupt
		}
		out = append(out, input[s.pos:s.pos+lit]...)
		s.pos += lit
	}
	return out, nil
}

// trailingLiteral keeps a literal count taken from an offset byte, or reads
// a literal length that may instead yield the next opcode.
func (s *lzStream) trailingLiteral(lit *int) byte {
	if *lit != 0 {
		return 0
	}
	n, op := s.literalLength()
	*lit = n
	return op
}
