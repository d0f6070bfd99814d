// Package scanner reads the bit-packed primitives of drawing files.
//
// Values are stored most significant bit first and are not byte aligned:
// a BitReader keeps a byte offset plus a bit offset in [0,7]. Every read
// either consumes exactly the bits of the value or fails with
// ErrOutOfBounds and leaves the cursor where it was.
package scanner

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/wudi/dwgkit/ir/raw"
)

var (
	ErrOutOfBounds = errors.New("scanner: read past end of buffer")
	ErrHandleSize  = errors.New("scanner: handle size exceeds 8 bytes")
	ErrVarInt      = errors.New("scanner: variable length integer too long")
	ErrSeek        = errors.New("scanner: seek outside buffer")
)

// Position is a cursor location.
type Position struct {
	Byte int
	Bit  uint8
}

// Bits returns the absolute bit offset of p.
func (p Position) Bits() int64 { return int64(p.Byte)*8 + int64(p.Bit) }

// BitReader is a cursor over an immutable byte buffer. The version selects
// the encodings of the version-dependent primitives (BT, BE, CMC).
type BitReader struct {
	data    []byte
	Byte    int
	Bit     uint8
	Version raw.Version
	mark    Position
}

func NewBitReader(data []byte, version raw.Version) *BitReader {
	return &BitReader{data: data, Version: version}
}

// Data returns the underlying buffer.
func (r *BitReader) Data() []byte { return r.data }

func (r *BitReader) Len() int { return len(r.data) }

// Remaining returns the number of unread bits.
func (r *BitReader) Remaining() int64 {
	left := int64(len(r.data))*8 - r.Position().Bits()
	if left < 0 {
		return 0
	}
	return left
}

func (r *BitReader) Position() Position { return Position{Byte: r.Byte, Bit: r.Bit} }

// Seek moves the cursor to p. The end of the buffer is a valid position.
func (r *BitReader) Seek(p Position) error {
	if p.Byte < 0 || p.Bit > 7 || p.Byte > len(r.data) || (p.Byte == len(r.data) && p.Bit != 0) {
		return ErrSeek
	}
	r.Byte, r.Bit = p.Byte, p.Bit
	return nil
}

// SeekByte moves to the start of byte n.
func (r *BitReader) SeekByte(n int) error { return r.Seek(Position{Byte: n}) }

// Skip advances by n whole bytes, keeping the bit offset.
func (r *BitReader) Skip(n int) error {
	p := r.Position()
	p.Byte += n
	return r.Seek(p)
}

// Mark remembers the current position for Reset.
func (r *BitReader) Mark() { r.mark = r.Position() }

// Reset returns to the last marked position.
func (r *BitReader) Reset() { r.Byte, r.Bit = r.mark.Byte, r.mark.Bit }

// Align moves to the next byte boundary.
func (r *BitReader) Align() {
	if r.Bit != 0 {
		r.Byte++
		r.Bit = 0
	}
}

func (r *BitReader) need(bits int) error {
	if r.Remaining() < int64(bits) {
		return ErrOutOfBounds
	}
	return nil
}

func (r *BitReader) advance(bits int) {
	total := int(r.Bit) + bits
	r.Byte += total / 8
	r.Bit = uint8(total % 8)
}

// bits reads n <= 8 bits without bounds checking.
func (r *BitReader) bits(n int) uint8 {
	var v uint16 = uint16(r.data[r.Byte]) << 8
	if r.Byte+1 < len(r.data) {
		v |= uint16(r.data[r.Byte+1])
	}
	v <<= r.Bit
	r.advance(n)
	return uint8(v >> (16 - n))
}

// B reads one bit.
func (r *BitReader) B() (bool, error) {
	if err := r.need(1); err != nil {
		return false, err
	}
	return r.bits(1) == 1, nil
}

// BB reads a two-bit code.
func (r *BitReader) BB() (uint8, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	return r.bits(2), nil
}

// FourBits reads a nibble.
func (r *BitReader) FourBits() (uint8, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	return r.bits(4), nil
}

// RC reads one raw byte at the current bit offset.
func (r *BitReader) RC() (uint8, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	return r.bits(8), nil
}

func (r *BitReader) raw(n int) ([]byte, error) {
	if err := r.need(8 * n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	if r.Bit == 0 {
		copy(out, r.data[r.Byte:r.Byte+n])
		r.Byte += n
		return out, nil
	}
	for i := range out {
		out[i] = r.bits(8)
	}
	return out, nil
}

// Bytes reads n raw bytes.
func (r *BitReader) Bytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrOutOfBounds
	}
	return r.raw(n)
}

// RS reads a little-endian 16-bit value.
func (r *BitReader) RS() (uint16, error) {
	b, err := r.raw(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// RL reads a little-endian 32-bit value.
func (r *BitReader) RL() (uint32, error) {
	b, err := r.raw(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// RD reads a little-endian IEEE double.
func (r *BitReader) RD() (float64, error) {
	b, err := r.raw(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

// BS reads a bitshort: the code selects RS, RC, 0 or 256.
func (r *BitReader) BS() (uint16, error) {
	start := r.Position()
	code, err := r.BB()
	if err != nil {
		return 0, err
	}
	switch code {
	case 0:
		v, err := r.RS()
		if err != nil {
			r.Byte, r.Bit = start.Byte, start.Bit
		}
		return v, err
	case 1:
		v, err := r.RC()
		if err != nil {
			r.Byte, r.Bit = start.Byte, start.Bit
		}
		return uint16(v), err
	case 2:
		return 0, nil
	default:
		return 256, nil
	}
}

// BL reads a bitlong: the code selects RL, RC or 0. Code 3 is not assigned
// and reads as 256 like BS.
func (r *BitReader) BL() (uint32, error) {
	start := r.Position()
	code, err := r.BB()
	if err != nil {
		return 0, err
	}
	switch code {
	case 0:
		v, err := r.RL()
		if err != nil {
			r.Byte, r.Bit = start.Byte, start.Bit
		}
		return v, err
	case 1:
		v, err := r.RC()
		if err != nil {
			r.Byte, r.Bit = start.Byte, start.Bit
		}
		return uint32(v), err
	case 2:
		return 0, nil
	default:
		return 256, nil
	}
}

// BD reads a bitdouble: the code selects RD, 1.0 or 0.0.
func (r *BitReader) BD() (float64, error) {
	start := r.Position()
	code, err := r.BB()
	if err != nil {
		return 0, err
	}
	switch code {
	case 0:
		v, err := r.RD()
		if err != nil {
			r.Byte, r.Bit = start.Byte, start.Bit
		}
		return v, err
	case 1:
		return 1.0, nil
	default:
		return 0.0, nil
	}
}

// MC reads a modular char: seven bits per byte, low group first, high bit
// set on every byte but the last. Bit 0x40 of the last byte is the sign.
func (r *BitReader) MC() (int64, error) {
	start := r.Position()
	var v int64
	for i := 0; i < 5; i++ {
		b, err := r.RC()
		if err != nil {
			r.Byte, r.Bit = start.Byte, start.Bit
			return 0, err
		}
		if b&0x80 == 0 {
			neg := b&0x40 != 0
			v |= int64(b&0x3f) << (7 * i)
			if neg {
				v = -v
			}
			return v, nil
		}
		v |= int64(b&0x7f) << (7 * i)
	}
	r.Byte, r.Bit = start.Byte, start.Bit
	return 0, ErrVarInt
}

// MS reads a modular short: 15 bits per little-endian word, high bit set on
// every word but the last.
func (r *BitReader) MS() (uint32, error) {
	start := r.Position()
	var v uint32
	for i := 0; i < 2; i++ {
		w, err := r.RS()
		if err != nil {
			r.Byte, r.Bit = start.Byte, start.Bit
			return 0, err
		}
		v |= uint32(w&0x7fff) << (15 * i)
		if w&0x8000 == 0 {
			return v, nil
		}
	}
	r.Byte, r.Bit = start.Byte, start.Bit
	return 0, ErrVarInt
}

// DD reads a double coded against def. Code 0 keeps def, 1 replaces the
// low four bytes, 2 replaces bytes 4 and 5 then the low four, 3 is a full RD.
func (r *BitReader) DD(def float64) (float64, error) {
	start := r.Position()
	code, err := r.BB()
	if err != nil {
		return 0, err
	}
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(def))
	switch code {
	case 0:
		return def, nil
	case 1:
		p, err := r.raw(4)
		if err != nil {
			r.Byte, r.Bit = start.Byte, start.Bit
			return 0, err
		}
		copy(b[0:4], p)
	case 2:
		p, err := r.raw(6)
		if err != nil {
			r.Byte, r.Bit = start.Byte, start.Bit
			return 0, err
		}
		b[4], b[5] = p[0], p[1]
		copy(b[0:4], p[2:6])
	default:
		v, err := r.RD()
		if err != nil {
			r.Byte, r.Bit = start.Byte, start.Bit
		}
		return v, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b[:])), nil
}

// BT reads a thickness: from R2000 a set flag means 0.0.
func (r *BitReader) BT() (float64, error) {
	if r.Version >= raw.R2000 {
		start := r.Position()
		zero, err := r.B()
		if err != nil {
			return 0, err
		}
		if zero {
			return 0, nil
		}
		v, err := r.BD()
		if err != nil {
			r.Byte, r.Bit = start.Byte, start.Bit
		}
		return v, err
	}
	return r.BD()
}

// BE reads an extrusion: from R2000 a set flag means the unit Z vector.
func (r *BitReader) BE() (raw.Point3, error) {
	start := r.Position()
	if r.Version >= raw.R2000 {
		unit, err := r.B()
		if err != nil {
			return raw.Point3{}, err
		}
		if unit {
			return raw.UnitZ, nil
		}
	}
	p, err := r.Point3BD()
	if err != nil {
		r.Byte, r.Bit = start.Byte, start.Bit
	}
	return p, err
}

// Point3BD reads three bitdoubles.
func (r *BitReader) Point3BD() (raw.Point3, error) {
	start := r.Position()
	var p raw.Point3
	var err error
	if p.X, err = r.BD(); err == nil {
		if p.Y, err = r.BD(); err == nil {
			p.Z, err = r.BD()
		}
	}
	if err != nil {
		r.Byte, r.Bit = start.Byte, start.Bit
		return raw.Point3{}, err
	}
	return p, nil
}

// H reads a handle reference: a code/size byte followed by size bytes of
// big-endian value.
func (r *BitReader) H() (raw.Handle, error) {
	start := r.Position()
	cs, err := r.RC()
	if err != nil {
		return raw.Handle{}, err
	}
	h := raw.Handle{Code: cs >> 4, Size: cs & 0x0f}
	if h.Size > 8 {
		r.Byte, r.Bit = start.Byte, start.Bit
		return raw.Handle{}, ErrHandleSize
	}
	p, err := r.raw(int(h.Size))
	if err != nil {
		r.Byte, r.Bit = start.Byte, start.Bit
		return raw.Handle{}, err
	}
	for _, b := range p {
		h.Value = h.Value<<8 | uint32(b)
	}
	return h, nil
}

// TVBytes reads a text value as raw bytes: a bitshort length followed by
// that many bytes. Trailing NULs are dropped; a zero length yields an empty,
// non-nil slice.
func (r *BitReader) TVBytes() ([]byte, error) {
	start := r.Position()
	n, err := r.BS()
	if err != nil {
		return nil, err
	}
	p, err := r.raw(int(n))
	if err != nil {
		r.Byte, r.Bit = start.Byte, start.Bit
		return nil, err
	}
	for len(p) > 0 && p[len(p)-1] == 0 {
		p = p[:len(p)-1]
	}
	return p, nil
}

// TV reads a text value without code page conversion.
func (r *BitReader) TV() (string, error) {
	p, err := r.TVBytes()
	return string(p), err
}

// CMC reads a color. Before R2004 only the index is stored; later versions
// add an RGB value and optional names selected by a flag byte.
func (r *BitReader) CMC() (raw.Color, error) {
	start := r.Position()
	fail := func(err error) (raw.Color, error) {
		r.Byte, r.Bit = start.Byte, start.Bit
		return raw.Color{}, err
	}
	idx, err := r.BS()
	if err != nil {
		return raw.Color{}, err
	}
	c := raw.Color{Index: int16(idx)}
	if r.Version < raw.R2004 {
		return c, nil
	}
	if c.RGB, err = r.BL(); err != nil {
		return fail(err)
	}
	if c.Flags, err = r.RC(); err != nil {
		return fail(err)
	}
	if c.Flags&1 != 0 {
		if c.Name, err = r.TV(); err != nil {
			return fail(err)
		}
	}
	if c.Flags&2 != 0 {
		if c.BookName, err = r.TV(); err != nil {
			return fail(err)
		}
	}
	return c, nil
}
