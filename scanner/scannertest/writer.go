// Package scannertest builds bit-packed buffers for tests.
package scannertest

import (
	"encoding/binary"
	"math"

	"github.com/wudi/dwgkit/ir/raw"
)

// Writer appends values in the encodings read by scanner.BitReader.
type Writer struct {
	Version raw.Version
	data    []byte
	bit     uint8
}

func NewWriter(version raw.Version) *Writer { return &Writer{Version: version} }

// Data returns the written bytes. A partial last byte is zero padded.
func (w *Writer) Data() []byte { return w.data }

// BitLen returns the number of bits written.
func (w *Writer) BitLen() int64 {
	n := int64(len(w.data)) * 8
	if w.bit != 0 {
		n -= int64(8 - w.bit)
	}
	return n
}

// Len returns the number of bytes touched so far.
func (w *Writer) Len() int { return len(w.data) }

func (w *Writer) bits(v uint64, n int) {
	for i := n - 1; i >= 0; i-- {
		if w.bit == 0 {
			w.data = append(w.data, 0)
		}
		if v>>uint(i)&1 == 1 {
			w.data[len(w.data)-1] |= 0x80 >> w.bit
		}
		w.bit = (w.bit + 1) % 8
	}
}

// Align pads with zero bits to the next byte boundary.
func (w *Writer) Align() { w.bit = 0 }

func (w *Writer) B(v bool) {
	if v {
		w.bits(1, 1)
	} else {
		w.bits(0, 1)
	}
}

func (w *Writer) BB(v uint8)       { w.bits(uint64(v), 2) }
func (w *Writer) FourBits(v uint8) { w.bits(uint64(v), 4) }
func (w *Writer) RC(v uint8)       { w.bits(uint64(v), 8) }

func (w *Writer) Bytes(p []byte) {
	for _, b := range p {
		w.RC(b)
	}
}

func (w *Writer) RS(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.Bytes(b[:])
}

func (w *Writer) RL(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.Bytes(b[:])
}

func (w *Writer) RD(v float64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	w.Bytes(b[:])
}

// BS picks the shortest bitshort encoding.
func (w *Writer) BS(v uint16) {
	switch {
	case v == 0:
		w.BB(2)
	case v == 256:
		w.BB(3)
	case v < 256:
		w.BB(1)
		w.RC(uint8(v))
	default:
		w.BB(0)
		w.RS(v)
	}
}

// BL picks the shortest bitlong encoding.
func (w *Writer) BL(v uint32) {
	switch {
	case v == 0:
		w.BB(2)
	case v < 256:
		w.BB(1)
		w.RC(uint8(v))
	default:
		w.BB(0)
		w.RL(v)
	}
}

func (w *Writer) BD(v float64) {
	switch v {
	case 1.0:
		w.BB(1)
	case 0.0:
		if math.Signbit(v) {
			w.BB(0)
			w.RD(v)
			return
		}
		w.BB(2)
	default:
		w.BB(0)
		w.RD(v)
	}
}

// MC writes a modular char.
func (w *Writer) MC(v int64) {
	neg := v < 0
	if neg {
		v = -v
	}
	for {
		if v < 0x40 {
			b := uint8(v)
			if neg {
				b |= 0x40
			}
			w.RC(b)
			return
		}
		w.RC(uint8(v&0x7f) | 0x80)
		v >>= 7
	}
}

// MS writes a modular short of at most 30 bits.
func (w *Writer) MS(v uint32) {
	if v < 0x8000 {
		w.RS(uint16(v))
		return
	}
	w.RS(uint16(v&0x7fff) | 0x8000)
	w.RS(uint16(v >> 15))
}

// DD writes v coded against def using the shortest form.
func (w *Writer) DD(v, def float64) {
	var nb, db [8]byte
	binary.LittleEndian.PutUint64(nb[:], math.Float64bits(v))
	binary.LittleEndian.PutUint64(db[:], math.Float64bits(def))
	switch {
	case nb == db:
		w.BB(0)
	case nb[4] == db[4] && nb[5] == db[5] && nb[6] == db[6] && nb[7] == db[7]:
		w.BB(1)
		w.Bytes(nb[0:4])
	case nb[6] == db[6] && nb[7] == db[7]:
		w.BB(2)
		w.RC(nb[4])
		w.RC(nb[5])
		w.Bytes(nb[0:4])
	default:
		w.BB(3)
		w.RD(v)
	}
}

func (w *Writer) BT(v float64) {
	if w.Version >= raw.R2000 {
		if v == 0 {
			w.B(true)
			return
		}
		w.B(false)
	}
	w.BD(v)
}

func (w *Writer) BE(p raw.Point3) {
	if w.Version >= raw.R2000 {
		if p == raw.UnitZ {
			w.B(true)
			return
		}
		w.B(false)
	}
	w.Point3BD(p)
}

func (w *Writer) Point2RD(p raw.Point2) {
	w.RD(p.X)
	w.RD(p.Y)
}

func (w *Writer) Point3BD(p raw.Point3) {
	w.BD(p.X)
	w.BD(p.Y)
	w.BD(p.Z)
}

// H writes a handle using h.Size value bytes.
func (w *Writer) H(h raw.Handle) {
	w.RC(h.Code<<4 | h.Size&0x0f)
	for i := int(h.Size) - 1; i >= 0; i-- {
		if i >= 4 {
			w.RC(0)
			continue
		}
		w.RC(uint8(h.Value >> (8 * uint(i))))
	}
}

// Handle writes h with the minimal size for its value.
func (w *Writer) Handle(code uint8, value uint32) {
	var size uint8
	for v := value; v != 0; v >>= 8 {
		size++
	}
	w.H(raw.Handle{Code: code, Size: size, Value: value})
}

func (w *Writer) TV(s string) {
	w.BS(uint16(len(s)))
	w.Bytes([]byte(s))
}

func (w *Writer) CMC(c raw.Color) {
	w.BS(uint16(c.Index))
	if w.Version < raw.R2004 {
		return
	}
	w.BL(c.RGB)
	w.RC(c.Flags)
	if c.Flags&1 != 0 {
		w.TV(c.Name)
	}
	if c.Flags&2 != 0 {
		w.TV(c.BookName)
	}
}
