package raw

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"

	"golang.org/x/image/bmp"
)

// Preview holds the thumbnail block of a drawing. BMP is a device
// independent bitmap without the BMP file header.
type Preview struct {
	Header []byte
	BMP    []byte
	WMF    []byte
}

const (
	bmpFileHeaderSize = 14
	dibHeaderMinSize  = 40
)

var errShortDIB = errors.New("raw: preview bitmap too short")

// BMPFile returns the bitmap wrapped in a BMP file header.
func (p *Preview) BMPFile() ([]byte, error) {
	if p == nil || len(p.BMP) < dibHeaderMinSize {
		return nil, errShortDIB
	}
	le := binary.LittleEndian
	dibSize := le.Uint32(p.BMP[0:])
	bitCount := le.Uint16(p.BMP[14:])
	colors := le.Uint32(p.BMP[32:])
	if colors == 0 && bitCount <= 8 {
		colors = 1 << bitCount
	}
	offset := bmpFileHeaderSize + dibSize + 4*colors

	var buf bytes.Buffer
	buf.Grow(bmpFileHeaderSize + len(p.BMP))
	buf.WriteString("BM")
	var w [12]byte
	le.PutUint32(w[0:], uint32(bmpFileHeaderSize+len(p.BMP)))
	le.PutUint32(w[8:], offset)
	buf.Write(w[:])
	buf.Write(p.BMP)
	return buf.Bytes(), nil
}

// Image decodes the bitmap.
func (p *Preview) Image() (image.Image, error) {
	file, err := p.BMPFile()
	if err != nil {
		return nil, err
	}
	return bmp.Decode(bytes.NewReader(file))
}
