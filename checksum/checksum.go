// Package checksum implements the two integrity checks found in drawing
// files: the 16-bit table-driven CRC guarding legacy sections (historically
// called "CRC-8" after the byte-wise update) and the two-sum page checksum
// of the compressed container.
package checksum

// CRCSeed is the seed used for every legacy section checksum.
const CRCSeed uint16 = 0xC0C1

var crcTable = func() [256]uint16 {
	var t [256]uint16
	for i := range t {
		c := uint16(i)
		for k := 0; k < 8; k++ {
			if c&1 != 0 {
				c = c>>1 ^ 0xA001
			} else {
				c >>= 1
			}
		}
		t[i] = c
	}
	return t
}()

// CRC8 folds data into seed one byte at a time.
func CRC8(seed uint16, data []byte) uint16 {
	dx := seed
	for _, b := range data {
		al := b ^ byte(dx)
		dx = dx >> 8
		dx ^= crcTable[al]
	}
	return dx
}

const (
	pageChunk   = 0x15b0
	pageModulus = 0xfff1
)

// PageChecksum computes the Adler-style checksum of a compressed section
// page. Sums are reduced every pageChunk bytes.
func PageChecksum(seed uint32, data []byte) uint32 {
	sum1 := seed & 0xffff
	sum2 := seed >> 16
	for len(data) > 0 {
		n := len(data)
		if n > pageChunk {
			n = pageChunk
		}
		for _, b := range data[:n] {
			sum1 += uint32(b)
			sum2 += sum1
		}
		sum1 %= pageModulus
		sum2 %= pageModulus
		data = data[n:]
	}
	return sum2<<16 | sum1&0xffff
}
