package scanner

import "bytes"

// Sentinel is a 16-byte marker framing a section.
type Sentinel [16]byte

var (
	SentinelHeaderEnd         = Sentinel{0x95, 0xA0, 0x4E, 0x28, 0x99, 0x82, 0x1A, 0xE5, 0x5E, 0x41, 0xE0, 0x5F, 0x9D, 0x3A, 0x4D, 0x00}
	SentinelPictureBegin      = Sentinel{0x1F, 0x25, 0x6D, 0x07, 0xD4, 0x36, 0x28, 0x28, 0x9D, 0x57, 0xCA, 0x3F, 0x9D, 0x44, 0x10, 0x2B}
	SentinelPictureEnd        = Sentinel{0xE0, 0xDA, 0x92, 0xF8, 0x2B, 0xC9, 0xD7, 0xD7, 0x62, 0xA8, 0x35, 0xC0, 0x62, 0xBB, 0xEF, 0xD4}
	SentinelVariableBegin     = Sentinel{0xCF, 0x7B, 0x1F, 0x23, 0xFD, 0xDE, 0x38, 0xA9, 0x5F, 0x7C, 0x68, 0xB8, 0x4E, 0x6D, 0x33, 0x5F}
	SentinelVariableEnd       = Sentinel{0x30, 0x84, 0xE0, 0xDC, 0x02, 0x21, 0xC7, 0x56, 0xA0, 0x83, 0x97, 0x47, 0xB1, 0x92, 0xCC, 0xA0}
	SentinelClassBegin        = Sentinel{0x8D, 0xA1, 0xC4, 0xB8, 0xC4, 0xA9, 0xF8, 0xC5, 0xC0, 0xDC, 0xF4, 0x5F, 0xE7, 0xCF, 0xB6, 0x8A}
	SentinelClassEnd          = Sentinel{0x72, 0x5E, 0x3B, 0x47, 0x3B, 0x56, 0x07, 0x3A, 0x3F, 0x23, 0x0B, 0xA0, 0x18, 0x30, 0x49, 0x75}
	SentinelSecondHeaderBegin = Sentinel{0xD4, 0x7B, 0x21, 0xCE, 0x28, 0x93, 0x9F, 0xBF, 0x53, 0x24, 0x40, 0x09, 0x12, 0x3C, 0xAA, 0x01}
	SentinelSecondHeaderEnd   = Sentinel{0x2B, 0x84, 0xDE, 0x31, 0xD7, 0x6C, 0x60, 0x40, 0xAC, 0xDB, 0xBF, 0xF6, 0xED, 0xC3, 0x55, 0xFE}
)

// SearchSentinel scans forward from the current byte for s. On success the
// cursor is placed on the first byte after the marker; otherwise it does not
// move.
func (r *BitReader) SearchSentinel(s Sentinel) bool {
	if r.Byte >= len(r.data) {
		return false
	}
	i := bytes.Index(r.data[r.Byte:], s[:])
	if i < 0 {
		return false
	}
	r.Byte += i + len(s)
	r.Bit = 0
	return true
}
