package security

import "encoding/binary"

// FileHeaderSize is the length of the obfuscated R2004 file header at 0x80.
const FileHeaderSize = 0x6c

// PageHeaderSize is the length of the masked header in front of each data page.
const PageHeaderSize = 0x20

const pageMagic = 0x4164536b

// DecryptFileHeader removes the pseudo-random XOR stream applied to the
// R2004 file header. src must hold at least FileHeaderSize bytes.
func DecryptFileHeader(src []byte) []byte {
	out := make([]byte, FileHeaderSize)
	var seed uint32 = 1
	for i := 0; i < FileHeaderSize && i < len(src); i++ {
		seed = seed*0x343fd + 0x269ec3
		out[i] = src[i] ^ byte(seed>>16)
	}
	return out
}

// EncryptFileHeader applies the same stream; the operation is its own inverse.
func EncryptFileHeader(src []byte) []byte { return DecryptFileHeader(src) }

// UnmaskPageHeader XORs every little-endian word of a data page header with
// a mask derived from the page's absolute file address.
func UnmaskPageHeader(src []byte, address uint32) []byte {
	out := make([]byte, PageHeaderSize)
	copy(out, src)
	mask := uint32(pageMagic) ^ address
	for i := 0; i+4 <= PageHeaderSize; i += 4 {
		binary.LittleEndian.PutUint32(out[i:], binary.LittleEndian.Uint32(out[i:])^mask)
	}
	return out
}

// MaskPageHeader is the inverse of UnmaskPageHeader.
func MaskPageHeader(src []byte, address uint32) []byte { return UnmaskPageHeader(src, address) }
