package checksum

import "testing"

func TestCRC8KnownValues(t *testing.T) {
	if got := CRC8(CRCSeed, []byte{0x01, 0x02, 0x03, 0x04}); got != 0xCF9C {
		t.Fatalf("CRC8(0xC0C1, 01020304) = %#04x, want 0xcf9c", got)
	}
	if got := CRC8(CRCSeed, nil); got != CRCSeed {
		t.Fatalf("CRC8 of empty input should return the seed, got %#04x", got)
	}
	// same table as CRC-16/ARC, whose check value is 0xBB3D
	if got := CRC8(0, []byte("123456789")); got != 0xBB3D {
		t.Fatalf("CRC8(0, check string) = %#04x, want 0xbb3d", got)
	}
}

func TestCRC8Incremental(t *testing.T) {
	data := []byte("section locator records")
	whole := CRC8(CRCSeed, data)
	part := CRC8(CRC8(CRCSeed, data[:7]), data[7:])
	if whole != part {
		t.Fatalf("incremental crc %#04x != whole %#04x", part, whole)
	}
}

func TestPageChecksum(t *testing.T) {
	if got := PageChecksum(0, []byte{1, 2, 3, 4}); got != 0x0014000A {
		t.Fatalf("PageChecksum small = %#08x", got)
	}
	if got := PageChecksum(0x12345678, []byte("abc")); got != 0x17F5579E {
		t.Fatalf("PageChecksum seeded = %#08x", got)
	}
	big := make([]byte, 0, 256*40)
	for i := 0; i < 40; i++ {
		for b := 0; b < 256; b++ {
			big = append(big, byte(b))
		}
	}
	if got := PageChecksum(0, big); got != 0xCC75ED1D {
		t.Fatalf("PageChecksum multi-chunk = %#08x", got)
	}
}
