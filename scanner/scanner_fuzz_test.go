package scanner

import (
	"testing"

	"github.com/wudi/dwgkit/ir/raw"
)

func FuzzBitReader(f *testing.F) {
	f.Add([]byte{0x00})
	f.Add([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF})
	f.Add([]byte{0x48, 1, 2, 3, 4, 5, 6, 7, 8})
	f.Add(SentinelHeaderEnd[:])

	f.Fuzz(func(t *testing.T, data []byte) {
		for _, v := range []raw.Version{raw.R14, raw.R2004} {
			r := NewBitReader(data, v)
			for r.Remaining() > 0 {
				before := r.Position()
				var err error
				switch before.Bits() % 7 {
				case 0:
					_, err = r.BS()
				case 1:
					_, err = r.MC()
				case 2:
					_, err = r.DD(1)
				case 3:
					_, err = r.H()
				case 4:
					_, err = r.TV()
				case 5:
					_, err = r.CMC()
				default:
					_, err = r.BE()
				}
				if r.Byte > len(data) || r.Bit > 7 {
					t.Fatalf("cursor escaped: %+v", r.Position())
				}
				if err != nil {
					if r.Position() != before {
						t.Fatalf("failed read moved cursor from %+v to %+v", before, r.Position())
					}
					if _, err := r.B(); err != nil {
						break
					}
				}
			}
		}
	})
}
