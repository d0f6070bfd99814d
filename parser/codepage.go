package parser

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

// codepages maps the drawing code page number stored at offset 0x13 to a
// text encoding. Numbers without an entry are passed through unconverted.
var codepages = map[uint16]encoding.Encoding{
	2:  charmap.ISO8859_1,
	3:  charmap.ISO8859_2,
	4:  charmap.ISO8859_3,
	5:  charmap.ISO8859_4,
	6:  charmap.ISO8859_5,
	7:  charmap.ISO8859_6,
	8:  charmap.ISO8859_7,
	9:  charmap.ISO8859_8,
	10: charmap.ISO8859_9,
	11: charmap.CodePage437,
	12: charmap.CodePage850,
	13: charmap.CodePage852,
	14: charmap.CodePage855,
	16: charmap.CodePage860,
	18: charmap.CodePage863,
	20: charmap.CodePage865,
	22: japanese.ShiftJIS,
	23: charmap.Macintosh,
	24: traditionalchinese.Big5,
	25: korean.EUCKR,
	27: charmap.CodePage866,
	28: charmap.Windows1250,
	29: charmap.Windows1251,
	30: charmap.Windows1252,
	31: simplifiedchinese.GBK,
	32: charmap.Windows1253,
	33: charmap.Windows1254,
	34: charmap.Windows1255,
	35: charmap.Windows1256,
	36: charmap.Windows1257,
	37: charmap.Windows874,
	38: japanese.ShiftJIS,
	39: simplifiedchinese.GBK,
	40: korean.EUCKR,
	41: traditionalchinese.Big5,
	44: charmap.Windows1258,
}

// codepageDecoder returns nil for ASCII and unknown code pages.
func codepageDecoder(cp uint16) *encoding.Decoder {
	enc, ok := codepages[cp]
	if !ok {
		return nil
	}
	return enc.NewDecoder()
}

func convertText(dec *encoding.Decoder, p []byte) string {
	if dec == nil || isASCII(p) {
		return string(p)
	}
	out, err := dec.Bytes(p)
	if err != nil || !utf8.Valid(out) {
		return string(p)
	}
	return string(out)
}

func isASCII(p []byte) bool {
	for _, c := range p {
		if c >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
