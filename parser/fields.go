package parser

import (
	"fmt"

	"golang.org/x/text/encoding"

	"github.com/wudi/dwgkit/ir/raw"
	"github.com/wudi/dwgkit/scanner"
	"github.com/wudi/dwgkit/security"
)

// fieldReader wraps a BitReader with a sticky error: once a read fails every
// later read returns the zero value and the first error is kept. Decoders
// read their whole field list and check err once.
type fieldReader struct {
	r      *scanner.BitReader
	ver    raw.Version
	limits security.Limits
	text   *encoding.Decoder

	// strict rejects implausible doubles.
	strict bool
	err    error
}

func newFieldReader(r *scanner.BitReader, limits security.Limits, text *encoding.Decoder, strict bool) *fieldReader {
	return &fieldReader{r: r, ver: r.Version, limits: limits, text: text, strict: strict}
}

func (f *fieldReader) fail(err error) {
	if f.err == nil && err != nil {
		f.err = err
	}
}

func (f *fieldReader) ok() bool { return f.err == nil }

func (f *fieldReader) since(v raw.Version) bool { return f.ver >= v }
func (f *fieldReader) until(v raw.Version) bool { return f.ver <= v }

func (f *fieldReader) between(lo, hi raw.Version) bool { return f.ver >= lo && f.ver <= hi }

func (f *fieldReader) b() bool {
	if f.err != nil {
		return false
	}
	v, err := f.r.B()
	f.fail(err)
	return v
}

func (f *fieldReader) bb() uint8 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.BB()
	f.fail(err)
	return v
}

func (f *fieldReader) b4() uint8 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.FourBits()
	f.fail(err)
	return v
}

func (f *fieldReader) rc() uint8 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.RC()
	f.fail(err)
	return v
}

func (f *fieldReader) rs() uint16 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.RS()
	f.fail(err)
	return v
}

func (f *fieldReader) rl() uint32 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.RL()
	f.fail(err)
	return v
}

func (f *fieldReader) bs() uint16 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.BS()
	f.fail(err)
	return v
}

func (f *fieldReader) bl() uint32 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.BL()
	f.fail(err)
	return v
}

func (f *fieldReader) bytes(n int) []byte {
	if f.err != nil {
		return nil
	}
	v, err := f.r.Bytes(n)
	f.fail(err)
	return v
}

func (f *fieldReader) check(v float64) float64 {
	if f.strict && f.err == nil && !f.limits.PlausibleDouble(v) {
		f.fail(fmt.Errorf("%w: %g", ErrImplausible, v))
	}
	return v
}

func (f *fieldReader) bd() float64 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.BD()
	f.fail(err)
	return f.check(v)
}

// bdRaw reads a bitdouble without the plausibility test.
func (f *fieldReader) bdRaw() float64 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.BD()
	f.fail(err)
	return v
}

func (f *fieldReader) rd() float64 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.RD()
	f.fail(err)
	return f.check(v)
}

func (f *fieldReader) dd(def float64) float64 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.DD(def)
	f.fail(err)
	return f.check(v)
}

func (f *fieldReader) bt() float64 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.BT()
	f.fail(err)
	return f.check(v)
}

func (f *fieldReader) be() raw.Point3 {
	if f.err != nil {
		return raw.Point3{}
	}
	v, err := f.r.BE()
	f.fail(err)
	f.check(v.X)
	f.check(v.Y)
	f.check(v.Z)
	return v
}

func (f *fieldReader) pt2rd() raw.Point2 {
	x := f.rd()
	return raw.Point2{X: x, Y: f.rd()}
}

func (f *fieldReader) pt2bd() raw.Point2 {
	x := f.bd()
	return raw.Point2{X: x, Y: f.bd()}
}

func (f *fieldReader) pt2dd(def raw.Point2) raw.Point2 {
	x := f.dd(def.X)
	return raw.Point2{X: x, Y: f.dd(def.Y)}
}

func (f *fieldReader) pt3bd() raw.Point3 {
	x := f.bd()
	y := f.bd()
	return raw.Point3{X: x, Y: y, Z: f.bd()}
}

func (f *fieldReader) pt3rd() raw.Point3 {
	x := f.rd()
	y := f.rd()
	return raw.Point3{X: x, Y: y, Z: f.rd()}
}

func (f *fieldReader) timestamp() raw.Timestamp {
	d := f.bl()
	return raw.Timestamp{Days: d, Milliseconds: f.bl()}
}

// tv reads a text value and converts it from the drawing code page.
func (f *fieldReader) tv() string {
	if f.err != nil {
		return ""
	}
	p, err := f.r.TVBytes()
	if err != nil {
		f.fail(err)
		return ""
	}
	return convertText(f.text, p)
}

func (f *fieldReader) cmc() raw.Color {
	if f.err != nil {
		return raw.Color{}
	}
	v, err := f.r.CMC()
	f.fail(err)
	return v
}

func (f *fieldReader) h() raw.Handle {
	if f.err != nil {
		return raw.Handle{}
	}
	v, err := f.r.H()
	f.fail(err)
	return v
}

// handles reads n handle references. The count must already have been
// checked with count.
func (f *fieldReader) handles(n int) []raw.Handle {
	out := make([]raw.Handle, 0, n)
	for i := 0; i < n && f.err == nil; i++ {
		out = append(out, f.h())
	}
	return out
}

// count validates a collection size read from the stream: n items of at
// least minBits bits each must fit in the bits left.
func (f *fieldReader) count(n uint32, minBits int64) int {
	if f.err != nil {
		return 0
	}
	if minBits < 1 {
		minBits = 1
	}
	if int64(n) > f.r.Remaining()/minBits {
		f.fail(fmt.Errorf("%w: %d items, %d bits left", ErrCount, n, f.r.Remaining()))
		return 0
	}
	return int(n)
}

func (f *fieldReader) ms() uint32 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.MS()
	f.fail(err)
	return v
}
