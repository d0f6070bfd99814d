package parser

import (
	"errors"
	"fmt"

	"github.com/wudi/dwgkit/ir/raw"
	"github.com/wudi/dwgkit/observability"
	"github.com/wudi/dwgkit/scanner"
)

// errUnhandled marks a type code with no registered decoder. The record is
// skipped without a diagnostic.
var errUnhandled = errors.New("dwg: unhandled object type")

// decodeFunc reads the type specific fields of one record, including its
// trailing handles. Failures are reported through the decoder's sticky error.
type decodeFunc func(d *objectDecoder) raw.Payload

// objectDecoder is the field reader of a single record.
type objectDecoder struct {
	*fieldReader
	s   *session
	obj *raw.Object
	ent *raw.Entity
}

// decodeObject decodes the record starting at byte address of buf. R2004
// records are prefixed with their MS size.
func (s *session) decodeObject(buf []byte, address int64) (*raw.Object, error) {
	r := scanner.NewBitReader(buf, s.doc.Version)
	if err := r.SeekByte(int(address)); err != nil {
		return nil, err
	}
	f := newFieldReader(r, s.limits, s.text, true)
	obj := &raw.Object{Address: address}
	if s.doc.Version > raw.R2000 {
		obj.Size = f.ms()
	}
	obj.Type = f.bs()
	if f.err != nil {
		return nil, f.err
	}
	k, ok := s.registry.lookup(s.doc, obj.Type)
	if !ok {
		return nil, errUnhandled
	}
	obj.Name = k.name
	obj.Supertype = k.supertype

	d := &objectDecoder{fieldReader: f, s: s, obj: obj}
	d.header()
	switch k.supertype {
	case raw.SupertypeEntity:
		d.entityCommon()
	default:
		d.nongraphCommon()
	}
	var payload raw.Payload
	if d.err == nil {
		payload = k.decode(d)
	}
	if d.err != nil {
		return nil, fmt.Errorf("%w: %s at 0x%X: %w", ErrObject, k.name, address, d.err)
	}
	if d.ent != nil {
		d.ent.Payload = payload
		obj.Entity = d.ent
	} else {
		obj.Nongraph.Payload = payload
	}
	if observability.Enabled(s.logger, observability.LevelTrace) {
		observability.Trace(s.logger, observability.LevelTrace, "object decoded",
			observability.String("type", k.name),
			observability.Hex("handle", obj.Handle.Value),
			observability.Int64("address", address))
	}
	return obj, nil
}

// add appends obj to the document, assigning its index.
func (s *session) add(obj *raw.Object) {
	obj.Index = len(s.doc.Objects)
	s.doc.Objects = append(s.doc.Objects, *obj)
}

func (d *objectDecoder) handseed() uint32 { return d.s.doc.Variables.HANDSEED.Value }

// header reads the bit size, the object handle and skips the extended data.
func (d *objectDecoder) header() {
	if d.since(raw.R2000) {
		d.obj.Bitsize = d.rl()
		if d.ok() && d.obj.Bitsize > d.limits.MaxObjectBits {
			d.fail(fmt.Errorf("bit size 0x%X", d.obj.Bitsize))
		}
	}
	d.obj.Handle = d.h()
	if !d.ok() {
		return
	}
	switch h := d.obj.Handle; {
	case h.Code != 0:
		d.fail(fmt.Errorf("handle code %d", h.Code))
	case h.Value == 0:
		d.fail(errors.New("null handle"))
	case h.Value > d.handseed():
		d.fail(fmt.Errorf("handle 0x%X above HANDSEED 0x%X", h.Value, d.handseed()))
	}
	d.skipEED()
}

// skipEED walks the extended data chunks, validating their group codes
// without keeping them.
func (d *objectDecoder) skipEED() {
	for d.ok() {
		n := int16(d.bs())
		if n == 0 || !d.ok() {
			return
		}
		if int(n) > d.limits.MaxEEDSize || n < 0 {
			d.fail(fmt.Errorf("extended data length %d", n))
			return
		}
		app := d.h()
		if !d.ok() {
			return
		}
		if app.Value == 0 || app.Value > d.handseed() {
			d.fail(fmt.Errorf("extended data app handle 0x%X", app.Value))
			return
		}
		d.obj.NumEED++
		end := d.r.Position()
		end.Byte += int(n)
		for d.ok() && d.r.Byte < end.Byte {
			d.eedGroup()
		}
		if !d.ok() {
			return
		}
		if err := d.r.Seek(end); err != nil {
			d.fail(err)
		}
	}
}

func (d *objectDecoder) eedGroup() {
	code := d.rc()
	switch {
	case code == 0:
		if d.until(raw.R2004) {
			n := d.rc()
			d.rs()
			d.skip(int(n))
		} else {
			d.skip(2 * int(d.rs()))
		}
	case code == 2:
		d.rc()
	case code == 3 || code == 5:
		d.skip(8)
	case code == 4:
		d.skip(int(d.rc()))
	case code >= 10 && code <= 13:
		d.skip(24)
	case code >= 40 && code <= 42:
		d.skip(8)
	case code == 70:
		d.skip(2)
	case code == 71:
		d.skip(4)
	default:
		d.fail(fmt.Errorf("extended data group code %d", code))
	}
}

func (d *objectDecoder) skip(n int) {
	if d.ok() {
		d.fail(d.r.Skip(n))
	}
}

func (d *objectDecoder) entityCommon() {
	e := &raw.Entity{}
	d.ent = e
	e.PictureExists = d.b()
	if e.PictureExists {
		e.PictureSize = d.rl()
		if d.ok() && e.PictureSize >= d.limits.MaxPictureSize {
			d.fail(fmt.Errorf("picture size %d", e.PictureSize))
			return
		}
		d.skip(int(e.PictureSize))
	}
	if d.between(raw.R13, raw.R14) {
		d.obj.Bitsize = d.rl()
		if d.ok() && d.obj.Bitsize > d.limits.MaxObjectBits {
			d.fail(fmt.Errorf("bit size 0x%X", d.obj.Bitsize))
			return
		}
	}
	e.Mode = d.bb()
	if e.Mode == 3 {
		d.fail(errors.New("entity mode 3"))
		return
	}
	d.numReactors()
	if d.since(raw.R2004) {
		d.obj.XDicMissing = d.b()
	}
	if d.between(raw.R13, raw.R14) {
		e.IsByLayerLT = d.b()
	}
	e.NoLinks = d.b()
	d.entityColor(e)
	e.LinetypeScale = d.bdRaw()
	if d.ok() && (e.LinetypeScale > d.limits.MaxLinetypeScale || e.LinetypeScale < d.limits.MinLinetypeScale) {
		d.fail(fmt.Errorf("linetype scale %g", e.LinetypeScale))
		return
	}
	if d.since(raw.R2000) {
		e.LinetypeFlags = d.bb()
		e.PlotstyleFlags = d.bb()
	}
	if d.since(raw.R2007) {
		e.MaterialFlags = d.bb()
		e.Shadow = d.rc()
	}
	e.Invisible = d.bs()
	if d.since(raw.R2000) {
		e.Lineweight = d.rc()
	}
}

// entityColor reads the entity color: a CMC before R2004, a flagged
// index/true color form afterwards.
func (d *objectDecoder) entityColor(e *raw.Entity) {
	if !d.since(raw.R2004) {
		e.Color = d.cmc()
		return
	}
	if e.NoLinks {
		d.b()
		return
	}
	if d.b() {
		e.Color.Index = int16(d.rc())
		return
	}
	e.ColorFlags = d.rs()
	if e.ColorFlags&0x8000 != 0 {
		rgb := d.bytes(4)
		if len(rgb) == 4 {
			e.Color.RGB = uint32(rgb[0])<<24 | uint32(rgb[1])<<16 | uint32(rgb[2])<<8 | uint32(rgb[3])
		}
		e.Color.Name = d.tv()
	}
	if e.ColorFlags&0x2000 != 0 {
		e.Transparency = d.bl()
	}
}

func (d *objectDecoder) numReactors() {
	d.obj.NumReactors = d.bl()
	if d.ok() && d.obj.NumReactors > d.limits.MaxReactors {
		d.fail(fmt.Errorf("%d reactors", d.obj.NumReactors))
	}
}

func (d *objectDecoder) nongraphCommon() {
	d.obj.Nongraph = &raw.Nongraph{}
	if d.between(raw.R13, raw.R14) {
		n := d.rl()
		if d.ok() && n > d.limits.MaxNongraphBits {
			d.fail(fmt.Errorf("bit size 0x%X", n))
			return
		}
		d.obj.Bitsize = n
	}
	d.numReactors()
	if d.since(raw.R2004) {
		d.obj.XDicMissing = d.b()
	}
}

func (d *objectDecoder) reactors() {
	n := d.count(d.obj.NumReactors, 8)
	d.obj.Reactors = d.handles(n)
}

func (d *objectDecoder) xdic() {
	if d.since(raw.R2004) && d.obj.XDicMissing {
		return
	}
	d.obj.XDictionary = d.h()
}

// entityHandles reads the handle block shared by all entities.
func (d *objectDecoder) entityHandles() {
	e := d.ent
	if e.Mode == 0 {
		e.Subentity = d.h()
	}
	d.reactors()
	d.xdic()
	if d.between(raw.R13, raw.R14) {
		e.Layer = d.h()
		if !e.IsByLayerLT {
			e.Ltype = d.h()
		}
	}
	if d.until(raw.R2000) && !e.NoLinks {
		e.Prev = d.h()
		e.Next = d.h()
	}
	if d.since(raw.R2000) {
		e.Layer = d.h()
		if e.LinetypeFlags == 3 {
			e.Ltype = d.h()
		}
	}
	if d.since(raw.R2007) && e.MaterialFlags == 3 {
		e.Material = d.h()
	}
	if d.since(raw.R2000) && e.PlotstyleFlags == 3 {
		e.Plotstyle = d.h()
	}
}

// ownerHandles reads the parent, reactor and extension dictionary handles
// that start the handle block of nongraph records.
func (d *objectDecoder) ownerHandles() {
	d.obj.Nongraph.Owner = d.h()
	d.reactors()
	d.xdic()
}
