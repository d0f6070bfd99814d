package parser

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/wudi/dwgkit/ir/raw"
	"github.com/wudi/dwgkit/scanner/scannertest"
)

// entityStart writes the record header and the common entity data of a
// ByLayer entity without links, extended data or reactors.
func entityStart(w *scannertest.Writer, typ uint16, handle uint32) {
	objectStart(w, typ, handle)
	w.BS(0)
	w.B(false)
	if w.Version <= raw.R14 {
		w.RL(0)
	}
	w.BB(2)
	w.BL(0)
	if w.Version >= raw.R2004 {
		w.B(true)
	}
	if w.Version <= raw.R14 {
		w.B(true)
	}
	w.B(true)
	if w.Version < raw.R2004 {
		w.CMC(raw.Color{Index: 256})
	} else {
		w.B(false)
	}
	w.BD(1)
	if w.Version >= raw.R2000 {
		w.BB(0)
		w.BB(0)
	}
	w.BS(0)
	if w.Version >= raw.R2000 {
		w.RC(0x1D)
	}
}

// entityEnd writes the common handles: the extension dictionary before
// R2004 and layer 0x10.
func entityEnd(w *scannertest.Writer) {
	if w.Version < raw.R2004 {
		w.Handle(3, 0)
	}
	w.Handle(5, 0x10)
}

func decodeEntity(t *testing.T, w *scannertest.Writer, name string) *raw.Object {
	t.Helper()
	s, _ := newTestSession(w.Version, nil)
	obj, err := s.decodeObject(sized(w), 0)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if obj.Name != name || obj.Entity == nil {
		t.Fatalf("decoded %q, want entity %s", obj.Name, name)
	}
	if obj.Entity.Layer.Value != 0x10 {
		t.Fatalf("layer = 0x%X", obj.Entity.Layer.Value)
	}
	if w.Version >= raw.R2000 && obj.Entity.Lineweight != 0x1D {
		t.Fatalf("lineweight = %d", obj.Entity.Lineweight)
	}
	return obj
}

var fullText = raw.TextCommon{
	Elevation:      1.5,
	Insertion:      raw.Point2{X: 10, Y: 20},
	Alignment:      raw.Point2{X: 30, Y: 20},
	Extrusion:      raw.UnitZ,
	ObliqueAngle:   0.25,
	Rotation:       0.5,
	Height:         2.5,
	WidthFactor:    0.8,
	Value:          "label",
	Generation:     2,
	HorizAlignment: 1,
	VertAlignment:  3,
}

// omitText clears the fields a DataFlags value leaves out of the stream.
func omitText(flags uint8) raw.TextCommon {
	t := fullText
	t.DataFlags = flags
	if flags&0x01 != 0 {
		t.Elevation = 0
	}
	if flags&0x02 != 0 {
		t.Alignment = raw.Point2{}
	}
	if flags&0x04 != 0 {
		t.ObliqueAngle = 0
	}
	if flags&0x08 != 0 {
		t.Rotation = 0
	}
	if flags&0x10 != 0 {
		t.WidthFactor = 0
	}
	if flags&0x20 != 0 {
		t.Generation = 0
	}
	if flags&0x40 != 0 {
		t.HorizAlignment = 0
	}
	if flags&0x80 != 0 {
		t.VertAlignment = 0
	}
	return t
}

func textRecord(flags uint8) *scannertest.Writer {
	f := fullText
	w := scannertest.NewWriter(raw.R2000)
	entityStart(w, 0x01, 0x40)
	w.RC(flags)
	if flags&0x01 == 0 {
		w.RD(f.Elevation)
	}
	w.Point2RD(f.Insertion)
	if flags&0x02 == 0 {
		w.DD(f.Alignment.X, f.Insertion.X)
		w.DD(f.Alignment.Y, f.Insertion.Y)
	}
	w.BE(f.Extrusion)
	w.BT(0)
	if flags&0x04 == 0 {
		w.RD(f.ObliqueAngle)
	}
	if flags&0x08 == 0 {
		w.RD(f.Rotation)
	}
	w.RD(f.Height)
	if flags&0x10 == 0 {
		w.RD(f.WidthFactor)
	}
	w.TV(f.Value)
	if flags&0x20 == 0 {
		w.BS(f.Generation)
	}
	if flags&0x40 == 0 {
		w.BS(f.HorizAlignment)
	}
	if flags&0x80 == 0 {
		w.BS(f.VertAlignment)
	}
	entityEnd(w)
	w.Handle(5, 0x11)
	return w
}

func TestDecodeTextDataFlags(t *testing.T) {
	flags := []uint8{0x00, 0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80, 0xFF}
	for _, fl := range flags {
		t.Run(fmt.Sprintf("0x%02X", fl), func(t *testing.T) {
			obj := decodeEntity(t, textRecord(fl), "TEXT")
			text := obj.Payload().(*raw.Text)
			if text.Value != "label" {
				t.Fatalf("value = %q", text.Value)
			}
			if text.Style.Code != 5 || text.Style.Value != 0x11 {
				t.Fatalf("style %+v", text.Style)
			}
			want := omitText(fl)
			want.Style = text.Style
			if text.TextCommon != want {
				t.Fatalf("got %+v\nwant %+v", text.TextCommon, want)
			}
		})
	}
}

func TestDecodeInsertScale(t *testing.T) {
	tests := []struct {
		name  string
		flag  raw.ScaleFlag
		write func(w *scannertest.Writer)
		want  raw.Point3
	}{
		{"explicit", raw.ScaleExplicit, func(w *scannertest.Writer) {
			w.RD(2)
			w.DD(3, 2)
			w.DD(2, 2)
		}, raw.Point3{X: 2, Y: 3, Z: 2}},
		{"x only", raw.ScaleXOnly, func(w *scannertest.Writer) {
			w.DD(1, 1)
			w.DD(4, 1)
		}, raw.Point3{X: 1, Y: 1, Z: 4}},
		{"uniform", raw.ScaleUniform, func(w *scannertest.Writer) {
			w.RD(5)
		}, raw.Point3{X: 5, Y: 5, Z: 5}},
		{"unit", raw.ScaleUnit, func(*scannertest.Writer) {}, raw.Point3{X: 1, Y: 1, Z: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := scannertest.NewWriter(raw.R2000)
			entityStart(w, 0x07, 0x41)
			w.Point3BD(raw.Point3{X: 1, Y: 2, Z: 3})
			w.BB(uint8(tt.flag))
			tt.write(w)
			w.BD(0.5)
			w.Point3BD(raw.UnitZ)
			w.B(false)
			entityEnd(w)
			w.Handle(5, 0x20)

			ins := decodeEntity(t, w, "INSERT").Payload().(*raw.Insert)
			if ins.ScaleFlag != tt.flag || ins.Scale != tt.want {
				t.Fatalf("flag %d scale %v, want %d %v", ins.ScaleFlag, ins.Scale, tt.flag, tt.want)
			}
			if ins.InsPt != (raw.Point3{X: 1, Y: 2, Z: 3}) || ins.Rotation != 0.5 || ins.Extrusion != raw.UnitZ {
				t.Fatalf("insertion %v rotation %g extrusion %v", ins.InsPt, ins.Rotation, ins.Extrusion)
			}
			if ins.BlockHeader.Value != 0x20 || ins.HasAttribs || len(ins.Attribs) != 0 {
				t.Fatalf("block header %+v attribs %t %v", ins.BlockHeader, ins.HasAttribs, ins.Attribs)
			}
		})
	}
}

func TestDecodeInsertAttribs(t *testing.T) {
	t.Run("R2000", func(t *testing.T) {
		w := scannertest.NewWriter(raw.R2000)
		entityStart(w, 0x07, 0x41)
		w.Point3BD(raw.Point3{})
		w.BB(uint8(raw.ScaleUnit))
		w.BD(0)
		w.Point3BD(raw.UnitZ)
		w.B(true)
		entityEnd(w)
		w.Handle(5, 0x20)
		w.Handle(4, 0x31)
		w.Handle(4, 0x32)
		w.Handle(3, 0x33)

		ins := decodeEntity(t, w, "INSERT").Payload().(*raw.Insert)
		if ins.FirstAttrib.Value != 0x31 || ins.LastAttrib.Value != 0x32 || ins.SeqEnd.Value != 0x33 {
			t.Fatalf("attribs %+v..%+v seqend %+v", ins.FirstAttrib, ins.LastAttrib, ins.SeqEnd)
		}
	})
	t.Run("R2004", func(t *testing.T) {
		w := scannertest.NewWriter(raw.R2004)
		entityStart(w, 0x07, 0x41)
		w.Point3BD(raw.Point3{})
		w.BB(uint8(raw.ScaleUnit))
		w.BD(0)
		w.Point3BD(raw.UnitZ)
		w.B(true)
		w.BL(2)
		entityEnd(w)
		w.Handle(5, 0x20)
		w.Handle(4, 0x31)
		w.Handle(4, 0x32)
		w.Handle(3, 0x33)

		obj := decodeEntity(t, w, "INSERT")
		if !obj.XDicMissing {
			t.Fatal("extension dictionary must be flagged missing")
		}
		ins := obj.Payload().(*raw.Insert)
		if ins.OwnedObjCount != 2 || len(ins.Attribs) != 2 {
			t.Fatalf("owned %d attribs %v", ins.OwnedObjCount, ins.Attribs)
		}
		if ins.Attribs[0].Value != 0x31 || ins.Attribs[1].Value != 0x32 || ins.SeqEnd.Value != 0x33 {
			t.Fatalf("attribs %v seqend %+v", ins.Attribs, ins.SeqEnd)
		}
		if ins.BlockHeader.Value != 0x20 {
			t.Fatalf("block header %+v", ins.BlockHeader)
		}
	})
}

func TestDecodeMInsert(t *testing.T) {
	w := scannertest.NewWriter(raw.R2000)
	entityStart(w, 0x08, 0x42)
	w.Point3BD(raw.Point3{X: 5})
	w.BB(uint8(raw.ScaleUniform))
	w.RD(0.5)
	w.BD(0)
	w.Point3BD(raw.UnitZ)
	w.B(false)
	w.BS(3)
	w.BS(2)
	w.BD(10)
	w.BD(7.5)
	entityEnd(w)
	w.Handle(5, 0x20)

	ins := decodeEntity(t, w, "MINSERT").Payload().(*raw.Insert)
	if !ins.Multiple || ins.NumCols != 3 || ins.NumRows != 2 {
		t.Fatalf("multiple %t grid %dx%d", ins.Multiple, ins.NumCols, ins.NumRows)
	}
	if ins.ColSpacing != 10 || ins.RowSpacing != 7.5 {
		t.Fatalf("spacing %g x %g", ins.ColSpacing, ins.RowSpacing)
	}
	if ins.Scale != (raw.Point3{X: 0.5, Y: 0.5, Z: 0.5}) || ins.BlockHeader.Value != 0x20 {
		t.Fatalf("scale %v block header %+v", ins.Scale, ins.BlockHeader)
	}
}

func TestDecodeLWPline(t *testing.T) {
	// The X coordinates exercise every DD form: a full double, the four and
	// six byte patches and an unchanged value.
	points := []raw.Point2{
		{X: 1.25, Y: 2},
		{X: 1.2578125, Y: 2},
		{X: math.Nextafter(1.2578125, 2), Y: 3},
		{X: math.Nextafter(1.2578125, 2), Y: 3},
	}
	bulges := []float64{0, 0.5, 1, 0}
	widths := []raw.LWPlineWidth{{Start: 0.1, End: 0.2}, {Start: 0.3, End: 0.4}}
	normal := raw.Point3{Z: -1}

	for _, ver := range []raw.Version{raw.R14, raw.R2000, raw.R2004} {
		t.Run(ver.String(), func(t *testing.T) {
			w := scannertest.NewWriter(ver)
			entityStart(w, 0x4D, 0x43)
			w.BS(0x3D)
			w.BD(0.5)
			w.BD(2)
			w.Point3BD(normal)
			w.BL(uint32(len(points)))
			w.BL(uint32(len(bulges)))
			w.BL(uint32(len(widths)))
			for i, p := range points {
				if ver <= raw.R14 || i == 0 {
					w.Point2RD(p)
					continue
				}
				w.DD(p.X, points[i-1].X)
				w.DD(p.Y, points[i-1].Y)
			}
			for _, b := range bulges {
				w.BD(b)
			}
			for _, wd := range widths {
				w.BD(wd.Start)
				w.BD(wd.End)
			}
			entityEnd(w)

			l := decodeEntity(t, w, "LWPLINE").Payload().(*raw.LWPline)
			if l.Flags != 0x3D || l.ConstWidth != 0.5 || l.Elevation != 2 || l.Thickness != 0 || l.Normal != normal {
				t.Fatalf("flags 0x%X width %g elevation %g thickness %g normal %v",
					l.Flags, l.ConstWidth, l.Elevation, l.Thickness, l.Normal)
			}
			if !reflect.DeepEqual(l.Points, points) {
				t.Fatalf("points %v, want %v", l.Points, points)
			}
			if !reflect.DeepEqual(l.Bulges, bulges) || !reflect.DeepEqual(l.Widths, widths) {
				t.Fatalf("bulges %v widths %v", l.Bulges, l.Widths)
			}
		})
	}
}

func TestDecodeHatch(t *testing.T) {
	w := scannertest.NewWriter(raw.R2000)
	entityStart(w, 0x4E, 0x44)
	w.BD(0)
	w.Point3BD(raw.UnitZ)
	w.TV("ANSI31")
	w.B(false)
	w.B(true)
	w.BL(2)

	// Polyline path with bulges.
	w.BL(2)
	w.B(true)
	w.B(true)
	w.BL(3)
	poly := []raw.HatchPolylineVertex{
		{Point: raw.Point2{X: 0, Y: 0}, Bulge: 0},
		{Point: raw.Point2{X: 4, Y: 0}, Bulge: 0.5},
		{Point: raw.Point2{X: 4, Y: 3}, Bulge: 0},
	}
	for _, v := range poly {
		w.Point2RD(v.Point)
		w.BD(v.Bulge)
	}
	w.BL(1)

	// Edge path: one line and one counter clockwise arc.
	w.BL(1)
	w.BL(2)
	w.RC(1)
	w.Point2RD(raw.Point2{X: 0, Y: 0})
	w.Point2RD(raw.Point2{X: 6, Y: 0})
	w.RC(2)
	w.Point2RD(raw.Point2{X: 3, Y: 0})
	w.BD(3)
	w.BD(0)
	w.BD(math.Pi)
	w.B(true)
	w.BL(1)

	w.BS(1)
	w.BS(1)
	w.BD(0.25)
	w.BD(2)
	w.B(false)
	w.BS(1)
	w.BD(0.75)
	w.BD(0)
	w.BD(0)
	w.BD(0)
	w.BD(0.125)
	w.BS(2)
	w.BD(0.5)
	w.BD(-0.25)

	w.BL(1)
	w.Point2RD(raw.Point2{X: 1, Y: 1})
	entityEnd(w)
	w.Handle(4, 0x50)
	w.Handle(4, 0x51)

	h := decodeEntity(t, w, "HATCH").Payload().(*raw.Hatch)
	if h.Name != "ANSI31" || h.SolidFill || !h.Associative || len(h.Paths) != 2 {
		t.Fatalf("name %q solid %t associative %t paths %d", h.Name, h.SolidFill, h.Associative, len(h.Paths))
	}
	pp := h.Paths[0]
	if pp.Flag != 2 || !pp.BulgesPresent || !pp.Closed || !reflect.DeepEqual(pp.Polyline, poly) {
		t.Fatalf("polyline path %+v", pp)
	}
	ep := h.Paths[1]
	if ep.Flag != 1 || len(ep.Segments) != 2 || ep.NumBoundary != 1 {
		t.Fatalf("edge path %+v", ep)
	}
	if line := ep.Segments[0]; line.Type != 1 || line.Second != (raw.Point2{X: 6}) {
		t.Fatalf("line segment %+v", line)
	}
	arc := ep.Segments[1]
	if arc.Type != 2 || arc.First != (raw.Point2{X: 3}) || arc.Radius != 3 || arc.EndAngle != math.Pi || !arc.CCW {
		t.Fatalf("arc segment %+v", arc)
	}
	if h.Angle != 0.25 || h.ScaleSpacing != 2 || len(h.DefLines) != 1 {
		t.Fatalf("angle %g scale %g def lines %d", h.Angle, h.ScaleSpacing, len(h.DefLines))
	}
	if dl := h.DefLines[0]; dl.Angle != 0.75 || dl.Offset.Y != 0.125 || !reflect.DeepEqual(dl.Dashes, []float64{0.5, -0.25}) {
		t.Fatalf("def line %+v", dl)
	}
	if len(h.SeedPoints) != 1 || h.SeedPoints[0] != (raw.Point2{X: 1, Y: 1}) {
		t.Fatalf("seed points %v", h.SeedPoints)
	}
	if len(h.Boundary) != 2 || h.Boundary[0].Value != 0x50 || h.Boundary[1].Value != 0x51 {
		t.Fatalf("boundary %v", h.Boundary)
	}
}

func TestDecodeSpline(t *testing.T) {
	t.Run("fit points", func(t *testing.T) {
		fit := []raw.Point3{{X: 0}, {X: 1, Y: 1}, {X: 2}}
		w := scannertest.NewWriter(raw.R2000)
		entityStart(w, 0x24, 0x45)
		w.BL(2)
		w.BL(3)
		w.BD(0.01)
		w.Point3BD(raw.Point3{X: 1})
		w.Point3BD(raw.Point3{Y: -1})
		w.BL(uint32(len(fit)))
		for _, p := range fit {
			w.Point3BD(p)
		}
		entityEnd(w)

		s := decodeEntity(t, w, "SPLINE").Payload().(*raw.Spline)
		if s.Scenario != 2 || s.Degree != 3 || s.FitTol != 0.01 {
			t.Fatalf("scenario %d degree %d tolerance %g", s.Scenario, s.Degree, s.FitTol)
		}
		if s.BegTanVec != (raw.Point3{X: 1}) || s.EndTanVec != (raw.Point3{Y: -1}) {
			t.Fatalf("tangents %v %v", s.BegTanVec, s.EndTanVec)
		}
		if !reflect.DeepEqual(s.FitPts, fit) || len(s.Knots) != 0 || len(s.CtrlPts) != 0 {
			t.Fatalf("fit %v knots %v control %v", s.FitPts, s.Knots, s.CtrlPts)
		}
	})
	t.Run("control points", func(t *testing.T) {
		knots := []float64{0, 0, 0, 0, 1, 1, 1, 1}
		ctrl := []raw.SplinePoint{
			{Point: raw.Point3{X: 0}, Weight: 1},
			{Point: raw.Point3{X: 1, Y: 2}, Weight: 0.5},
			{Point: raw.Point3{X: 3, Y: 2}, Weight: 0.5},
			{Point: raw.Point3{X: 4}, Weight: 1},
		}
		w := scannertest.NewWriter(raw.R2004)
		entityStart(w, 0x24, 0x45)
		w.BL(1)
		w.BL(3)
		w.B(true)
		w.B(false)
		w.B(false)
		w.BD(1e-7)
		w.BD(1e-7)
		w.BL(uint32(len(knots)))
		w.BL(uint32(len(ctrl)))
		w.B(true)
		for _, k := range knots {
			w.BD(k)
		}
		for _, c := range ctrl {
			w.Point3BD(c.Point)
			w.BD(c.Weight)
		}
		entityEnd(w)

		s := decodeEntity(t, w, "SPLINE").Payload().(*raw.Spline)
		if s.Scenario != 1 || !s.Rational || s.Closed || s.Periodic || !s.Weighted {
			t.Fatalf("scenario %d rational %t closed %t periodic %t weighted %t",
				s.Scenario, s.Rational, s.Closed, s.Periodic, s.Weighted)
		}
		if s.KnotTol != 1e-7 || s.CtrlTol != 1e-7 {
			t.Fatalf("tolerances %g %g", s.KnotTol, s.CtrlTol)
		}
		if !reflect.DeepEqual(s.Knots, knots) || !reflect.DeepEqual(s.CtrlPts, ctrl) || len(s.FitPts) != 0 {
			t.Fatalf("knots %v control %v fit %v", s.Knots, s.CtrlPts, s.FitPts)
		}
	})
}

func TestDecodeLayer(t *testing.T) {
	for _, ver := range []raw.Version{raw.R14, raw.R2000, raw.R2004} {
		t.Run(ver.String(), func(t *testing.T) {
			w := scannertest.NewWriter(ver)
			objectStart(w, 0x33, 0x10)
			w.BS(0)
			nongraphStart(w, 0)
			w.TV("WALLS")
			w.B(false)
			w.BS(0)
			w.B(false)
			if ver <= raw.R14 {
				w.B(false)
				w.B(true)
				w.B(false)
				w.B(true)
			} else {
				w.BS(0x0E)
			}
			w.CMC(raw.Color{Index: 3})
			w.Handle(4, 0x2)
			if ver < raw.R2004 {
				w.Handle(3, 0)
			}
			w.Handle(5, 0)
			if ver >= raw.R2000 {
				w.Handle(5, 0x0F)
			}
			w.Handle(5, 0x14)

			s, _ := newTestSession(ver, nil)
			obj, err := s.decodeObject(sized(w), 0)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			l, ok := obj.Payload().(*raw.Layer)
			if !ok || obj.Supertype != raw.SupertypeNongraph {
				t.Fatalf("payload is %T", obj.Payload())
			}
			if l.EntryName != "WALLS" || l.Color.Index != 3 || l.Linetype.Value != 0x14 {
				t.Fatalf("name %q color %d linetype %+v", l.EntryName, l.Color.Index, l.Linetype)
			}
			if obj.Nongraph.Owner.Value != 0x2 {
				t.Fatalf("owner %+v", obj.Nongraph.Owner)
			}
			if ver <= raw.R14 {
				if l.Frozen || !l.On || l.FrozenInNew || !l.Locked {
					t.Fatalf("frozen %t on %t new %t locked %t", l.Frozen, l.On, l.FrozenInNew, l.Locked)
				}
				return
			}
			if l.Values != 0x0E || l.Plotstyle.Value != 0x0F {
				t.Fatalf("values 0x%X plot style %+v", l.Values, l.Plotstyle)
			}
		})
	}
}

func TestDecodeClassXRecord(t *testing.T) {
	data := []byte{1, 0, 'x', 0}
	for _, ver := range []raw.Version{raw.R2000, raw.R2004} {
		t.Run(ver.String(), func(t *testing.T) {
			w := scannertest.NewWriter(ver)
			objectStart(w, 500, 0x60)
			w.BS(0)
			nongraphStart(w, 0)
			w.BL(uint32(len(data)))
			w.Bytes(data)
			w.BS(1)
			w.Handle(4, 0x0C)
			if ver < raw.R2004 {
				w.Handle(3, 0)
			}

			s, _ := newTestSession(ver, nil)
			s.doc.Classes = []raw.Class{{Number: 500, DxfName: "XRECORD"}}
			obj, err := s.decodeObject(sized(w), 0)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if obj.Name != "XRECORD" || obj.Type != 500 {
				t.Fatalf("decoded %q type %d", obj.Name, obj.Type)
			}
			x := obj.Payload().(*raw.XRecord)
			if !bytes.Equal(x.Data, data) || x.CloningFlags != 1 {
				t.Fatalf("data %v cloning %d", x.Data, x.CloningFlags)
			}
			if obj.Nongraph.Owner.Value != 0x0C {
				t.Fatalf("owner %+v", obj.Nongraph.Owner)
			}
		})
	}
}
