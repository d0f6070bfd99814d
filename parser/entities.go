package parser

import (
	"github.com/wudi/dwgkit/ir/raw"
	"github.com/wudi/dwgkit/observability"
)

func (d *objectDecoder) textCommon(t *raw.TextCommon, value *string) {
	if d.until(raw.R14) {
		t.Elevation = d.bd()
		t.Insertion = d.pt2rd()
		t.Alignment = d.pt2rd()
		t.Extrusion = d.pt3bd()
		t.Thickness = d.bd()
		t.ObliqueAngle = d.bd()
		t.Rotation = d.bd()
		t.Height = d.bd()
		t.WidthFactor = d.bd()
		*value = d.tv()
		t.Generation = d.bs()
		t.HorizAlignment = d.bs()
		t.VertAlignment = d.bs()
		return
	}
	// Each set bit of DataFlags omits one field.
	t.DataFlags = d.rc()
	if t.DataFlags&0x01 == 0 {
		t.Elevation = d.rd()
	}
	t.Insertion = d.pt2rd()
	if t.DataFlags&0x02 == 0 {
		t.Alignment = d.pt2dd(t.Insertion)
	}
	t.Extrusion = d.be()
	t.Thickness = d.bt()
	if t.DataFlags&0x04 == 0 {
		t.ObliqueAngle = d.rd()
	}
	if t.DataFlags&0x08 == 0 {
		t.Rotation = d.rd()
	}
	t.Height = d.rd()
	if t.DataFlags&0x10 == 0 {
		t.WidthFactor = d.rd()
	}
	*value = d.tv()
	if t.DataFlags&0x20 == 0 {
		t.Generation = d.bs()
	}
	if t.DataFlags&0x40 == 0 {
		t.HorizAlignment = d.bs()
	}
	if t.DataFlags&0x80 == 0 {
		t.VertAlignment = d.bs()
	}
}

func readText(d *objectDecoder) raw.Payload {
	t := &raw.Text{}
	d.textCommon(&t.TextCommon, &t.Value)
	d.entityHandles()
	t.Style = d.h()
	return t
}

func (d *objectDecoder) attribTail(a *raw.Attrib) {
	a.Tag = d.tv()
	a.FieldLength = d.bs()
	a.Flags = d.rc()
	if d.since(raw.R2007) {
		a.LockPosition = d.b()
	}
}

func readAttrib(d *objectDecoder) raw.Payload {
	a := &raw.Attrib{}
	d.textCommon(&a.TextCommon, &a.Value)
	d.attribTail(a)
	d.entityHandles()
	a.Style = d.h()
	return a
}

// readAttdef stores the default value in Value.
func readAttdef(d *objectDecoder) raw.Payload {
	a := &raw.Attdef{}
	d.textCommon(&a.TextCommon, &a.Value)
	d.attribTail(&a.Attrib)
	a.Prompt = d.tv()
	d.entityHandles()
	a.Style = d.h()
	return a
}

func readBlock(d *objectDecoder) raw.Payload {
	b := &raw.Block{Name: d.tv()}
	d.entityHandles()
	return b
}

func readEndBlk(d *objectDecoder) raw.Payload {
	d.entityHandles()
	return &raw.EndBlk{}
}

func readSeqEnd(d *objectDecoder) raw.Payload {
	d.entityHandles()
	return &raw.SeqEnd{}
}

func (d *objectDecoder) scale(ins *raw.Insert) {
	if d.until(raw.R14) {
		ins.Scale = d.pt3bd()
		return
	}
	ins.ScaleFlag = raw.ScaleFlag(d.bb())
	switch ins.ScaleFlag {
	case raw.ScaleUnit:
		ins.Scale = ins.ScaleFlag.Scale(1, 1, 1)
	case raw.ScaleXOnly:
		y := d.dd(1)
		ins.Scale = ins.ScaleFlag.Scale(1, y, d.dd(1))
	case raw.ScaleUniform:
		x := d.rd()
		ins.Scale = ins.ScaleFlag.Scale(x, x, x)
	default:
		x := d.rd()
		y := d.dd(x)
		ins.Scale = ins.ScaleFlag.Scale(x, y, d.dd(x))
	}
}

func (d *objectDecoder) insertHandles(ins *raw.Insert) {
	ins.BlockHeader = d.h()
	if d.until(raw.R2000) {
		if ins.HasAttribs {
			ins.FirstAttrib = d.h()
			ins.LastAttrib = d.h()
		}
	} else if ins.HasAttribs || ins.Multiple {
		ins.Attribs = d.handles(d.count(ins.OwnedObjCount, 8))
	}
	if ins.HasAttribs {
		ins.SeqEnd = d.h()
	}
}

func readInsert(d *objectDecoder) raw.Payload {
	ins := &raw.Insert{}
	ins.InsPt = d.pt3bd()
	d.scale(ins)
	ins.Rotation = d.bd()
	ins.Extrusion = d.pt3bd()
	ins.HasAttribs = d.b()
	if d.since(raw.R2004) && ins.HasAttribs {
		ins.OwnedObjCount = d.bl()
	}
	d.entityHandles()
	d.insertHandles(ins)
	return ins
}

func readMInsert(d *objectDecoder) raw.Payload {
	ins := &raw.Insert{Multiple: true}
	ins.InsPt = d.pt3bd()
	d.scale(ins)
	ins.Rotation = d.bd()
	ins.Extrusion = d.pt3bd()
	ins.HasAttribs = d.b()
	if d.since(raw.R2004) && ins.HasAttribs {
		ins.OwnedObjCount = d.bl()
	}
	ins.NumCols = d.bs()
	ins.NumRows = d.bs()
	ins.ColSpacing = d.bd()
	ins.RowSpacing = d.bd()
	d.entityHandles()
	d.insertHandles(ins)
	return ins
}

func readVertex2D(d *objectDecoder) raw.Payload {
	v := &raw.Vertex2D{}
	v.Flags = d.rc()
	v.Point = d.pt3bd()
	// A negative start width stands for equal start and end widths.
	v.StartWidth = d.bd()
	if v.StartWidth < 0 {
		v.StartWidth = -v.StartWidth
		v.EndWidth = v.StartWidth
	} else {
		v.EndWidth = d.bd()
	}
	v.Bulge = d.bd()
	v.TangentDir = d.bd()
	d.entityHandles()
	return v
}

func vertex3D(kind string) decodeFunc {
	return func(d *objectDecoder) raw.Payload {
		v := &raw.Vertex3D{Kind: kind}
		v.Flags = d.rc()
		v.Point = d.pt3bd()
		d.entityHandles()
		return v
	}
}

func readVertexPFaceFace(d *objectDecoder) raw.Payload {
	v := &raw.VertexPFaceFace{}
	for i := range v.VertInd {
		v.VertInd[i] = d.bs()
	}
	d.entityHandles()
	return v
}

func (d *objectDecoder) ownedCount(l *raw.PolylineLinks) {
	if d.since(raw.R2004) {
		l.OwnedObjCount = d.bl()
	}
}

func (d *objectDecoder) polylineLinks(l *raw.PolylineLinks) {
	d.entityHandles()
	if d.until(raw.R2000) {
		l.FirstVertex = d.h()
		l.LastVertex = d.h()
	} else {
		l.Vertices = d.handles(d.count(l.OwnedObjCount, 8))
	}
	l.SeqEnd = d.h()
}

func readPolyline2D(d *objectDecoder) raw.Payload {
	p := &raw.Polyline2D{}
	p.Flags = d.bs()
	p.CurveType = d.bs()
	p.StartWidth = d.bd()
	p.EndWidth = d.bd()
	p.Thickness = d.bt()
	p.Elevation = d.bd()
	p.Extrusion = d.be()
	d.ownedCount(&p.PolylineLinks)
	d.polylineLinks(&p.PolylineLinks)
	return p
}

func readPolyline3D(d *objectDecoder) raw.Payload {
	p := &raw.Polyline3D{}
	p.Flags1 = d.rc()
	p.Flags2 = d.rc()
	d.ownedCount(&p.PolylineLinks)
	d.polylineLinks(&p.PolylineLinks)
	return p
}

func readPolylinePFace(d *objectDecoder) raw.Payload {
	p := &raw.PolylinePFace{}
	p.NumVerts = d.bs()
	p.NumFaces = d.bs()
	d.ownedCount(&p.PolylineLinks)
	d.polylineLinks(&p.PolylineLinks)
	return p
}

func readPolylineMesh(d *objectDecoder) raw.Payload {
	p := &raw.PolylineMesh{}
	p.Flags = d.bs()
	p.CurveType = d.bs()
	p.MVertCount = d.bs()
	p.NVertCount = d.bs()
	p.MDensity = d.bs()
	p.NDensity = d.bs()
	d.ownedCount(&p.PolylineLinks)
	d.polylineLinks(&p.PolylineLinks)
	return p
}

func readArc(d *objectDecoder) raw.Payload {
	a := &raw.Arc{}
	a.Center = d.pt3bd()
	a.Radius = d.bd()
	a.Thickness = d.bt()
	a.Extrusion = d.be()
	a.StartAngle = d.bd()
	a.EndAngle = d.bd()
	d.entityHandles()
	return a
}

func readCircle(d *objectDecoder) raw.Payload {
	c := &raw.Circle{}
	c.Center = d.pt3bd()
	c.Radius = d.bd()
	c.Thickness = d.bt()
	c.Extrusion = d.be()
	d.entityHandles()
	return c
}

func readLine(d *objectDecoder) raw.Payload {
	l := &raw.Line{}
	if d.until(raw.R14) {
		l.Start = d.pt3bd()
		l.End = d.pt3bd()
	} else {
		l.ZsAreZero = d.b()
		l.Start.X = d.rd()
		l.End.X = d.dd(l.Start.X)
		l.Start.Y = d.rd()
		l.End.Y = d.dd(l.Start.Y)
		if !l.ZsAreZero {
			l.Start.Z = d.rd()
			l.End.Z = d.dd(l.Start.Z)
		}
	}
	l.Thickness = d.bt()
	l.Extrusion = d.be()
	d.entityHandles()
	return l
}

func (d *objectDecoder) dimensionCommon(c *raw.DimensionCommon) {
	c.Extrusion = d.pt3bd()
	c.TextMidpt = d.pt2rd()
	c.Elevation = d.bd()
	c.Flags1 = d.rc()
	c.UserText = d.tv()
	c.TextRot = d.bd()
	c.HorizDir = d.bd()
	c.InsScale = d.pt3bd()
	c.InsRotation = d.bd()
	if d.since(raw.R2000) {
		c.AttachmentPoint = d.bs()
		c.LinespaceStyle = d.bs()
		c.LinespaceFactor = d.bd()
		c.ActMeasurement = d.bd()
	}
	if d.since(raw.R2007) {
		c.Unknown = d.b()
		c.FlipArrow1 = d.b()
		c.FlipArrow2 = d.b()
	}
}

// dimension returns the decoder of one dimension flavour; points lists the
// flavour specific fields in stream order.
func dimension(kind string, points func(d *objectDecoder, dim *raw.Dimension)) decodeFunc {
	return func(d *objectDecoder) raw.Payload {
		dim := &raw.Dimension{Kind: kind}
		d.dimensionCommon(&dim.DimensionCommon)
		points(d, dim)
		d.entityHandles()
		dim.DimStyle = d.h()
		dim.Block = d.h()
		return dim
	}
}

var (
	readDimOrdinate = dimension("ORDINATE", func(d *objectDecoder, dim *raw.Dimension) {
		dim.Pt12 = d.pt2rd()
		dim.Pt10 = d.pt3bd()
		dim.Pt13 = d.pt3bd()
		dim.Pt14 = d.pt3bd()
		dim.Flags2 = d.rc()
	})
	readDimLinear = dimension("LINEAR", func(d *objectDecoder, dim *raw.Dimension) {
		dim.Pt12 = d.pt2rd()
		dim.Pt13 = d.pt3bd()
		dim.Pt14 = d.pt3bd()
		dim.Pt10 = d.pt3bd()
		dim.ExtLineRot = d.bd()
		dim.DimRot = d.bd()
	})
	readDimAligned = dimension("ALIGNED", func(d *objectDecoder, dim *raw.Dimension) {
		dim.Pt12 = d.pt2rd()
		dim.Pt13 = d.pt3bd()
		dim.Pt14 = d.pt3bd()
		dim.Pt10 = d.pt3bd()
		dim.ExtLineRot = d.bd()
	})
	readDimAng3Pt = dimension("ANG3PT", func(d *objectDecoder, dim *raw.Dimension) {
		dim.Pt12 = d.pt2rd()
		dim.Pt10 = d.pt3bd()
		dim.Pt13 = d.pt3bd()
		dim.Pt14 = d.pt3bd()
		dim.Pt15 = d.pt3bd()
	})
	readDimAng2Ln = dimension("ANG2LN", func(d *objectDecoder, dim *raw.Dimension) {
		dim.Pt12 = d.pt2rd()
		dim.Pt16 = d.pt2rd()
		dim.Pt13 = d.pt3bd()
		dim.Pt14 = d.pt3bd()
		dim.Pt15 = d.pt3bd()
		dim.Pt10 = d.pt3bd()
	})
	readDimRadius = dimension("RADIUS", func(d *objectDecoder, dim *raw.Dimension) {
		dim.Pt12 = d.pt2rd()
		dim.Pt10 = d.pt3bd()
		dim.Pt15 = d.pt3bd()
		dim.LeaderLen = d.bd()
	})
	readDimDiameter = dimension("DIAMETER", func(d *objectDecoder, dim *raw.Dimension) {
		dim.Pt12 = d.pt2rd()
		dim.Pt15 = d.pt3bd()
		dim.Pt10 = d.pt3bd()
		dim.LeaderLen = d.bd()
	})
)

func readPoint(d *objectDecoder) raw.Payload {
	p := &raw.PointEnt{}
	p.X = d.bd()
	p.Y = d.bd()
	p.Z = d.bd()
	p.Thickness = d.bt()
	p.Extrusion = d.be()
	p.XAng = d.bd()
	d.entityHandles()
	return p
}

func read3DFace(d *objectDecoder) raw.Payload {
	fc := &raw.Face3D{}
	if d.until(raw.R14) {
		for i := range fc.Corners {
			fc.Corners[i] = d.pt3bd()
		}
		fc.InvisFlags = d.bs()
	} else {
		fc.HasNoFlags = d.b()
		fc.ZIsZero = d.b()
		c := &fc.Corners[0]
		c.X = d.rd()
		c.Y = d.rd()
		if !fc.ZIsZero {
			c.Z = d.rd()
		}
		// Each corner is coded against the previous one.
		for i := 1; i < len(fc.Corners); i++ {
			prev := fc.Corners[i-1]
			fc.Corners[i].X = d.dd(prev.X)
			fc.Corners[i].Y = d.dd(prev.Y)
			fc.Corners[i].Z = d.dd(prev.Z)
		}
	}
	d.entityHandles()
	return fc
}

func solid(kind string) decodeFunc {
	return func(d *objectDecoder) raw.Payload {
		s := &raw.Solid{Kind: kind}
		s.Thickness = d.bt()
		s.Elevation = d.bd()
		for i := range s.Corners {
			s.Corners[i] = d.pt2rd()
		}
		s.Extrusion = d.be()
		d.entityHandles()
		return s
	}
}

func readShape(d *objectDecoder) raw.Payload {
	s := &raw.Shape{}
	s.InsPt = d.pt3bd()
	s.Scale = d.bd()
	s.Rotation = d.bd()
	s.WidthFactor = d.bd()
	s.Oblique = d.bd()
	s.Thickness = d.bd()
	s.ShapeNo = d.bs()
	s.Extrusion = d.pt3bd()
	d.entityHandles()
	s.ShapeFile = d.h()
	return s
}

func readViewport(d *objectDecoder) raw.Payload {
	v := &raw.Viewport{}
	v.Center = d.pt3bd()
	v.Width = d.bd()
	v.Height = d.bd()
	if d.since(raw.R2000) {
		v.ViewTarget = d.pt3bd()
		v.ViewDirection = d.pt3bd()
		v.ViewTwist = d.bd()
		v.ViewHeight = d.bd()
		v.LensLength = d.bd()
		v.FrontClip = d.bd()
		v.BackClip = d.bd()
		v.SnapAngle = d.bd()
		v.ViewCenter = d.pt2rd()
		v.SnapBase = d.pt2rd()
		v.SnapSpacing = d.pt2rd()
		v.GridSpacing = d.pt2rd()
		v.CircleZoom = d.bs()
	}
	if d.since(raw.R2007) {
		v.GridMajor = d.bs()
	}
	if d.since(raw.R2000) {
		v.FrozenLayerCount = d.bl()
		v.StatusFlags = d.bl()
		v.StyleSheet = d.tv()
		v.RenderMode = d.rc()
		v.UCSAtOrigin = d.b()
		v.UCSPerViewport = d.b()
		v.UCSOrigin = d.pt3bd()
		v.UCSXAxis = d.pt3bd()
		v.UCSYAxis = d.pt3bd()
		v.UCSElevation = d.bd()
		v.UCSOrthoViewType = d.bs()
	}
	if d.since(raw.R2004) {
		v.ShadeplotMode = d.bs()
	}
	if d.since(raw.R2007) {
		v.UseDefLights = d.b()
		v.DefLightingType = d.rc()
		v.Brightness = d.bd()
		v.Contrast = d.bd()
		v.Ambient = d.cmc()
	}
	d.entityHandles()
	return v
}

func readEllipse(d *objectDecoder) raw.Payload {
	e := &raw.Ellipse{}
	e.Center = d.pt3bd()
	e.SmAxis = d.pt3bd()
	e.Extrusion = d.pt3bd()
	e.AxisRatio = d.bd()
	e.StartAngle = d.bd()
	e.EndAngle = d.bd()
	d.entityHandles()
	return e
}

func readSpline(d *objectDecoder) raw.Payload {
	s := &raw.Spline{}
	s.Scenario = d.bl()
	s.Degree = d.bl()
	var numFit, numKnots, numCtrl uint32
	if s.Scenario&2 != 0 {
		s.FitTol = d.bd()
		s.BegTanVec = d.pt3bd()
		s.EndTanVec = d.pt3bd()
		numFit = d.bl()
	}
	if s.Scenario&1 != 0 {
		s.Rational = d.b()
		s.Closed = d.b()
		s.Periodic = d.b()
		s.KnotTol = d.bd()
		s.CtrlTol = d.bd()
		numKnots = d.bl()
		numCtrl = d.bl()
		s.Weighted = d.b()
	}
	s.Knots = make([]float64, 0, d.count(numKnots, 2))
	for i := uint32(0); i < numKnots && d.ok(); i++ {
		s.Knots = append(s.Knots, d.bd())
	}
	s.CtrlPts = make([]raw.SplinePoint, 0, d.count(numCtrl, 6))
	for i := uint32(0); i < numCtrl && d.ok(); i++ {
		p := raw.SplinePoint{Point: d.pt3bd()}
		if s.Weighted {
			p.Weight = d.bd()
		}
		s.CtrlPts = append(s.CtrlPts, p)
	}
	s.FitPts = d.points3(numFit)
	d.entityHandles()
	return s
}

// points3 reads n 3BD points.
func (d *objectDecoder) points3(n uint32) []raw.Point3 {
	out := make([]raw.Point3, 0, d.count(n, 6))
	for i := uint32(0); i < n && d.ok(); i++ {
		out = append(out, d.pt3bd())
	}
	return out
}

// points2 reads n 2RD points.
func (d *objectDecoder) points2(n uint32) []raw.Point2 {
	out := make([]raw.Point2, 0, d.count(n, 128))
	for i := uint32(0); i < n && d.ok(); i++ {
		out = append(out, d.pt2rd())
	}
	return out
}

func (d *objectDecoder) doubles(n uint32) []float64 {
	out := make([]float64, 0, d.count(n, 2))
	for i := uint32(0); i < n && d.ok(); i++ {
		out = append(out, d.bd())
	}
	return out
}

func (d *objectDecoder) wire() raw.Wire {
	w := raw.Wire{}
	w.Type = d.rc()
	w.SelectionMarker = d.bl()
	w.Color = d.bs()
	w.AcisIndex = d.bl()
	w.Points = d.points3(d.bl())
	w.TransformPresent = d.b()
	if w.TransformPresent {
		w.AxisX = d.pt3bd()
		w.AxisY = d.pt3bd()
		w.AxisZ = d.pt3bd()
		w.Translation = d.pt3bd()
		w.Scale = d.bd()
		w.HasRotation = d.b()
		w.HasReflection = d.b()
		w.HasShear = d.b()
	}
	return w
}

func (d *objectDecoder) wires(n uint32) []raw.Wire {
	out := make([]raw.Wire, 0, d.count(n, 8))
	for i := uint32(0); i < n && d.ok(); i++ {
		out = append(out, d.wire())
	}
	return out
}

// satByte undoes the character obfuscation of embedded SAT text.
func satByte(c byte) byte {
	if c <= 32 {
		return c
	}
	return 159 - c
}

// modeler returns the decoder shared by REGION, 3DSOLID and BODY. A record
// with AcisEmpty set carries nothing else, not even its handles.
func modeler(kind string) decodeFunc {
	return func(d *objectDecoder) raw.Payload {
		s := &raw.Solid3D{Kind: kind}
		s.AcisEmpty = d.b()
		if s.AcisEmpty {
			return s
		}
		s.Unknown = d.b()
		s.Version = d.bs()
		if s.Version == 1 {
			for d.ok() {
				size := d.bl()
				if size == 0 {
					break
				}
				block := d.bytes(d.count(size, 8))
				s.BlockSizes = append(s.BlockSizes, size)
				for _, c := range block {
					s.ACISData = append(s.ACISData, satByte(c))
				}
			}
		} else {
			d.s.logger.Warn("modeler data version not decoded", observability.Int("version", int(s.Version)))
		}
		s.WireframePresent = d.b()
		if s.WireframePresent {
			s.PointPresent = d.b()
			if s.PointPresent {
				s.Point = d.pt3bd()
			}
			s.NumIsolines = d.bl()
			s.IsolinePresent = d.b()
			if s.IsolinePresent {
				s.Wires = d.wires(d.bl())
				n := d.bl()
				s.Silhouettes = make([]raw.Silhouette, 0, d.count(n, 8))
				for i := uint32(0); i < n && d.ok(); i++ {
					sil := raw.Silhouette{}
					sil.VpID = d.bl()
					sil.VpTarget = d.pt3bd()
					sil.VpDirection = d.pt3bd()
					sil.VpUpVector = d.pt3bd()
					sil.Perspective = d.b()
					sil.Wires = d.wires(d.bl())
					s.Silhouettes = append(s.Silhouettes, sil)
				}
			}
		}
		s.AcisEmptyBit = d.b()
		if d.since(raw.R2007) {
			s.Unknown2007 = d.bl()
		}
		d.entityHandles()
		if d.since(raw.R2007) {
			s.HistoryID = d.h()
		}
		return s
	}
}

func ray(kind string) decodeFunc {
	return func(d *objectDecoder) raw.Payload {
		r := &raw.Ray{Kind: kind}
		r.Point = d.pt3bd()
		r.Vector = d.pt3bd()
		d.entityHandles()
		return r
	}
}

func readMText(d *objectDecoder) raw.Payload {
	m := &raw.MText{}
	m.Insertion = d.pt3bd()
	m.Extrusion = d.pt3bd()
	m.XAxisDir = d.pt3bd()
	if d.since(raw.R2007) {
		m.RectHeight = d.bd()
	}
	m.RectWidth = d.bd()
	m.TextHeight = d.bd()
	m.Attachment = d.bs()
	m.DrawingDir = d.bs()
	m.ExtentsHeight = d.bd()
	m.ExtentsWidth = d.bd()
	m.Text = d.tv()
	if d.since(raw.R2000) {
		m.LinespaceStyle = d.bs()
		m.LinespaceFactor = d.bd()
		m.UnknownBit = d.b()
	}
	if d.since(raw.R2004) {
		m.UnknownLong = d.bl()
	}
	d.entityHandles()
	m.Style = d.h()
	return m
}

func readLeader(d *objectDecoder) raw.Payload {
	l := &raw.Leader{}
	l.UnknownBit1 = d.b()
	l.AnnotType = d.bs()
	l.PathType = d.bs()
	l.Points = d.points3(d.bl())
	l.EndPtProj = d.pt3bd()
	l.Extrusion = d.pt3bd()
	l.XDirection = d.pt3bd()
	l.OffsetToBlockInsPt = d.pt3bd()
	if d.since(raw.R14) {
		l.UnknownPt = d.pt3bd()
	}
	if d.until(raw.R14) {
		l.DimGap = d.bd()
	}
	l.BoxHeight = d.bd()
	l.BoxWidth = d.bd()
	l.HooklineOnXDir = d.b()
	l.ArrowheadOn = d.b()
	if d.until(raw.R14) {
		l.ArrowheadType = d.bs()
		l.DimAsz = d.bd()
		d.b()
		d.b()
		l.UnknownShort1 = d.bs()
		l.ByBlockColor = d.bs()
		d.b()
		d.b()
	} else {
		l.UnknownShort1 = d.bs()
		d.b()
		d.b()
	}
	d.entityHandles()
	if d.since(raw.R14) {
		l.AssociatedAnnotation = d.h()
	}
	l.DimStyle = d.h()
	return l
}

func readTolerance(d *objectDecoder) raw.Payload {
	t := &raw.Tolerance{}
	if d.until(raw.R14) {
		t.UnknownShort = d.bs()
		t.Height = d.bd()
		t.DimGap = d.bd()
	}
	t.InsPt = d.pt3bd()
	t.XDirection = d.pt3bd()
	t.Extrusion = d.pt3bd()
	t.Text = d.tv()
	d.entityHandles()
	t.DimStyle = d.h()
	return t
}

func readMLine(d *objectDecoder) raw.Payload {
	m := &raw.MLine{}
	m.Scale = d.bd()
	m.Justification = d.rc()
	m.BasePoint = d.pt3bd()
	m.Extrusion = d.pt3bd()
	m.OpenClosed = d.bs()
	m.NumLines = d.rc()
	n := d.bs()
	m.Verts = make([]raw.MLineVertex, 0, d.count(uint32(n), 18))
	for i := uint16(0); i < n && d.ok(); i++ {
		v := raw.MLineVertex{}
		v.Vertex = d.pt3bd()
		v.VertexDirection = d.pt3bd()
		v.MiterDirection = d.pt3bd()
		v.Lines = make([]raw.MLineVertexLine, 0, d.count(uint32(m.NumLines), 4))
		for j := uint8(0); j < m.NumLines && d.ok(); j++ {
			var l raw.MLineVertexLine
			l.SegParms = d.doubles(uint32(d.bs()))
			l.AreaFillParms = d.doubles(uint32(d.bs()))
			v.Lines = append(v.Lines, l)
		}
		m.Verts = append(m.Verts, v)
	}
	d.entityHandles()
	m.MLineStyle = d.h()
	return m
}

func readHatch(d *objectDecoder) raw.Payload {
	h := &raw.Hatch{}
	if d.since(raw.R2004) {
		h.IsGradient = d.bl()
		h.Reserved = d.bl()
		h.GradientAngle = d.bd()
		h.GradientShift = d.bd()
		h.SingleColor = d.bl()
		h.GradientTint = d.bd()
		n := d.bl()
		h.GradientColors = make([]raw.GradientColor, 0, d.count(n, 20))
		for i := uint32(0); i < n && d.ok(); i++ {
			var c raw.GradientColor
			c.Shift = d.bd()
			c.Index = d.bs()
			c.RGB = d.bl()
			c.Flag = d.rc()
			h.GradientColors = append(h.GradientColors, c)
		}
		h.GradientName = d.tv()
	}
	h.ZCoord = d.bd()
	h.Extrusion = d.pt3bd()
	h.Name = d.tv()
	h.SolidFill = d.b()
	h.Associative = d.b()
	numPaths := d.bl()
	h.Paths = make([]raw.HatchPath, 0, d.count(numPaths, 4))
	var boundary uint32
	derived := false
	for i := uint32(0); i < numPaths && d.ok(); i++ {
		p := d.hatchPath()
		boundary += p.NumBoundary
		derived = derived || p.Flag&4 != 0
		h.Paths = append(h.Paths, p)
	}
	h.Style = d.bs()
	h.PatternType = d.bs()
	if !h.SolidFill {
		h.Angle = d.bd()
		h.ScaleSpacing = d.bd()
		h.DoubleFlag = d.b()
		n := d.bs()
		h.DefLines = make([]raw.HatchDefLine, 0, d.count(uint32(n), 12))
		for i := uint16(0); i < n && d.ok(); i++ {
			var l raw.HatchDefLine
			l.Angle = d.bd()
			l.Pt0 = d.pt2bd()
			l.Offset = d.pt2bd()
			l.Dashes = d.doubles(uint32(d.bs()))
			h.DefLines = append(h.DefLines, l)
		}
	}
	if derived {
		h.PixelSize = d.bd()
	}
	h.SeedPoints = d.points2(d.bl())
	d.entityHandles()
	h.Boundary = d.handles(d.count(boundary, 8))
	return h
}

func (d *objectDecoder) hatchPath() raw.HatchPath {
	p := raw.HatchPath{Flag: d.bl()}
	if p.Flag&2 == 0 {
		n := d.bl()
		p.Segments = make([]raw.HatchSegment, 0, d.count(n, 8))
		for i := uint32(0); i < n && d.ok(); i++ {
			p.Segments = append(p.Segments, d.hatchSegment())
		}
	} else {
		p.BulgesPresent = d.b()
		p.Closed = d.b()
		n := d.bl()
		p.Polyline = make([]raw.HatchPolylineVertex, 0, d.count(n, 128))
		for i := uint32(0); i < n && d.ok(); i++ {
			v := raw.HatchPolylineVertex{Point: d.pt2rd()}
			if p.BulgesPresent {
				v.Bulge = d.bd()
			}
			p.Polyline = append(p.Polyline, v)
		}
	}
	p.NumBoundary = d.bl()
	return p
}

func (d *objectDecoder) hatchSegment() raw.HatchSegment {
	s := raw.HatchSegment{Type: d.rc()}
	switch s.Type {
	case 1:
		s.First = d.pt2rd()
		s.Second = d.pt2rd()
	case 2:
		s.First = d.pt2rd()
		s.Radius = d.bd()
		s.StartAngle = d.bd()
		s.EndAngle = d.bd()
		s.CCW = d.b()
	case 3:
		s.First = d.pt2rd()
		s.Second = d.pt2rd()
		s.Ratio = d.bd()
		s.StartAngle = d.bd()
		s.EndAngle = d.bd()
		s.CCW = d.b()
	case 4:
		s.Degree = d.bl()
		s.Rational = d.b()
		s.Periodic = d.b()
		numKnots := d.bl()
		numCtrl := d.bl()
		s.Knots = d.doubles(numKnots)
		s.ControlPoints = make([]raw.SplinePointWeight2, 0, d.count(numCtrl, 128))
		for i := uint32(0); i < numCtrl && d.ok(); i++ {
			c := raw.SplinePointWeight2{Point: d.pt2rd()}
			if s.Rational {
				c.Weight = d.bd()
			}
			s.ControlPoints = append(s.ControlPoints, c)
		}
	}
	return s
}

// imageEntity returns the decoder of IMAGE and of WIPEOUT, which shares its
// layout.
func imageEntity(kind string) decodeFunc {
	return func(d *objectDecoder) raw.Payload {
		im := &raw.Image{Kind: kind}
		im.ClassVersion = d.bl()
		im.Pt0 = d.pt3bd()
		im.UVec = d.pt3bd()
		im.VVec = d.pt3bd()
		im.Size = d.pt2rd()
		im.DisplayProps = d.bs()
		im.Clipping = d.b()
		im.Brightness = d.rc()
		im.Contrast = d.rc()
		im.Fade = d.rc()
		im.ClipBoundaryType = d.bs()
		if im.ClipBoundaryType == 1 {
			im.ClipVerts = []raw.Point2{d.pt2rd(), d.pt2rd()}
		} else {
			im.ClipVerts = d.points2(d.bl())
		}
		d.entityHandles()
		im.ImageDef = d.h()
		im.ImageDefReactor = d.h()
		return im
	}
}

func readLWPline(d *objectDecoder) raw.Payload {
	l := &raw.LWPline{}
	l.Flags = d.bs()
	if l.Flags&4 != 0 {
		l.ConstWidth = d.bd()
	}
	if l.Flags&8 != 0 {
		l.Elevation = d.bd()
	}
	if l.Flags&2 != 0 {
		l.Thickness = d.bd()
	}
	if l.Flags&1 != 0 {
		l.Normal = d.pt3bd()
	}
	numPoints := d.bl()
	var numBulges, numWidths uint32
	if l.Flags&16 != 0 {
		numBulges = d.bl()
	}
	if l.Flags&32 != 0 {
		numWidths = d.bl()
	}
	if d.until(raw.R14) {
		l.Points = d.points2(numPoints)
	} else {
		// Each point after the first is coded against its predecessor.
		l.Points = make([]raw.Point2, 0, d.count(numPoints, 4))
		for i := uint32(0); i < numPoints && d.ok(); i++ {
			if i == 0 {
				l.Points = append(l.Points, d.pt2rd())
				continue
			}
			l.Points = append(l.Points, d.pt2dd(l.Points[i-1]))
		}
	}
	l.Bulges = d.doubles(numBulges)
	l.Widths = make([]raw.LWPlineWidth, 0, d.count(numWidths, 4))
	for i := uint32(0); i < numWidths && d.ok(); i++ {
		start := d.bd()
		l.Widths = append(l.Widths, raw.LWPlineWidth{Start: start, End: d.bd()})
	}
	d.entityHandles()
	return l
}

func readOLE2Frame(d *objectDecoder) raw.Payload {
	o := &raw.OLE2Frame{}
	o.Flags = d.bs()
	if d.since(raw.R2000) {
		o.Mode = d.bs()
	}
	n := d.bl()
	o.Data = d.bytes(d.count(n, 8))
	if d.since(raw.R2000) {
		o.Unknown = d.rc()
	}
	d.entityHandles()
	return o
}
