package parser

import (
	"github.com/wudi/dwgkit/ir/raw"
	"github.com/wudi/dwgkit/observability"
)

// dictionary returns the decoder of DICTIONARY, or of ACDBDICTIONARYWDFLT
// when withDefault is set. Plain dictionaries with more than
// Limits.MaxDictionaryItems entries keep only their counts.
func dictionary(withDefault bool) decodeFunc {
	return func(d *objectDecoder) raw.Payload {
		dict := &raw.Dictionary{WithDefault: withDefault}
		dict.NumItems = d.bl()
		if d.ver == raw.R14 {
			dict.Unknown = d.rc()
		}
		if d.since(raw.R2000) {
			dict.Cloning = d.bs()
			dict.HardOwner = d.rc()
		}
		if !withDefault && dict.NumItems > d.limits.MaxDictionaryItems {
			d.s.logger.Warn("dictionary entry count above limit, entries skipped",
				observability.Hex("handle", d.obj.Handle.Value),
				observability.Int64("items", int64(dict.NumItems)))
			dict.Truncated = true
			return dict
		}
		n := d.count(dict.NumItems, 10)
		dict.Texts = make([]string, 0, n)
		for i := 0; i < n && d.ok(); i++ {
			dict.Texts = append(dict.Texts, d.tv())
		}
		d.ownerHandles()
		dict.Items = d.handles(n)
		if withDefault {
			dict.DefaultID = d.h()
		}
		return dict
	}
}

// control returns the decoder of a symbol table object. NullHandle doubles
// as the owner.
func control(kind string) decodeFunc {
	return func(d *objectDecoder) raw.Payload {
		c := &raw.Control{Kind: kind}
		if kind == "DIMSTYLE_CONTROL" {
			c.NumEntries = d.bl()
			if d.since(raw.R2000) {
				c.Unknown = d.rc()
			}
		} else {
			c.NumEntries = uint32(d.bs())
		}
		d.ownerHandles()
		c.NullHandle = d.obj.Nongraph.Owner
		c.Entries = d.handles(d.count(c.NumEntries, 8))
		switch kind {
		case "BLOCK_CONTROL":
			c.ModelSpace = d.h()
			c.PaperSpace = d.h()
		case "LTYPE_CONTROL":
			c.ByLayer = d.h()
			c.ByBlock = d.h()
		}
		return c
	}
}

func (d *objectDecoder) tableEntry(t *raw.TableEntry) {
	t.EntryName = d.tv()
	t.Flag64 = d.b()
	t.XRefIndexPlus1 = d.bs()
	t.XRefDep = d.b()
}

// entryHandles reads the control, reactor, xdic and null handles every
// table entry starts its handle block with.
func (d *objectDecoder) entryHandles(t *raw.TableEntry) {
	d.ownerHandles()
	t.NullHandle = d.h()
}

func readBlockHeader(d *objectDecoder) raw.Payload {
	b := &raw.BlockHeader{}
	d.tableEntry(&b.TableEntry)
	b.Anonymous = d.b()
	b.HasAttrs = d.b()
	b.BlkIsXRef = d.b()
	b.XRefOverlaid = d.b()
	if d.since(raw.R2000) {
		b.Loaded = d.b()
	}
	if d.since(raw.R2004) {
		b.OwnedObjectCount = d.bl()
	}
	b.BasePt = d.pt3bd()
	b.XRefPName = d.tv()
	if d.since(raw.R2000) {
		// One non-zero byte per insert, then a terminating zero.
		for d.ok() && d.rc() != 0 {
			b.InsertCount++
		}
		b.BlockDescription = d.tv()
		n := d.bl()
		b.PreviewData = d.bytes(d.count(n, 8))
	}
	if d.since(raw.R2007) {
		b.InsertUnits = d.bs()
		b.Explodable = d.b()
		b.BlockScaling = d.rc()
	}
	d.entryHandles(&b.TableEntry)
	b.BlockEntity = d.h()
	if d.between(raw.R13, raw.R2000) && !b.BlkIsXRef && !b.XRefOverlaid {
		b.FirstEntity = d.h()
		b.LastEntity = d.h()
	}
	if d.since(raw.R2004) {
		b.Entities = d.handles(d.count(b.OwnedObjectCount, 8))
	}
	b.EndBlk = d.h()
	if d.since(raw.R2000) {
		b.Inserts = d.handles(d.count(b.InsertCount, 8))
		b.Layout = d.h()
	}
	return b
}

func readLayer(d *objectDecoder) raw.Payload {
	l := &raw.Layer{}
	d.tableEntry(&l.TableEntry)
	if d.until(raw.R14) {
		l.Frozen = d.b()
		l.On = d.b()
		l.FrozenInNew = d.b()
		l.Locked = d.b()
	} else {
		l.Values = d.bs()
	}
	l.Color = d.cmc()
	d.entryHandles(&l.TableEntry)
	if d.since(raw.R2000) {
		l.Plotstyle = d.h()
	}
	if d.since(raw.R2007) {
		l.Material = d.h()
	}
	l.Linetype = d.h()
	return l
}

func readStyle(d *objectDecoder) raw.Payload {
	s := &raw.Style{}
	d.tableEntry(&s.TableEntry)
	s.Vertical = d.b()
	s.IsShapeFile = d.b()
	s.FixedHeight = d.bd()
	s.WidthFactor = d.bd()
	s.ObliqueAngle = d.bd()
	s.Generation = d.rc()
	s.LastHeight = d.bd()
	s.FontName = d.tv()
	s.BigFontName = d.tv()
	d.entryHandles(&s.TableEntry)
	return s
}

func readLtype(d *objectDecoder) raw.Payload {
	l := &raw.Ltype{}
	d.tableEntry(&l.TableEntry)
	l.Description = d.tv()
	l.PatternLength = d.bd()
	l.Alignment = d.rc()
	n := d.rc()
	l.Dashes = make([]raw.LtypeDash, 0, n)
	textArea := false
	for i := uint8(0); i < n && d.ok(); i++ {
		var dash raw.LtypeDash
		dash.Length = d.bd()
		dash.ComplexShapecode = d.bs()
		dash.XOffset = d.rd()
		dash.YOffset = d.rd()
		dash.Scale = d.bd()
		dash.Rotation = d.bd()
		dash.ShapeFlag = d.bs()
		textArea = textArea || dash.ShapeFlag&2 != 0
		l.Dashes = append(l.Dashes, dash)
	}
	if d.until(raw.R2004) {
		l.StringsArea = d.bytes(256)
	} else if textArea {
		l.StringsArea = d.bytes(512)
	}
	d.entryHandles(&l.TableEntry)
	l.ShapeFiles = d.handles(int(n))
	return l
}

func readView(d *objectDecoder) raw.Payload {
	v := &raw.View{}
	d.tableEntry(&v.TableEntry)
	v.Height = d.bd()
	v.Width = d.bd()
	v.Center = d.pt2rd()
	v.Target = d.pt3bd()
	v.Direction = d.pt3bd()
	v.TwistAngle = d.bd()
	v.LensLength = d.bd()
	v.FrontClip = d.bd()
	v.BackClip = d.bd()
	for i := range v.ViewMode {
		v.ViewMode[i] = d.b()
	}
	if d.since(raw.R2000) {
		v.RenderMode = d.rc()
	}
	v.PSpaceFlag = d.b()
	if d.since(raw.R2000) {
		v.AssociatedUCS = d.b()
		if v.AssociatedUCS {
			v.Origin = d.pt3bd()
			v.XDirection = d.pt3bd()
			v.YDirection = d.pt3bd()
			v.Elevation = d.bd()
			v.OrthoViewType = d.bs()
		}
	}
	if d.since(raw.R2007) {
		v.CameraPlottable = d.b()
	}
	d.entryHandles(&v.TableEntry)
	if d.since(raw.R2000) && v.AssociatedUCS {
		v.BaseUCS = d.h()
		v.NamedUCS = d.h()
	}
	if d.since(raw.R2007) {
		v.LiveSection = d.h()
	}
	return v
}

func readUCS(d *objectDecoder) raw.Payload {
	u := &raw.UCS{}
	d.tableEntry(&u.TableEntry)
	u.Origin = d.pt3bd()
	u.XDirection = d.pt3bd()
	u.YDirection = d.pt3bd()
	if d.since(raw.R2000) {
		u.Elevation = d.bd()
		u.OrthoViewType = d.bs()
		u.OrthoType = d.bs()
	}
	d.entryHandles(&u.TableEntry)
	if d.since(raw.R2000) {
		u.BaseUCS = d.h()
		u.Unknown = d.h()
	}
	return u
}

func readVPort(d *objectDecoder) raw.Payload {
	v := &raw.VPort{}
	d.tableEntry(&v.TableEntry)
	v.ViewHeight = d.bd()
	v.AspectRatio = d.bd()
	v.ViewCenter = d.pt2rd()
	v.ViewTarget = d.pt3bd()
	v.ViewDir = d.pt3bd()
	v.ViewTwist = d.bd()
	v.LensLength = d.bd()
	v.FrontClip = d.bd()
	v.BackClip = d.bd()
	v.ViewMode = d.b4()
	if d.since(raw.R2000) {
		v.RenderMode = d.rc()
	}
	if d.since(raw.R2007) {
		v.UseDefaultLights = d.b()
		v.DefaultLighting = d.rc()
		v.Brightness = d.bd()
		v.Contrast = d.bd()
		v.Ambient = d.cmc()
	}
	v.LowerLeft = d.pt2rd()
	v.UpperRight = d.pt2rd()
	v.UCSFollow = d.b()
	v.CircleZoom = d.bs()
	v.FastZoom = d.b()
	v.UCSIcon[0] = d.b()
	v.UCSIcon[1] = d.b()
	v.GridOn = d.b()
	v.GridSpacing = d.pt2rd()
	v.SnapOn = d.b()
	v.SnapStyle = d.b()
	v.SnapIsopair = d.bs()
	v.SnapRot = d.bd()
	v.SnapBase = d.pt2rd()
	v.SnapSpacing = d.pt2rd()
	if d.since(raw.R2000) {
		v.Unknown = d.b()
		v.UCSPerViewport = d.b()
		v.UCSOrigin = d.pt3bd()
		v.UCSXAxis = d.pt3bd()
		v.UCSYAxis = d.pt3bd()
		v.UCSElevation = d.bd()
		v.UCSOrthoType = d.bs()
	}
	if d.since(raw.R2007) {
		v.GridFlags = d.bs()
		v.GridMajor = d.bs()
	}
	d.entryHandles(&v.TableEntry)
	if d.since(raw.R2007) {
		v.Background = d.h()
		v.VisualStyle = d.h()
		v.Sun = d.h()
	}
	if d.since(raw.R2000) {
		v.NamedUCS = d.h()
		v.BaseUCS = d.h()
	}
	return v
}

func readAppID(d *objectDecoder) raw.Payload {
	a := &raw.AppID{}
	d.tableEntry(&a.TableEntry)
	a.Unknown = d.rc()
	d.entryHandles(&a.TableEntry)
	return a
}

func readVPEntHdr(d *objectDecoder) raw.Payload {
	v := &raw.VPEntHdr{}
	d.tableEntry(&v.TableEntry)
	v.OneFlag = d.b()
	d.entryHandles(&v.TableEntry)
	return v
}

func readGroup(d *objectDecoder) raw.Payload {
	g := &raw.Group{}
	g.Name = d.tv()
	g.Unnamed = d.bs()
	g.Selectable = d.bs()
	n := d.bl()
	d.ownerHandles()
	g.Entries = d.handles(d.count(n, 8))
	return g
}

func readMLineStyle(d *objectDecoder) raw.Payload {
	m := &raw.MLineStyle{}
	m.Name = d.tv()
	m.Desc = d.tv()
	m.Flags = d.bs()
	m.FillColor = d.cmc()
	m.StartAngle = d.bd()
	m.EndAngle = d.bd()
	n := d.rc()
	m.Lines = make([]raw.MLineStyleLine, 0, n)
	for i := uint8(0); i < n && d.ok(); i++ {
		var l raw.MLineStyleLine
		l.Offset = d.bd()
		l.Color = d.cmc()
		l.LtIndex = d.bs()
		m.Lines = append(m.Lines, l)
	}
	d.ownerHandles()
	return m
}

func readDictionaryVar(d *objectDecoder) raw.Payload {
	v := &raw.DictionaryVar{}
	v.IntVal = d.rc()
	v.Str = d.tv()
	d.ownerHandles()
	return v
}

func readIDBuffer(d *objectDecoder) raw.Payload {
	b := &raw.IDBuffer{}
	b.Unknown = d.rc()
	n := d.bl()
	d.ownerHandles()
	b.ObjIDs = d.handles(d.count(n, 8))
	return b
}

func readImageDef(d *objectDecoder) raw.Payload {
	im := &raw.ImageDef{}
	im.ClassVersion = d.bl()
	im.ImageSize = d.pt2rd()
	im.FilePath = d.tv()
	im.IsLoaded = d.b()
	im.ResUnits = d.rc()
	im.PixelSize = d.pt2rd()
	d.ownerHandles()
	return im
}

func readImageDefReactor(d *objectDecoder) raw.Payload {
	r := &raw.ImageDefReactor{ClassVersion: d.bl()}
	d.ownerHandles()
	return r
}

func readLayerIndex(d *objectDecoder) raw.Payload {
	li := &raw.LayerIndex{}
	li.Timestamp1 = d.bl()
	li.Timestamp2 = d.bl()
	n := d.count(d.bl(), 4)
	li.Entries = make([]raw.LayerEntry, 0, n)
	for i := 0; i < n && d.ok(); i++ {
		idx := d.bl()
		li.Entries = append(li.Entries, raw.LayerEntry{IndexLong: idx, IndexStr: d.tv()})
	}
	d.ownerHandles()
	for i := range li.Entries {
		li.Entries[i].Handle = d.h()
	}
	return li
}

func readLayout(d *objectDecoder) raw.Payload {
	l := &raw.Layout{}
	l.PageSetupName = d.tv()
	l.PrinterOrConfig = d.tv()
	l.PlotLayoutFlags = d.bs()
	l.LeftMargin = d.bd()
	l.BottomMargin = d.bd()
	l.RightMargin = d.bd()
	l.TopMargin = d.bd()
	l.PaperWidth = d.bd()
	l.PaperHeight = d.bd()
	l.PaperSize = d.tv()
	l.PlotOrigin = d.pt2bd()
	l.PaperUnits = d.bs()
	l.PlotRotation = d.bs()
	l.PlotType = d.bs()
	l.WindowMin = d.pt2bd()
	l.WindowMax = d.pt2bd()
	if d.between(raw.R13, raw.R2000) {
		l.PlotViewName = d.tv()
	}
	l.RealWorldUnits = d.bd()
	l.DrawingUnits = d.bd()
	l.CurrentStyleSheet = d.tv()
	l.ScaleType = d.bs()
	l.ScaleFactor = d.bd()
	l.PaperImageOrigin = d.pt2bd()
	if d.since(raw.R2004) {
		l.ShadePlotMode = d.bs()
		l.ShadePlotResLevel = d.bs()
		l.ShadePlotCustomDPI = d.bs()
	}
	l.LayoutName = d.tv()
	l.TabOrder = d.bs()
	l.Flags = d.bs()
	l.UCSOrigin = d.pt3bd()
	l.MinLimits = d.pt2rd()
	l.MaxLimits = d.pt2rd()
	l.InsPoint = d.pt3bd()
	l.UCSXAxis = d.pt3bd()
	l.UCSYAxis = d.pt3bd()
	l.Elevation = d.bd()
	l.OrthoViewType = d.bs()
	l.ExtentMin = d.pt3bd()
	l.ExtentMax = d.pt3bd()
	var viewports uint32
	if d.since(raw.R2004) {
		viewports = d.bl()
	}
	d.ownerHandles()
	if d.since(raw.R2004) {
		l.PlotView = d.h()
	}
	if d.since(raw.R2007) {
		l.VisualStyle = d.h()
	}
	l.PaperSpaceBlock = d.h()
	l.LastActiveViewport = d.h()
	l.BaseUCS = d.h()
	l.NamedUCS = d.h()
	if d.since(raw.R2004) {
		l.Viewports = d.handles(d.count(viewports, 8))
	}
	return l
}

func readRasterVariables(d *objectDecoder) raw.Payload {
	r := &raw.RasterVariables{}
	r.ClassVersion = d.bl()
	r.DisplayFrame = d.bs()
	r.DisplayQuality = d.bs()
	r.Units = d.bs()
	d.ownerHandles()
	return r
}

func readSortEntsTable(d *objectDecoder) raw.Payload {
	s := &raw.SortEntsTable{}
	n := d.count(d.bl(), 16)
	s.SortHandles = d.handles(n)
	d.ownerHandles()
	s.OwnerHandle = d.h()
	s.ObjectHandles = d.handles(n)
	return s
}

func readSpatialFilter(d *objectDecoder) raw.Payload {
	s := &raw.SpatialFilter{}
	s.Points = d.points2(uint32(d.bs()))
	s.Extrusion = d.pt3bd()
	s.ClipBoundOrigin = d.pt3bd()
	s.DisplayBoundary = d.bs()
	s.FrontClipOn = d.bs()
	if s.FrontClipOn == 1 {
		s.FrontClipDist = d.bd()
	}
	s.BackClipOn = d.bs()
	if s.BackClipOn == 1 {
		s.BackClipDist = d.bd()
	}
	s.InverseBlockTransform = d.doubles(12)
	s.ClipBoundTransform = d.doubles(12)
	d.ownerHandles()
	return s
}

// readSpatialIndex skips the undocumented index body up to the next byte
// boundary.
func readSpatialIndex(d *objectDecoder) raw.Payload {
	s := &raw.SpatialIndex{}
	s.Timestamp1 = d.bl()
	s.Timestamp2 = d.bl()
	for d.ok() && d.r.Bit != 0 {
		d.b()
	}
	d.ownerHandles()
	return s
}

// readXRecord keeps the data as raw group-code bytes.
func readXRecord(d *objectDecoder) raw.Payload {
	x := &raw.XRecord{}
	n := d.bl()
	x.Data = d.bytes(d.count(n, 8))
	if d.since(raw.R2000) {
		x.CloningFlags = d.bs()
	}
	d.ownerHandles()
	return x
}

func readPlaceholder(d *objectDecoder) raw.Payload {
	d.ownerHandles()
	return &raw.Placeholder{}
}

func readWipeoutVariables(d *objectDecoder) raw.Payload {
	w := &raw.WipeoutVariables{DisplayFrame: d.bs()}
	d.ownerHandles()
	return w
}
