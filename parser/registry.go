package parser

import "github.com/wudi/dwgkit/ir/raw"

// kind describes how to decode one record type.
type kind struct {
	name      string
	supertype raw.Supertype
	decode    decodeFunc
}

// registry maps fixed type codes and class names to decoders. Codes >= 500
// are resolved through the drawing's class table.
type registry struct {
	byType  map[uint16]kind
	byClass map[string]kind
}

func entity(name string, fn decodeFunc) kind {
	return kind{name: name, supertype: raw.SupertypeEntity, decode: fn}
}

func nongraph(name string, fn decodeFunc) kind {
	return kind{name: name, supertype: raw.SupertypeNongraph, decode: fn}
}

var defaultRegistry = &registry{
	byType: map[uint16]kind{
		0x01: entity("TEXT", readText),
		0x02: entity("ATTRIB", readAttrib),
		0x03: entity("ATTDEF", readAttdef),
		0x04: entity("BLOCK", readBlock),
		0x05: entity("ENDBLK", readEndBlk),
		0x06: entity("SEQEND", readSeqEnd),
		0x07: entity("INSERT", readInsert),
		0x08: entity("MINSERT", readMInsert),
		0x0a: entity("VERTEX_2D", readVertex2D),
		0x0b: entity("VERTEX_3D", vertex3D("VERTEX_3D")),
		0x0c: entity("VERTEX_MESH", vertex3D("VERTEX_MESH")),
		0x0d: entity("VERTEX_PFACE", vertex3D("VERTEX_PFACE")),
		0x0e: entity("VERTEX_PFACE_FACE", readVertexPFaceFace),
		0x0f: entity("POLYLINE_2D", readPolyline2D),
		0x10: entity("POLYLINE_3D", readPolyline3D),
		0x11: entity("ARC", readArc),
		0x12: entity("CIRCLE", readCircle),
		0x13: entity("LINE", readLine),
		0x14: entity("DIMENSION_ORDINATE", readDimOrdinate),
		0x15: entity("DIMENSION_LINEAR", readDimLinear),
		0x16: entity("DIMENSION_ALIGNED", readDimAligned),
		0x17: entity("DIMENSION_ANG3PT", readDimAng3Pt),
		0x18: entity("DIMENSION_ANG2LN", readDimAng2Ln),
		0x19: entity("DIMENSION_RADIUS", readDimRadius),
		0x1a: entity("DIMENSION_DIAMETER", readDimDiameter),
		0x1b: entity("POINT", readPoint),
		0x1c: entity("3DFACE", read3DFace),
		0x1d: entity("POLYLINE_PFACE", readPolylinePFace),
		0x1e: entity("POLYLINE_MESH", readPolylineMesh),
		0x1f: entity("SOLID", solid("SOLID")),
		0x20: entity("TRACE", solid("TRACE")),
		0x21: entity("SHAPE", readShape),
		0x22: entity("VIEWPORT", readViewport),
		0x23: entity("ELLIPSE", readEllipse),
		0x24: entity("SPLINE", readSpline),
		0x25: entity("REGION", modeler("REGION")),
		0x26: entity("3DSOLID", modeler("3DSOLID")),
		0x27: entity("BODY", modeler("BODY")),
		0x28: entity("RAY", ray("RAY")),
		0x29: entity("XLINE", ray("XLINE")),
		0x2a: nongraph("DICTIONARY", dictionary(false)),
		0x2c: entity("MTEXT", readMText),
		0x2d: entity("LEADER", readLeader),
		0x2e: entity("TOLERANCE", readTolerance),
		0x2f: entity("MLINE", readMLine),
		0x30: nongraph("BLOCK_CONTROL", control("BLOCK_CONTROL")),
		0x31: nongraph("BLOCK_HEADER", readBlockHeader),
		0x32: nongraph("LAYER_CONTROL", control("LAYER_CONTROL")),
		0x33: nongraph("LAYER", readLayer),
		0x34: nongraph("SHAPEFILE_CONTROL", control("SHAPEFILE_CONTROL")),
		0x35: nongraph("SHAPEFILE", readStyle),
		0x38: nongraph("LTYPE_CONTROL", control("LTYPE_CONTROL")),
		0x39: nongraph("LTYPE", readLtype),
		0x3c: nongraph("VIEW_CONTROL", control("VIEW_CONTROL")),
		0x3d: nongraph("VIEW", readView),
		0x3e: nongraph("UCS_CONTROL", control("UCS_CONTROL")),
		0x3f: nongraph("UCS", readUCS),
		0x40: nongraph("VPORT_CONTROL", control("VPORT_CONTROL")),
		0x41: nongraph("VPORT", readVPort),
		0x42: nongraph("APPID_CONTROL", control("APPID_CONTROL")),
		0x43: nongraph("APPID", readAppID),
		0x44: nongraph("DIMSTYLE_CONTROL", control("DIMSTYLE_CONTROL")),
		0x45: nongraph("DIMSTYLE", readDimStyle),
		0x46: nongraph("VP_ENT_HDR_CONTROL", control("VP_ENT_HDR_CONTROL")),
		0x47: nongraph("VP_ENT_HDR", readVPEntHdr),
		0x48: nongraph("GROUP", readGroup),
		0x49: nongraph("MLINESTYLE", readMLineStyle),
		0x4d: entity("LWPLINE", readLWPline),
		0x4e: entity("HATCH", readHatch),
		0x4f: nongraph("XRECORD", readXRecord),
		0x50: nongraph("PLACEHOLDER", readPlaceholder),
		0x52: nongraph("LAYOUT", readLayout),
	},
	byClass: map[string]kind{
		"DICTIONARYVAR":       nongraph("DICTIONARYVAR", readDictionaryVar),
		"ACDBDICTIONARYWDFLT": nongraph("DICTIONARYWDLFT", dictionary(true)),
		"HATCH":               entity("HATCH", readHatch),
		"IDBUFFER":            nongraph("IDBUFFER", readIDBuffer),
		"IMAGE":               entity("IMAGE", imageEntity("IMAGE")),
		"IMAGEDEF":            nongraph("IMAGEDEF", readImageDef),
		"IMAGEDEF_REACTOR":    nongraph("IMAGEDEF_REACTOR", readImageDefReactor),
		"LAYER_INDEX":         nongraph("LAYER_INDEX", readLayerIndex),
		"LAYOUT":              nongraph("LAYOUT", readLayout),
		"LWPLINE":             entity("LWPLINE", readLWPline),
		"OLE2FRAME":           entity("OLE2FRAME", readOLE2Frame),
		"ACDBPLACEHOLDER":     nongraph("PLACEHOLDER", readPlaceholder),
		"RASTERVARIABLES":     nongraph("RASTERVARIABLES", readRasterVariables),
		"SORTENTSTABLE":       nongraph("SORTENTSTABLE", readSortEntsTable),
		"SPATIAL_FILTER":      nongraph("SPATIAL_FILTER", readSpatialFilter),
		"SPATIAL_INDEX":       nongraph("SPATIAL_INDEX", readSpatialIndex),
		"XRECORD":             nongraph("XRECORD", readXRecord),
		"WIPEOUT":             entity("WIPEOUT", imageEntity("WIPEOUT")),
		"WIPEOUTVARIABLE":     nongraph("WIPEOUTVARIABLES", readWipeoutVariables),
	},
}

// lookup returns the decoder of type code typ. Unknown fixed codes, codes
// beyond the class table and classes with an unmatched name report false.
func (r *registry) lookup(doc *raw.Document, typ uint16) (kind, bool) {
	if typ < 500 {
		k, ok := r.byType[typ]
		return k, ok
	}
	c, ok := doc.ClassFor(typ)
	if !ok || c.DxfName == "" {
		return kind{}, false
	}
	k, ok := r.byClass[c.DxfName]
	return k, ok
}
