package parser

import "github.com/wudi/dwgkit/ir/raw"

// decodeVariables reads the header variables in file order. The reader
// is not strict: out of range doubles are kept as read.
func decodeVariables(f *fieldReader, v *raw.Variables) error {
	v.Unknown0 = f.bd()
	v.Unknown1 = f.bd()
	v.Unknown2 = f.bd()
	v.Unknown3 = f.bd()
	v.Unknown4 = f.tv()
	v.Unknown5 = f.tv()
	v.Unknown6 = f.tv()
	v.Unknown7 = f.tv()
	v.Unknown8 = f.bl()
	v.Unknown9 = f.bl()
	if f.until(raw.R14) {
		v.Unknown10 = f.bs()
	}
	if f.until(raw.R2000) {
		v.CurrentViewportEntityHeader = f.h()
	}
	v.DIMASO = f.b()
	v.DIMSHO = f.b()
	if f.until(raw.R14) {
		v.DIMSAV = f.b()
	}
	v.PLINEGEN = f.b()
	v.ORTHOMODE = f.b()
	v.REGENMODE = f.b()
	v.FILLMODE = f.b()
	v.QTEXTMODE = f.b()
	v.PSLTSCALE = f.b()
	v.LIMCHECK = f.b()
	if f.until(raw.R14) {
		v.BLIPMODE = f.b()
	}
	if f.since(raw.R2004) {
		v.Unknown11 = f.b()
	}
	v.USRTIMER = f.b()
	v.SKPOLY = f.b()
	v.ANGDIR = f.b()
	v.SPLFRAME = f.b()
	if f.until(raw.R14) {
		v.ATTREQ = f.b()
		v.ATTDIA = f.b()
	}
	v.MIRRTEXT = f.b()
	v.WORLDVIEW = f.b()
	if f.until(raw.R14) {
		v.WIREFRAME = f.b()
	}
	v.TILEMODE = f.b()
	v.PLIMCHECK = f.b()
	v.VISRETAIN = f.b()
	if f.until(raw.R14) {
		v.DELOBJ = f.b()
	}
	v.DISPSILH = f.b()
	v.PELLIPSE = f.b()
	v.PROXYGRAPHICS = f.bs()
	if f.until(raw.R14) {
		v.DRAGMODE = f.bs()
	}
	v.TREEDEPTH = f.bs()
	v.LUNITS = f.bs()
	v.LUPREC = f.bs()
	v.AUNITS = f.bs()
	v.AUPREC = f.bs()
	if f.until(raw.R14) {
		v.OSMODE = f.bs()
	}
	v.ATTMODE = f.bs()
	if f.until(raw.R14) {
		v.COORDS = f.bs()
	}
	v.PDMODE = f.bs()
	if f.until(raw.R14) {
		v.PICKSTYLE = f.bs()
	}
	if f.since(raw.R2004) {
		v.Unknown12 = f.bl()
		v.Unknown13 = f.bl()
		v.Unknown14 = f.bl()
	}
	v.USERI1 = f.bs()
	v.USERI2 = f.bs()
	v.USERI3 = f.bs()
	v.USERI4 = f.bs()
	v.USERI5 = f.bs()
	v.SPLINESEGS = f.bs()
	v.SURFU = f.bs()
	v.SURFV = f.bs()
	v.SURFTYPE = f.bs()
	v.SURFTAB1 = f.bs()
	v.SURFTAB2 = f.bs()
	v.SPLINETYPE = f.bs()
	v.SHADEDGE = f.bs()
	v.SHADEDIF = f.bs()
	v.UNITMODE = f.bs()
	v.MAXACTVP = f.bs()
	v.ISOLINES = f.bs()
	v.CMLJUST = f.bs()
	v.TEXTQLTY = f.bs()
	v.LTSCALE = f.bd()
	v.TEXTSIZE = f.bd()
	v.TRACEWID = f.bd()
	v.SKETCHINC = f.bd()
	v.FILLETRAD = f.bd()
	v.THICKNESS = f.bd()
	v.ANGBASE = f.bd()
	v.PDSIZE = f.bd()
	v.PLINEWID = f.bd()
	v.USERR1 = f.bd()
	v.USERR2 = f.bd()
	v.USERR3 = f.bd()
	v.USERR4 = f.bd()
	v.USERR5 = f.bd()
	v.CHAMFERA = f.bd()
	v.CHAMFERB = f.bd()
	v.CHAMFERC = f.bd()
	v.CHAMFERD = f.bd()
	v.FACETRES = f.bd()
	v.CMLSCALE = f.bd()
	v.CELTSCALE = f.bd()
	v.MENU = f.tv()
	v.TDCREATE = f.timestamp()
	v.TDUPDATE = f.timestamp()
	if f.since(raw.R2004) {
		v.Unknown15 = f.bl()
		v.Unknown16 = f.bl()
		v.Unknown17 = f.bl()
	}
	v.TDINDWG = f.timestamp()
	v.TDUSRTIMER = f.timestamp()
	v.CECOLOR = f.cmc()
	v.HANDSEED = f.h()
	v.CLAYER = f.h()
	v.TEXTSTYLE = f.h()
	v.CELTYPE = f.h()
	v.DIMSTYLE = f.h()
	v.CMLSTYLE = f.h()
	if f.since(raw.R2000) {
		v.PSVPSCALE = f.bd()
	}
	v.PINSBASE = f.pt3bd()
	v.PEXTMIN = f.pt3bd()
	v.PEXTMAX = f.pt3bd()
	v.PLIMMIN = f.pt2rd()
	v.PLIMMAX = f.pt2rd()
	v.PELEVATION = f.bd()
	v.PUCSORG = f.pt3bd()
	v.PUCSXDIR = f.pt3bd()
	v.PUCSYDIR = f.pt3bd()
	v.PUCSNAME = f.h()
	if f.since(raw.R2000) {
		v.PUCSORTHOREF = f.h()
		v.PUCSORTHOVIEW = f.bs()
		v.PUCSBASE = f.h()
		v.PUCSORGTOP = f.pt3bd()
		v.PUCSORGBOTTOM = f.pt3bd()
		v.PUCSORGLEFT = f.pt3bd()
		v.PUCSORGRIGHT = f.pt3bd()
		v.PUCSORGFRONT = f.pt3bd()
		v.PUCSORGBACK = f.pt3bd()
	}
	v.INSBASE = f.pt3bd()
	v.EXTMIN = f.pt3bd()
	v.EXTMAX = f.pt3bd()
	v.LIMMIN = f.pt2rd()
	v.LIMMAX = f.pt2rd()
	v.ELEVATION = f.bd()
	v.UCSORG = f.pt3bd()
	v.UCSXDIR = f.pt3bd()
	v.UCSYDIR = f.pt3bd()
	v.UCSNAME = f.h()
	if f.since(raw.R2000) {
		v.UCSORTHOREF = f.h()
		v.UCSORTHOVIEW = f.bs()
		v.UCSBASE = f.h()
		v.UCSORGTOP = f.pt3bd()
		v.UCSORGBOTTOM = f.pt3bd()
		v.UCSORGLEFT = f.pt3bd()
		v.UCSORGRIGHT = f.pt3bd()
		v.UCSORGFRONT = f.pt3bd()
		v.UCSORGBACK = f.pt3bd()
		v.DIMPOST = f.tv()
		v.DIMAPOST = f.tv()
	}
	if f.until(raw.R14) {
		v.DIMTOL = f.b()
		v.DIMLIM = f.b()
		v.DIMTIH = f.b()
		v.DIMTOH = f.b()
		v.DIMSE1 = f.b()
		v.DIMSE2 = f.b()
		v.DIMALT = f.b()
		v.DIMTOFL = f.b()
		v.DIMSAH = f.b()
		v.DIMTIX = f.b()
		v.DIMSOXD = f.b()
		v.DIMALTD = uint16(f.rc())
		v.DIMZIN = uint16(f.rc())
		v.DIMSD1 = f.b()
		v.DIMSD2 = f.b()
		v.DIMTOLJ = uint16(f.rc())
		v.DIMJUST = uint16(f.rc())
		v.DIMFIT = uint16(f.rc())
		v.DIMUPT = f.b()
		v.DIMTZIN = uint16(f.rc())
		v.DIMALTZ = uint16(f.rc())
		v.DIMALTTZ = uint16(f.rc())
		v.DIMTAD = uint16(f.rc())
		v.DIMUNIT = f.bs()
		v.DIMAUNIT = f.bs()
		v.DIMDEC = f.bs()
		v.DIMTDEC = f.bs()
		v.DIMALTU = f.bs()
		v.DIMALTTD = f.bs()
		v.DIMTXSTY = f.h()
	}
	v.DIMSCALE = f.bd()
	v.DIMASZ = f.bd()
	v.DIMEXO = f.bd()
	v.DIMDLI = f.bd()
	v.DIMEXE = f.bd()
	v.DIMRND = f.bd()
	v.DIMDLE = f.bd()
	v.DIMTP = f.bd()
	v.DIMTM = f.bd()
	if f.since(raw.R2000) {
		v.DIMTOL = f.b()
		v.DIMLIM = f.b()
		v.DIMTIH = f.b()
		v.DIMTOH = f.b()
		v.DIMSE1 = f.b()
		v.DIMSE2 = f.b()
		v.DIMTAD = f.bs()
		v.DIMZIN = f.bs()
		v.DIMAZIN = f.bs()
	}
	v.DIMTXT = f.bd()
	v.DIMCEN = f.bd()
	v.DIMTSZ = f.bd()
	v.DIMALTF = f.bd()
	v.DIMLFAC = f.bd()
	v.DIMTVP = f.bd()
	v.DIMTFAC = f.bd()
	v.DIMGAP = f.bd()
	if f.until(raw.R14) {
		v.DIMPOST = f.tv()
		v.DIMAPOST = f.tv()
		v.DIMBLK = f.tv()
		v.DIMBLK1 = f.tv()
		v.DIMBLK2 = f.tv()
	}
	if f.since(raw.R2000) {
		v.DIMALTRND = f.bd()
		v.DIMALT = f.b()
		v.DIMALTD = f.bs()
		v.DIMTOFL = f.b()
		v.DIMSAH = f.b()
		v.DIMTIX = f.b()
		v.DIMSOXD = f.b()
	}
	v.DIMCLRD = f.cmc()
	v.DIMCLRE = f.cmc()
	v.DIMCLRT = f.cmc()
	if f.since(raw.R2000) {
		v.DIMADEC = f.bs()
		v.DIMDEC = f.bs()
		v.DIMTDEC = f.bs()
		v.DIMALTU = f.bs()
		v.DIMALTTD = f.bs()
		v.DIMAUNIT = f.bs()
		v.DIMFRAC = f.bs()
		v.DIMLUNIT = f.bs()
		v.DIMDSEP = f.bs()
		v.DIMTMOVE = f.bs()
		v.DIMJUST = f.bs()
		v.DIMSD1 = f.b()
		v.DIMSD2 = f.b()
		v.DIMTOLJ = f.bs()
		v.DIMTZIN = f.bs()
		v.DIMALTZ = f.bs()
		v.DIMALTTZ = f.bs()
		v.DIMUPT = f.b()
		v.DIMATFIT = f.bs()
		v.DIMTXSTY = f.h()
		v.DIMLDRBLK = f.h()
		v.DIMBLKH = f.h()
		v.DIMBLK1H = f.h()
		v.DIMBLK2H = f.h()
		v.DIMLWD = f.bs()
		v.DIMLWE = f.bs()
	}
	v.BlockControl = f.h()
	v.LayerControl = f.h()
	v.StyleControl = f.h()
	v.LinetypeControl = f.h()
	v.ViewControl = f.h()
	v.UCSControl = f.h()
	v.VPortControl = f.h()
	v.AppIDControl = f.h()
	v.DimStyleControl = f.h()
	if f.until(raw.R2000) {
		v.VPEntHdrControl = f.h()
	}
	v.DictionaryGroup = f.h()
	v.DictionaryMLineStyle = f.h()
	v.DictionaryNamedObjects = f.h()
	if f.since(raw.R2000) {
		v.TSTACKALIGN = f.bs()
		v.TSTACKSIZE = f.bs()
		v.HYPERLINKBASE = f.tv()
		v.STYLESHEET = f.tv()
		v.DictionaryLayouts = f.h()
		v.DictionaryPlotSettings = f.h()
		v.DictionaryPlotStyles = f.h()
	}
	if f.since(raw.R2004) {
		v.DictionaryMaterials = f.h()
		v.DictionaryColors = f.h()
	}
	if f.since(raw.R2000) {
		v.FLAGS = f.bl()
		v.INSUNITS = f.bs()
		v.CEPSNTYPE = f.bs()
	}
	if f.since(raw.R2000) && v.CEPSNTYPE == 3 {
		v.CPSNID = f.h()
	}
	if f.since(raw.R2000) {
		v.FINGERPRINTGUID = f.tv()
		v.VERSIONGUID = f.tv()
	}
	if f.since(raw.R2004) {
		v.SORTENTS = f.rc()
		v.INDEXCTL = f.rc()
		v.HIDETEXT = f.rc()
		v.XCLIPFRAME = f.rc()
		v.DIMASSOC = f.rc()
		v.HALOGAP = f.rc()
		v.OBSCUREDCOLOR = f.bs()
		v.INTERSECTIONCOLOR = f.bs()
		v.OBSCUREDLTYPE = f.rc()
		v.INTERSECTIONDISPLAY = f.rc()
		v.PROJECTNAME = f.tv()
	}
	v.BlockRecordPaperSpace = f.h()
	v.BlockRecordModelSpace = f.h()
	v.LinetypeByLayer = f.h()
	v.LinetypeByBlock = f.h()
	v.LinetypeContinuous = f.h()
	v.Unknown18 = f.bs()
	v.Unknown19 = f.bs()
	v.Unknown20 = f.bs()
	v.Unknown21 = f.bs()
	return f.err
}
