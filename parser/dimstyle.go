package parser

import "github.com/wudi/dwgkit/ir/raw"

type dimKind uint8

const (
	dimB dimKind = iota
	dimRC
	dimBS
	dimBD
	dimTV
	dimCMC
)

// dimField is one dimension variable of a DIMSTYLE record.
type dimField struct {
	name  string
	kind  dimKind
	since raw.Version
}

var dimStyleR13 = []dimField{
	{"DIMTOL", dimB, 0}, {"DIMLIM", dimB, 0}, {"DIMTIH", dimB, 0}, {"DIMTOH", dimB, 0},
	{"DIMSE1", dimB, 0}, {"DIMSE2", dimB, 0}, {"DIMALT", dimB, 0}, {"DIMTOFL", dimB, 0},
	{"DIMSAH", dimB, 0}, {"DIMTIX", dimB, 0}, {"DIMSOXD", dimB, 0},
	{"DIMALTD", dimRC, 0}, {"DIMZIN", dimRC, 0},
	{"DIMSD1", dimB, 0}, {"DIMSD2", dimB, 0},
	{"DIMTOLJ", dimRC, 0}, {"DIMJUST", dimRC, 0}, {"DIMFIT", dimRC, 0},
	{"DIMUPT", dimB, 0},
	{"DIMTZIN", dimRC, 0}, {"DIMALTZ", dimRC, 0}, {"DIMALTTZ", dimRC, 0}, {"DIMTAD", dimRC, 0},
	{"DIMUNIT", dimBS, 0}, {"DIMAUNIT", dimBS, 0}, {"DIMDEC", dimBS, 0}, {"DIMTDEC", dimBS, 0},
	{"DIMALTU", dimBS, 0}, {"DIMALTTD", dimBS, 0},
	{"DIMSCALE", dimBD, 0}, {"DIMASZ", dimBD, 0}, {"DIMEXO", dimBD, 0}, {"DIMDLI", dimBD, 0},
	{"DIMEXE", dimBD, 0}, {"DIMRND", dimBD, 0}, {"DIMDLE", dimBD, 0}, {"DIMTP", dimBD, 0},
	{"DIMTM", dimBD, 0}, {"DIMTXT", dimBD, 0}, {"DIMCEN", dimBD, 0}, {"DIMTSZ", dimBD, 0},
	{"DIMALTF", dimBD, 0}, {"DIMLFAC", dimBD, 0}, {"DIMTVP", dimBD, 0}, {"DIMTFAC", dimBD, 0},
	{"DIMGAP", dimBD, 0},
	{"DIMPOST", dimTV, 0}, {"DIMAPOST", dimTV, 0}, {"DIMBLK", dimTV, 0}, {"DIMBLK1", dimTV, 0},
	{"DIMBLK2", dimTV, 0},
	{"DIMCLRD", dimCMC, 0}, {"DIMCLRE", dimCMC, 0}, {"DIMCLRT", dimCMC, 0},
}

var dimStyleR2000 = []dimField{
	{"DIMPOST", dimTV, 0}, {"DIMAPOST", dimTV, 0},
	{"DIMSCALE", dimBD, 0}, {"DIMASZ", dimBD, 0}, {"DIMEXO", dimBD, 0}, {"DIMDLI", dimBD, 0},
	{"DIMEXE", dimBD, 0}, {"DIMRND", dimBD, 0}, {"DIMDLE", dimBD, 0}, {"DIMTP", dimBD, 0},
	{"DIMTM", dimBD, 0},
	{"DIMFXL", dimBD, raw.R2007}, {"DIMJOGANG", dimBD, raw.R2007},
	{"DIMTFILL", dimBS, raw.R2007}, {"DIMTFILLCLR", dimCMC, raw.R2007},
	{"DIMTOL", dimB, 0}, {"DIMLIM", dimB, 0}, {"DIMTIH", dimB, 0}, {"DIMTOH", dimB, 0},
	{"DIMSE1", dimB, 0}, {"DIMSE2", dimB, 0},
	{"DIMTAD", dimBS, 0}, {"DIMZIN", dimBS, 0}, {"DIMAZIN", dimBS, 0},
	{"DIMARCSYM", dimBS, raw.R2007},
	{"DIMTXT", dimBD, 0}, {"DIMCEN", dimBD, 0}, {"DIMTSZ", dimBD, 0}, {"DIMALTF", dimBD, 0},
	{"DIMLFAC", dimBD, 0}, {"DIMTVP", dimBD, 0}, {"DIMTFAC", dimBD, 0}, {"DIMGAP", dimBD, 0},
	{"DIMALTRND", dimBD, 0},
	{"DIMALT", dimB, 0}, {"DIMALTD", dimBS, 0},
	{"DIMTOFL", dimB, 0}, {"DIMSAH", dimB, 0}, {"DIMTIX", dimB, 0}, {"DIMSOXD", dimB, 0},
	{"DIMCLRD", dimCMC, 0}, {"DIMCLRE", dimCMC, 0}, {"DIMCLRT", dimCMC, 0},
	{"DIMADEC", dimBS, 0}, {"DIMDEC", dimBS, 0}, {"DIMTDEC", dimBS, 0}, {"DIMALTU", dimBS, 0},
	{"DIMALTTD", dimBS, 0}, {"DIMAUNIT", dimBS, 0}, {"DIMFRAC", dimBS, 0}, {"DIMLUNIT", dimBS, 0},
	{"DIMDSEP", dimBS, 0}, {"DIMTMOVE", dimBS, 0}, {"DIMJUST", dimBS, 0},
	{"DIMSD1", dimB, 0}, {"DIMSD2", dimB, 0},
	{"DIMTOLJ", dimBS, 0}, {"DIMTZIN", dimBS, 0}, {"DIMALTZ", dimBS, 0}, {"DIMALTTZ", dimBS, 0},
	{"DIMUPT", dimB, 0}, {"DIMFIT", dimBS, 0},
	{"DIMFXLON", dimB, raw.R2007},
	{"DIMLWD", dimBS, 0}, {"DIMLWE", dimBS, 0},
}

func readDimStyle(d *objectDecoder) raw.Payload {
	s := &raw.DimStyle{
		Flags:   map[string]bool{},
		Ints:    map[string]int{},
		Doubles: map[string]float64{},
		Strings: map[string]string{},
		Colors:  map[string]raw.Color{},
	}
	d.tableEntry(&s.TableEntry)
	fields := dimStyleR2000
	if d.until(raw.R14) {
		fields = dimStyleR13
	}
	for _, f := range fields {
		if !d.ok() {
			break
		}
		if !d.since(f.since) {
			continue
		}
		switch f.kind {
		case dimB:
			s.Flags[f.name] = d.b()
		case dimRC:
			s.Ints[f.name] = int(d.rc())
		case dimBS:
			s.Ints[f.name] = int(d.bs())
		case dimBD:
			s.Doubles[f.name] = d.bd()
		case dimTV:
			s.Strings[f.name] = d.tv()
		case dimCMC:
			s.Colors[f.name] = d.cmc()
		}
	}
	s.Unknown = d.b()
	d.entryHandles(&s.TableEntry)
	s.TextStyle = d.h()
	if d.since(raw.R2000) {
		s.LeaderBlock = d.h()
		s.DimBlk = d.h()
		s.DimBlk1 = d.h()
		s.DimBlk2 = d.h()
	}
	if d.since(raw.R2007) {
		s.DimLtype = d.h()
		s.DimLtEx1 = d.h()
		s.DimLtEx2 = d.h()
	}
	return s
}
