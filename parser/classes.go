package parser

import (
	"github.com/wudi/dwgkit/ir/raw"
	"github.com/wudi/dwgkit/observability"
)

// readClass reads one class record. R2004 records carry instance counts and
// the writing release after the common fields.
func readClass(f *fieldReader) raw.Class {
	c := raw.Class{
		Number:      f.bs(),
		Version:     f.bs(),
		AppName:     f.tv(),
		CppName:     f.tv(),
		DxfName:     f.tv(),
		WasZombie:   f.b(),
		ItemClassID: f.bs(),
	}
	if f.since(raw.R2004) {
		c.NumObjects = f.bl()
		c.DwgVersion = f.bs()
		c.MaintVersion = f.bs()
		f.bl()
		f.bl()
	}
	return c
}

// readClasses appends class records while the cursor is before last-1. A
// record cut short by the end of the data ends the table.
func (s *session) readClasses(f *fieldReader, last int) {
	for {
		c := readClass(f)
		if !f.ok() {
			s.logger.Warn("class table truncated",
				observability.Int("classes", len(s.doc.Classes)),
				observability.Error("err", f.err))
			return
		}
		s.doc.Classes = append(s.doc.Classes, c)
		if observability.Enabled(s.logger, observability.LevelTrace) {
			observability.Trace(s.logger, observability.LevelTrace, "class",
				observability.Int("number", int(c.Number)),
				observability.Hex("version", uint32(c.Version)),
				observability.String("app", c.AppName),
				observability.String("cpp", c.CppName),
				observability.String("dxf", c.DxfName))
		}
		if f.r.Byte >= last-1 {
			return
		}
	}
}
