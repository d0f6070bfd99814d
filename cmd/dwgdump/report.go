package main

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/wudi/dwgkit/ir/raw"
)

// report selects the optional parts of the markdown report. The summary,
// object counts and diagnostics are always written.
type report struct {
	Variables bool
	Classes   bool
	Sections  bool
	Objects   bool
}

type typeCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type summary struct {
	Version     string      `json:"version"`
	Codepage    uint16      `json:"codepage"`
	Objects     int         `json:"objects"`
	Classes     int         `json:"classes"`
	Sections    int         `json:"sections"`
	HandSeed    uint32      `json:"handseed"`
	Preview     bool        `json:"preview"`
	Types       []typeCount `json:"types"`
	Diagnostics []string    `json:"diagnostics,omitempty"`
}

func summarize(doc *raw.Document, diags []string) summary {
	return summary{
		Version:     doc.Version.String(),
		Codepage:    doc.Codepage,
		Objects:     len(doc.Objects),
		Classes:     len(doc.Classes),
		Sections:    len(doc.Sections),
		HandSeed:    doc.Variables.HANDSEED.Value,
		Preview:     doc.Preview != nil && len(doc.Preview.BMP) > 0,
		Types:       countTypes(doc.Objects),
		Diagnostics: diags,
	}
}

// countTypes tallies objects by type name, most frequent first.
func countTypes(objs []raw.Object) []typeCount {
	counts := make(map[string]int)
	for i := range objs {
		counts[objs[i].Name]++
	}
	out := make([]typeCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, typeCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func (r report) markdown(doc *raw.Document, diags []string) []byte {
	var b bytes.Buffer
	s := summarize(doc, diags)
	fmt.Fprintf(&b, "# Drawing %s\n\n", s.Version)
	fmt.Fprintf(&b, "- Code page: %d\n", s.Codepage)
	fmt.Fprintf(&b, "- Objects: %d\n", s.Objects)
	fmt.Fprintf(&b, "- Classes: %d\n", s.Classes)
	fmt.Fprintf(&b, "- Sections: %d\n", s.Sections)
	fmt.Fprintf(&b, "- HANDSEED: 0x%X\n", s.HandSeed)
	fmt.Fprintf(&b, "- Preview: %t\n\n", s.Preview)

	if len(s.Types) > 0 {
		b.WriteString("## Object types\n\n| Type | Count |\n| --- | ---: |\n")
		for _, tc := range s.Types {
			fmt.Fprintf(&b, "| %s | %d |\n", tc.Name, tc.Count)
		}
		b.WriteString("\n")
	}
	if r.Variables {
		v := &doc.Variables
		b.WriteString("## Variables\n\n")
		fmt.Fprintf(&b, "- INSBASE: %v\n", v.INSBASE)
		fmt.Fprintf(&b, "- EXTMIN: %v\n", v.EXTMIN)
		fmt.Fprintf(&b, "- EXTMAX: %v\n", v.EXTMAX)
		fmt.Fprintf(&b, "- LIMMIN: %v\n", v.LIMMIN)
		fmt.Fprintf(&b, "- CLAYER: %s\n", v.CLAYER)
		fmt.Fprintf(&b, "- TDCREATE: day %d + %d ms\n", v.TDCREATE.Days, v.TDCREATE.Milliseconds)
		fmt.Fprintf(&b, "- TDUPDATE: day %d + %d ms\n", v.TDUPDATE.Days, v.TDUPDATE.Milliseconds)
		fmt.Fprintf(&b, "- Measurement: %d\n", v.Measurement)
		fmt.Fprintf(&b, "- CRC: 0x%04X\n\n", v.CRC)
	}
	if r.Classes && len(doc.Classes) > 0 {
		b.WriteString("## Classes\n\n| Number | DXF name | C++ name | Application | Entity |\n| ---: | --- | --- | --- | --- |\n")
		for _, c := range doc.Classes {
			fmt.Fprintf(&b, "| %d | %s | %s | %s | %t |\n", c.Number, c.DxfName, c.CppName, c.AppName, c.ItemClassID == 0x1F2)
		}
		b.WriteString("\n")
	}
	if r.Sections {
		writeSections(&b, doc)
	}
	if r.Objects && len(doc.Objects) > 0 {
		b.WriteString("## Objects\n\n| Index | Handle | Type | Address | Owner or layer |\n| ---: | --- | --- | ---: | --- |\n")
		for i := range doc.Objects {
			o := &doc.Objects[i]
			fmt.Fprintf(&b, "| %d | 0x%X | %s | 0x%X | %s |\n", o.Index, o.Handle.Value, o.Name, o.Address, parent(doc, o))
		}
		b.WriteString("\n")
	}
	if len(diags) > 0 {
		b.WriteString("## Diagnostics\n\n")
		for _, d := range diags {
			fmt.Fprintf(&b, "- `%s`\n", d)
		}
		b.WriteString("\n")
	}
	return b.Bytes()
}

func writeSections(b *bytes.Buffer, doc *raw.Document) {
	if len(doc.Sections) > 0 {
		b.WriteString("## Sections\n\n| Number | Address | Size |\n| ---: | ---: | ---: |\n")
		for _, s := range doc.Sections {
			fmt.Fprintf(b, "| %d | 0x%X | %d |\n", s.Number, s.Address, s.Size)
		}
		b.WriteString("\n")
	}
	if len(doc.SectionInfo) > 0 {
		b.WriteString("## Section descriptions\n\n| Name | Type | Pages | Page size |\n| --- | ---: | ---: | ---: |\n")
		for _, info := range doc.SectionInfo {
			fmt.Fprintf(b, "| %s | %d | %d | %d |\n", info.Name, info.Type, len(info.Pages), info.MaxDecompSize)
		}
		b.WriteString("\n")
	}
}

// parent names the owner of a nongraph record or the layer of an entity,
// resolved against the handle index.
func parent(doc *raw.Document, o *raw.Object) string {
	var ref raw.Handle
	switch {
	case o.Entity != nil:
		ref = o.Entity.Layer
	case o.Nongraph != nil:
		ref = o.Nongraph.Owner
	default:
		return "-"
	}
	abs := doc.Resolve(ref, o.Handle.Value)
	if abs == 0 {
		return "-"
	}
	if target, ok := doc.Object(ref, o.Handle.Value); ok {
		return fmt.Sprintf("0x%X %s", abs, target.Name)
	}
	return fmt.Sprintf("0x%X", abs)
}
