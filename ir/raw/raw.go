package raw

import (
	"context"
	"fmt"
)

// Version identifies the release that wrote a drawing.
type Version int

const (
	VersionBefore Version = iota
	R13
	R14
	R2000
	R2004
	R2007
	R2010
	R2013
	VersionAfter
)

var versionTags = [...]string{
	R13:   "AC1012",
	R14:   "AC1014",
	R2000: "AC1015",
	R2004: "AC1018",
	R2007: "AC1021",
	R2010: "AC1024",
	R2013: "AC1027",
}

var versionNames = [...]string{
	VersionBefore: "before",
	R13:           "R13",
	R14:           "R14",
	R2000:         "R2000",
	R2004:         "R2004",
	R2007:         "R2007",
	R2010:         "R2010",
	R2013:         "R2013",
	VersionAfter:  "after",
}

// Tag returns the six-byte magic written at offset 0 for v.
func (v Version) Tag() string {
	if v <= VersionBefore || v >= VersionAfter {
		return ""
	}
	return versionTags[v]
}

func (v Version) String() string {
	if v < VersionBefore || v > VersionAfter {
		return fmt.Sprintf("version(%d)", int(v))
	}
	return versionNames[v]
}

// ParseVersion maps a version tag to its Version.
func ParseVersion(tag string) (Version, bool) {
	for v := R13; v < VersionAfter; v++ {
		if versionTags[v] == tag {
			return v, true
		}
	}
	return VersionBefore, false
}

// Handle is a reference to an object. Code tells whether Value is absolute
// or an offset from the owning object's handle.
type Handle struct {
	Code  uint8
	Size  uint8
	Value uint32
}

func (h Handle) String() string { return fmt.Sprintf("%d.%d.%X", h.Code, h.Size, h.Value) }

// IsNull reports whether h carries no reference.
func (h Handle) IsNull() bool { return h.Size == 0 && h.Value == 0 }

type Point2 struct{ X, Y float64 }

type Point3 struct{ X, Y, Z float64 }

// UnitZ is the default extrusion direction.
var UnitZ = Point3{0, 0, 1}

// Color is a CMC color value. Only Index is stored before R2004.
type Color struct {
	Index    int16
	RGB      uint32
	Flags    uint8
	Name     string
	BookName string
}

// ScaleFlag describes how an INSERT scale triple was packed.
type ScaleFlag uint8

const (
	ScaleExplicit ScaleFlag = iota // x raw, y and z default-coded against x
	ScaleXOnly                     // x is 1, y and z default-coded against 1
	ScaleUniform                   // x raw, y and z equal to x
	ScaleUnit                      // all three are 1
)

// Scale reconstructs a scale triple from its packed form.
func (f ScaleFlag) Scale(x, y, z float64) Point3 {
	switch f {
	case ScaleUnit:
		return Point3{1, 1, 1}
	case ScaleUniform:
		return Point3{x, x, x}
	case ScaleXOnly:
		return Point3{1, y, z}
	default:
		return Point3{x, y, z}
	}
}

// HandleResolver answers handle queries once all objects are decoded.
type HandleResolver interface {
	IndexOf(value uint32) (int, bool)
	ResolveAbsolute(h Handle, owner uint32) uint32
}

// Document is the decoded form of a drawing.
type Document struct {
	Version     Version
	Codepage    uint16
	Variables   Variables
	Classes     []Class
	Objects     []Object
	Sections    []Section
	SectionInfo []SectionInfo
	Preview     *Preview

	resolver HandleResolver
}

// SetResolver installs the index used by Lookup and Resolve.
func (d *Document) SetResolver(r HandleResolver) { d.resolver = r }

// Lookup returns the position in Objects of the object with the given
// handle value.
func (d *Document) Lookup(value uint32) (int, bool) {
	if d.resolver == nil {
		return -1, false
	}
	return d.resolver.IndexOf(value)
}

// Resolve turns a possibly relative handle into an absolute value.
func (d *Document) Resolve(h Handle, owner uint32) uint32 {
	if d.resolver == nil {
		return 0
	}
	return d.resolver.ResolveAbsolute(h, owner)
}

// Object returns the object referenced by h from the point of view of owner.
func (d *Document) Object(h Handle, owner uint32) (*Object, bool) {
	idx, ok := d.Lookup(d.Resolve(h, owner))
	if !ok {
		return nil, false
	}
	return &d.Objects[idx], true
}

// ClassFor returns the class declaring a dynamic type code (>= 500).
func (d *Document) ClassFor(typ uint16) (*Class, bool) {
	i := int(typ) - 500
	if i < 0 || i >= len(d.Classes) {
		return nil, false
	}
	return &d.Classes[i], true
}

// Parser converts a drawing buffer into a Document.
type Parser interface {
	Parse(ctx context.Context, data []byte) (*Document, error)
}
