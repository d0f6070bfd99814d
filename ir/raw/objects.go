package raw

// Supertype separates drawable records from bookkeeping records.
type Supertype uint8

const (
	SupertypeUnknown Supertype = iota
	SupertypeEntity
	SupertypeNongraph
)

func (s Supertype) String() string {
	switch s {
	case SupertypeEntity:
		return "entity"
	case SupertypeNongraph:
		return "object"
	default:
		return "unknown"
	}
}

// Payload is the type-specific part of a decoded record.
type Payload interface {
	Type() string
}

// Object is one decoded record. Exactly one of Entity and Nongraph is set,
// matching Supertype.
type Object struct {
	Index     int
	Type      uint16
	Name      string
	Supertype Supertype
	Address   int64
	Size      uint32
	Bitsize   uint32

	Handle      Handle
	NumEED      int
	NumReactors uint32
	Reactors    []Handle
	XDicMissing bool
	XDictionary Handle

	Entity   *Entity
	Nongraph *Nongraph
}

// Payload returns the type-specific data of o, or nil.
func (o *Object) Payload() Payload {
	switch {
	case o.Entity != nil:
		return o.Entity.Payload
	case o.Nongraph != nil:
		return o.Nongraph.Payload
	}
	return nil
}

// Owner returns the owning handle: the subentity link for entities, the
// parent for nongraph records.
func (o *Object) Owner() Handle {
	switch {
	case o.Entity != nil:
		return o.Entity.Subentity
	case o.Nongraph != nil:
		return o.Nongraph.Owner
	}
	return Handle{}
}

// Entity holds the data shared by all drawable records.
type Entity struct {
	PictureExists bool
	PictureSize   uint32
	Mode          uint8
	IsByLayerLT   bool
	NoLinks       bool
	Color         Color
	ColorFlags    uint16
	Transparency  uint32
	LinetypeScale float64

	LinetypeFlags  uint8
	PlotstyleFlags uint8
	MaterialFlags  uint8
	Shadow         uint8
	Invisible      uint16
	Lineweight     uint8

	Subentity Handle
	Layer     Handle
	Ltype     Handle
	Prev      Handle
	Next      Handle
	Material  Handle
	Plotstyle Handle

	Payload Payload
}

// Nongraph holds the data shared by table entries, dictionaries and other
// records that are not drawn.
type Nongraph struct {
	Owner   Handle
	Payload Payload
}

// Class declares a type code >= 500.
type Class struct {
	Number      uint16
	Version     uint16
	AppName     string
	CppName     string
	DxfName     string
	WasZombie   bool
	ItemClassID uint16

	// Only present in R2004 and later.
	NumObjects   uint32
	DwgVersion   uint16
	MaintVersion uint16
}

// IsEntity reports whether instances of c are drawable.
func (c Class) IsEntity() bool { return c.ItemClassID == 0x1F2 }
