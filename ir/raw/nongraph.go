package raw

// Dictionary is also used for ACDBDICTIONARYWDFLT, which adds DefaultID.
type Dictionary struct {
	NumItems    uint32
	Unknown     uint8
	Cloning     uint16
	HardOwner   uint8
	Texts       []string
	Items       []Handle
	DefaultID   Handle
	WithDefault bool
	// Truncated is set when the entry count was implausible and only the
	// common data was kept.
	Truncated bool
}

// Control is a symbol table: BLOCK_CONTROL, LAYER_CONTROL and friends.
type Control struct {
	Kind       string
	NumEntries uint32
	Unknown    uint8
	NullHandle Handle
	Entries    []Handle

	// BLOCK_CONTROL only.
	ModelSpace Handle
	PaperSpace Handle
	// LTYPE_CONTROL only.
	ByLayer Handle
	ByBlock Handle
}

// TableEntry is the prefix shared by every symbol table record.
type TableEntry struct {
	EntryName      string
	Flag64         bool
	XRefIndexPlus1 uint16
	XRefDep        bool
	NullHandle     Handle
}

type BlockHeader struct {
	TableEntry
	Anonymous        bool
	HasAttrs         bool
	BlkIsXRef        bool
	XRefOverlaid     bool
	Loaded           bool
	OwnedObjectCount uint32
	BasePt           Point3
	XRefPName        string
	InsertCount      uint32
	BlockDescription string
	PreviewData      []byte
	InsertUnits      uint16
	Explodable       bool
	BlockScaling     uint8
	BlockEntity      Handle
	FirstEntity      Handle
	LastEntity       Handle
	Entities         []Handle
	EndBlk           Handle
	Inserts          []Handle
	Layout           Handle
}

type Layer struct {
	TableEntry
	Frozen      bool
	On          bool
	FrozenInNew bool
	Locked      bool
	Values      uint16
	Color       Color
	Plotstyle   Handle
	Material    Handle
	Linetype    Handle
}

type Style struct {
	TableEntry
	Vertical     bool
	IsShapeFile  bool
	FixedHeight  float64
	WidthFactor  float64
	ObliqueAngle float64
	Generation   uint8
	LastHeight   float64
	FontName     string
	BigFontName  string
}

type LtypeDash struct {
	Length           float64
	ComplexShapecode uint16
	XOffset          float64
	YOffset          float64
	Scale            float64
	Rotation         float64
	ShapeFlag        uint16
}

type Ltype struct {
	TableEntry
	Description   string
	PatternLength float64
	Alignment     uint8
	Dashes        []LtypeDash
	StringsArea   []byte
	ShapeFiles    []Handle
}

type View struct {
	TableEntry
	Height          float64
	Width           float64
	Center          Point2
	Target          Point3
	Direction       Point3
	TwistAngle      float64
	LensLength      float64
	FrontClip       float64
	BackClip        float64
	ViewMode        [4]bool
	RenderMode      uint8
	PSpaceFlag      bool
	AssociatedUCS   bool
	Origin          Point3
	XDirection      Point3
	YDirection      Point3
	Elevation       float64
	OrthoViewType   uint16
	CameraPlottable bool
	BaseUCS         Handle
	NamedUCS        Handle
	LiveSection     Handle
}

type UCS struct {
	TableEntry
	Origin        Point3
	XDirection    Point3
	YDirection    Point3
	Elevation     float64
	OrthoViewType uint16
	OrthoType     uint16
	BaseUCS       Handle
	Unknown       Handle
}

type VPort struct {
	TableEntry
	ViewHeight       float64
	AspectRatio      float64
	ViewCenter       Point2
	ViewTarget       Point3
	ViewDir          Point3
	ViewTwist        float64
	LensLength       float64
	FrontClip        float64
	BackClip         float64
	ViewMode         uint8
	RenderMode       uint8
	UseDefaultLights bool
	DefaultLighting  uint8
	Brightness       float64
	Contrast         float64
	Ambient          Color
	LowerLeft        Point2
	UpperRight       Point2
	UCSFollow        bool
	CircleZoom       uint16
	FastZoom         bool
	UCSIcon          [2]bool
	GridOn           bool
	GridSpacing      Point2
	SnapOn           bool
	SnapStyle        bool
	SnapIsopair      uint16
	SnapRot          float64
	SnapBase         Point2
	SnapSpacing      Point2
	Unknown          bool
	UCSPerViewport   bool
	UCSOrigin        Point3
	UCSXAxis         Point3
	UCSYAxis         Point3
	UCSElevation     float64
	UCSOrthoType     uint16
	GridFlags        uint16
	GridMajor        uint16
	Background       Handle
	VisualStyle      Handle
	Sun              Handle
	NamedUCS         Handle
	BaseUCS          Handle
}

type AppID struct {
	TableEntry
	Unknown uint8
}

// DimStyle keeps the dimension variables by name. Booleans, integers,
// doubles, strings and colors are kept in separate maps since the set of
// fields depends on the version.
type DimStyle struct {
	TableEntry
	Flags   map[string]bool
	Ints    map[string]int
	Doubles map[string]float64
	Strings map[string]string
	Colors  map[string]Color
	Unknown bool

	TextStyle   Handle
	LeaderBlock Handle
	DimBlk      Handle
	DimBlk1     Handle
	DimBlk2     Handle
	DimLtype    Handle
	DimLtEx1    Handle
	DimLtEx2    Handle
}

type VPEntHdr struct {
	TableEntry
	OneFlag bool
}

type Group struct {
	Name       string
	Unnamed    uint16
	Selectable uint16
	Entries    []Handle
}

type MLineStyleLine struct {
	Offset  float64
	Color   Color
	LtIndex uint16
}

type MLineStyle struct {
	Name       string
	Desc       string
	Flags      uint16
	FillColor  Color
	StartAngle float64
	EndAngle   float64
	Lines      []MLineStyleLine
}

type DictionaryVar struct {
	IntVal uint8
	Str    string
}

type IDBuffer struct {
	Unknown uint8
	ObjIDs  []Handle
}

type ImageDef struct {
	ClassVersion uint32
	ImageSize    Point2
	FilePath     string
	IsLoaded     bool
	ResUnits     uint8
	PixelSize    Point2
}

type ImageDefReactor struct {
	ClassVersion uint32
}

type LayerEntry struct {
	IndexLong uint32
	IndexStr  string
	Handle    Handle
}

type LayerIndex struct {
	Timestamp1 uint32
	Timestamp2 uint32
	Entries    []LayerEntry
}

type Layout struct {
	PageSetupName      string
	PrinterOrConfig    string
	PlotLayoutFlags    uint16
	LeftMargin         float64
	BottomMargin       float64
	RightMargin        float64
	TopMargin          float64
	PaperWidth         float64
	PaperHeight        float64
	PaperSize          string
	PlotOrigin         Point2
	PaperUnits         uint16
	PlotRotation       uint16
	PlotType           uint16
	WindowMin          Point2
	WindowMax          Point2
	PlotViewName       string
	RealWorldUnits     float64
	DrawingUnits       float64
	CurrentStyleSheet  string
	ScaleType          uint16
	ScaleFactor        float64
	PaperImageOrigin   Point2
	ShadePlotMode      uint16
	ShadePlotResLevel  uint16
	ShadePlotCustomDPI uint16
	LayoutName         string
	TabOrder           uint16
	Flags              uint16
	UCSOrigin          Point3
	MinLimits          Point2
	MaxLimits          Point2
	InsPoint           Point3
	UCSXAxis           Point3
	UCSYAxis           Point3
	Elevation          float64
	OrthoViewType      uint16
	ExtentMin          Point3
	ExtentMax          Point3

	PlotView           Handle
	VisualStyle        Handle
	PaperSpaceBlock    Handle
	LastActiveViewport Handle
	BaseUCS            Handle
	NamedUCS           Handle
	Viewports          []Handle
}

type RasterVariables struct {
	ClassVersion   uint32
	DisplayFrame   uint16
	DisplayQuality uint16
	Units          uint16
}

type SortEntsTable struct {
	SortHandles   []Handle
	OwnerHandle   Handle
	ObjectHandles []Handle
}

type SpatialFilter struct {
	Points                []Point2
	Extrusion             Point3
	ClipBoundOrigin       Point3
	DisplayBoundary       uint16
	FrontClipOn           uint16
	FrontClipDist         float64
	BackClipOn            uint16
	BackClipDist          float64
	InverseBlockTransform []float64
	ClipBoundTransform    []float64
}

type SpatialIndex struct {
	Timestamp1 uint32
	Timestamp2 uint32
}

// XRecord keeps its data as undecoded group-code bytes.
type XRecord struct {
	Data         []byte
	CloningFlags uint16
}

type Placeholder struct{}

type WipeoutVariables struct {
	DisplayFrame uint16
}

func (d Dictionary) Type() string {
	if d.WithDefault {
		return "DICTIONARYWDLFT"
	}
	return "DICTIONARY"
}

func (c Control) Type() string        { return c.Kind }
func (BlockHeader) Type() string      { return "BLOCK_HEADER" }
func (Layer) Type() string            { return "LAYER" }
func (Style) Type() string            { return "SHAPEFILE" }
func (Ltype) Type() string            { return "LTYPE" }
func (View) Type() string             { return "VIEW" }
func (UCS) Type() string              { return "UCS" }
func (VPort) Type() string            { return "VPORT" }
func (AppID) Type() string            { return "APPID" }
func (DimStyle) Type() string         { return "DIMSTYLE" }
func (VPEntHdr) Type() string         { return "VP_ENT_HDR" }
func (Group) Type() string            { return "GROUP" }
func (MLineStyle) Type() string       { return "MLINESTYLE" }
func (DictionaryVar) Type() string    { return "DICTIONARYVAR" }
func (IDBuffer) Type() string         { return "IDBUFFER" }
func (ImageDef) Type() string         { return "IMAGEDEF" }
func (ImageDefReactor) Type() string  { return "IMAGEDEF_REACTOR" }
func (LayerIndex) Type() string       { return "LAYER_INDEX" }
func (Layout) Type() string           { return "LAYOUT" }
func (RasterVariables) Type() string  { return "RASTERVARIABLES" }
func (SortEntsTable) Type() string    { return "SORTENTSTABLE" }
func (SpatialFilter) Type() string    { return "SPATIAL_FILTER" }
func (SpatialIndex) Type() string     { return "SPATIAL_INDEX" }
func (XRecord) Type() string          { return "XRECORD" }
func (Placeholder) Type() string      { return "PLACEHOLDER" }
func (WipeoutVariables) Type() string { return "WIPEOUTVARIABLES" }
