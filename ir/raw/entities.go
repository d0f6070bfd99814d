package raw

// TextCommon is shared by TEXT, ATTRIB and ATTDEF.
type TextCommon struct {
	DataFlags      uint8
	Elevation      float64
	Insertion      Point2
	Alignment      Point2
	Extrusion      Point3
	Thickness      float64
	ObliqueAngle   float64
	Rotation       float64
	Height         float64
	WidthFactor    float64
	Value          string
	Generation     uint16
	HorizAlignment uint16
	VertAlignment  uint16
	Style          Handle
}

type Text struct {
	TextCommon
}

type Attrib struct {
	TextCommon
	Tag          string
	FieldLength  uint16
	Flags        uint8
	LockPosition bool
}

type Attdef struct {
	Attrib
	Prompt string
}

type Block struct{ Name string }

type EndBlk struct{}

type SeqEnd struct{}

// Insert is also used for MINSERT, which adds a rectangular array.
type Insert struct {
	InsPt         Point3
	ScaleFlag     ScaleFlag
	Scale         Point3
	Rotation      float64
	Extrusion     Point3
	HasAttribs    bool
	OwnedObjCount uint32

	NumCols    uint16
	NumRows    uint16
	ColSpacing float64
	RowSpacing float64
	Multiple   bool

	BlockHeader Handle
	FirstAttrib Handle
	LastAttrib  Handle
	Attribs     []Handle
	SeqEnd      Handle
}

type Vertex2D struct {
	Flags      uint8
	Point      Point3
	StartWidth float64
	EndWidth   float64
	Bulge      float64
	TangentDir float64
}

// Vertex3D covers VERTEX_3D, VERTEX_MESH and VERTEX_PFACE.
type Vertex3D struct {
	Kind  string
	Flags uint8
	Point Point3
}

type VertexPFaceFace struct {
	VertInd [4]uint16
}

// PolylineLinks are the vertex and seqend links shared by the polyline
// variants.
type PolylineLinks struct {
	OwnedObjCount uint32
	FirstVertex   Handle
	LastVertex    Handle
	Vertices      []Handle
	SeqEnd        Handle
}

type Polyline2D struct {
	Flags      uint16
	CurveType  uint16
	StartWidth float64
	EndWidth   float64
	Thickness  float64
	Elevation  float64
	Extrusion  Point3
	PolylineLinks
}

type Polyline3D struct {
	Flags1 uint8
	Flags2 uint8
	PolylineLinks
}

type PolylinePFace struct {
	NumVerts uint16
	NumFaces uint16
	PolylineLinks
}

type PolylineMesh struct {
	Flags      uint16
	CurveType  uint16
	MVertCount uint16
	NVertCount uint16
	MDensity   uint16
	NDensity   uint16
	PolylineLinks
}

type Arc struct {
	Center     Point3
	Radius     float64
	Thickness  float64
	Extrusion  Point3
	StartAngle float64
	EndAngle   float64
}

type Circle struct {
	Center    Point3
	Radius    float64
	Thickness float64
	Extrusion Point3
}

type Line struct {
	ZsAreZero bool
	Start     Point3
	End       Point3
	Thickness float64
	Extrusion Point3
}

// DimensionCommon holds the fields every dimension flavour starts with.
type DimensionCommon struct {
	Extrusion       Point3
	TextMidpt       Point2
	Elevation       float64
	Flags1          uint8
	UserText        string
	TextRot         float64
	HorizDir        float64
	InsScale        Point3
	InsRotation     float64
	AttachmentPoint uint16
	LinespaceStyle  uint16
	LinespaceFactor float64
	ActMeasurement  float64
	Unknown         bool
	FlipArrow1      bool
	FlipArrow2      bool
	DimStyle        Handle
	Block           Handle
}

// Dimension covers the seven dimension entities; Kind tells which of the
// definition points are meaningful.
type Dimension struct {
	DimensionCommon
	Kind       string
	Pt10       Point3
	Pt12       Point2
	Pt13       Point3
	Pt14       Point3
	Pt15       Point3
	Pt16       Point2
	Flags2     uint8
	ExtLineRot float64
	DimRot     float64
	LeaderLen  float64
}

type PointEnt struct {
	X, Y, Z   float64
	Thickness float64
	Extrusion Point3
	XAng      float64
}

type Face3D struct {
	HasNoFlags bool
	ZIsZero    bool
	Corners    [4]Point3
	InvisFlags uint16
}

// Solid is also used for TRACE.
type Solid struct {
	Kind      string
	Thickness float64
	Elevation float64
	Corners   [4]Point2
	Extrusion Point3
}

type Shape struct {
	InsPt       Point3
	Scale       float64
	Rotation    float64
	WidthFactor float64
	Oblique     float64
	Thickness   float64
	ShapeNo     uint16
	Extrusion   Point3
	ShapeFile   Handle
}

type Viewport struct {
	Center           Point3
	Width            float64
	Height           float64
	ViewTarget       Point3
	ViewDirection    Point3
	ViewTwist        float64
	ViewHeight       float64
	LensLength       float64
	FrontClip        float64
	BackClip         float64
	SnapAngle        float64
	ViewCenter       Point2
	SnapBase         Point2
	SnapSpacing      Point2
	GridSpacing      Point2
	CircleZoom       uint16
	GridMajor        uint16
	FrozenLayerCount uint32
	StatusFlags      uint32
	StyleSheet       string
	RenderMode       uint8
	UCSAtOrigin      bool
	UCSPerViewport   bool
	UCSOrigin        Point3
	UCSXAxis         Point3
	UCSYAxis         Point3
	UCSElevation     float64
	UCSOrthoViewType uint16
	ShadeplotMode    uint16
	UseDefLights     bool
	DefLightingType  uint8
	Brightness       float64
	Contrast         float64
	Ambient          Color
}

type Ellipse struct {
	Center     Point3
	SmAxis     Point3
	Extrusion  Point3
	AxisRatio  float64
	StartAngle float64
	EndAngle   float64
}

type SplinePoint struct {
	Point  Point3
	Weight float64
}

type Spline struct {
	Scenario  uint32
	Degree    uint32
	FitTol    float64
	BegTanVec Point3
	EndTanVec Point3
	Rational  bool
	Closed    bool
	Periodic  bool
	KnotTol   float64
	CtrlTol   float64
	Weighted  bool
	Knots     []float64
	CtrlPts   []SplinePoint
	FitPts    []Point3
}

// Wire is an edge of the wireframe attached to modeler geometry.
type Wire struct {
	Type             uint8
	SelectionMarker  uint32
	Color            uint16
	AcisIndex        uint32
	Points           []Point3
	TransformPresent bool
	AxisX            Point3
	AxisY            Point3
	AxisZ            Point3
	Translation      Point3
	Scale            float64
	HasRotation      bool
	HasReflection    bool
	HasShear         bool
}

type Silhouette struct {
	VpID        uint32
	VpTarget    Point3
	VpDirection Point3
	VpUpVector  Point3
	Perspective bool
	Wires       []Wire
}

// Solid3D covers REGION, 3DSOLID and BODY.
type Solid3D struct {
	Kind             string
	AcisEmpty        bool
	Unknown          bool
	Version          uint16
	BlockSizes       []uint32
	ACISData         []byte
	WireframePresent bool
	PointPresent     bool
	Point            Point3
	NumIsolines      uint32
	IsolinePresent   bool
	Wires            []Wire
	Silhouettes      []Silhouette
	AcisEmptyBit     bool
	Unknown2007      uint32
	HistoryID        Handle
}

// Ray is also used for XLINE.
type Ray struct {
	Kind   string
	Point  Point3
	Vector Point3
}

type MText struct {
	Insertion       Point3
	Extrusion       Point3
	XAxisDir        Point3
	RectHeight      float64
	RectWidth       float64
	TextHeight      float64
	Attachment      uint16
	DrawingDir      uint16
	ExtentsHeight   float64
	ExtentsWidth    float64
	Text            string
	LinespaceStyle  uint16
	LinespaceFactor float64
	UnknownBit      bool
	UnknownLong     uint32
	Style           Handle
}

type Leader struct {
	UnknownBit1          bool
	AnnotType            uint16
	PathType             uint16
	Points               []Point3
	EndPtProj            Point3
	Extrusion            Point3
	XDirection           Point3
	OffsetToBlockInsPt   Point3
	UnknownPt            Point3
	DimGap               float64
	BoxHeight            float64
	BoxWidth             float64
	HooklineOnXDir       bool
	ArrowheadOn          bool
	ArrowheadType        uint16
	DimAsz               float64
	UnknownShort1        uint16
	ByBlockColor         uint16
	AssociatedAnnotation Handle
	DimStyle             Handle
}

type Tolerance struct {
	UnknownShort uint16
	Height       float64
	DimGap       float64
	InsPt        Point3
	XDirection   Point3
	Extrusion    Point3
	Text         string
	DimStyle     Handle
}

type MLineVertexLine struct {
	SegParms      []float64
	AreaFillParms []float64
}

type MLineVertex struct {
	Vertex          Point3
	VertexDirection Point3
	MiterDirection  Point3
	Lines           []MLineVertexLine
}

type MLine struct {
	Scale         float64
	Justification uint8
	BasePoint     Point3
	Extrusion     Point3
	OpenClosed    uint16
	NumLines      uint8
	Verts         []MLineVertex
	MLineStyle    Handle
}

type GradientColor struct {
	Shift float64
	Index uint16
	RGB   uint32
	Flag  uint8
}

// HatchSegment is one edge of a non-polyline boundary path. Type is 1 line,
// 2 circular arc, 3 elliptic arc, 4 spline.
type HatchSegment struct {
	Type          uint8
	First         Point2
	Second        Point2
	Radius        float64
	Ratio         float64
	StartAngle    float64
	EndAngle      float64
	CCW           bool
	Degree        uint32
	Rational      bool
	Periodic      bool
	Knots         []float64
	ControlPoints []SplinePointWeight2
}

type SplinePointWeight2 struct {
	Point  Point2
	Weight float64
}

type HatchPolylineVertex struct {
	Point Point2
	Bulge float64
}

type HatchPath struct {
	Flag          uint32
	Segments      []HatchSegment
	BulgesPresent bool
	Closed        bool
	Polyline      []HatchPolylineVertex
	NumBoundary   uint32
}

type HatchDefLine struct {
	Angle  float64
	Pt0    Point2
	Offset Point2
	Dashes []float64
}

type Hatch struct {
	IsGradient     uint32
	Reserved       uint32
	GradientAngle  float64
	GradientShift  float64
	SingleColor    uint32
	GradientTint   float64
	GradientColors []GradientColor
	GradientName   string

	ZCoord       float64
	Extrusion    Point3
	Name         string
	SolidFill    bool
	Associative  bool
	Paths        []HatchPath
	Style        uint16
	PatternType  uint16
	Angle        float64
	ScaleSpacing float64
	DoubleFlag   bool
	DefLines     []HatchDefLine
	PixelSize    float64
	SeedPoints   []Point2
	Boundary     []Handle
}

// Image is also used for WIPEOUT.
type Image struct {
	Kind             string
	ClassVersion     uint32
	Pt0              Point3
	UVec             Point3
	VVec             Point3
	Size             Point2
	DisplayProps     uint16
	Clipping         bool
	Brightness       uint8
	Contrast         uint8
	Fade             uint8
	ClipBoundaryType uint16
	ClipVerts        []Point2
	ImageDef         Handle
	ImageDefReactor  Handle
}

type LWPlineWidth struct {
	Start float64
	End   float64
}

type LWPline struct {
	Flags      uint16
	ConstWidth float64
	Elevation  float64
	Thickness  float64
	Normal     Point3
	Points     []Point2
	Bulges     []float64
	Widths     []LWPlineWidth
}

type OLE2Frame struct {
	Flags   uint16
	Mode    uint16
	Data    []byte
	Unknown uint8
}

func (Text) Type() string            { return "TEXT" }
func (Attrib) Type() string          { return "ATTRIB" }
func (Attdef) Type() string          { return "ATTDEF" }
func (Block) Type() string           { return "BLOCK" }
func (EndBlk) Type() string          { return "ENDBLK" }
func (SeqEnd) Type() string          { return "SEQEND" }
func (VertexPFaceFace) Type() string { return "VERTEX_PFACE_FACE" }
func (Vertex2D) Type() string        { return "VERTEX_2D" }
func (v Vertex3D) Type() string      { return v.Kind }
func (Polyline2D) Type() string      { return "POLYLINE_2D" }
func (Polyline3D) Type() string      { return "POLYLINE_3D" }
func (PolylinePFace) Type() string   { return "POLYLINE_PFACE" }
func (PolylineMesh) Type() string    { return "POLYLINE_MESH" }
func (Arc) Type() string             { return "ARC" }
func (Circle) Type() string          { return "CIRCLE" }
func (Line) Type() string            { return "LINE" }
func (d Dimension) Type() string     { return "DIMENSION_" + d.Kind }
func (PointEnt) Type() string        { return "POINT" }
func (Face3D) Type() string          { return "3DFACE" }
func (s Solid) Type() string         { return s.Kind }
func (Shape) Type() string           { return "SHAPE" }
func (Viewport) Type() string        { return "VIEWPORT" }
func (Ellipse) Type() string         { return "ELLIPSE" }
func (Spline) Type() string          { return "SPLINE" }
func (s Solid3D) Type() string       { return s.Kind }
func (r Ray) Type() string           { return r.Kind }
func (MText) Type() string           { return "MTEXT" }
func (Leader) Type() string          { return "LEADER" }
func (Tolerance) Type() string       { return "TOLERANCE" }
func (MLine) Type() string           { return "MLINE" }
func (Hatch) Type() string           { return "HATCH" }
func (i Image) Type() string         { return i.Kind }
func (LWPline) Type() string         { return "LWPLINE" }
func (OLE2Frame) Type() string       { return "OLE2FRAME" }

func (i Insert) Type() string {
	if i.Multiple {
		return "MINSERT"
	}
	return "INSERT"
}
