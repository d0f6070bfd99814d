package raw

// Timestamp is a julian day plus milliseconds into that day.
type Timestamp struct {
	Days         uint32
	Milliseconds uint32
}

// Variables holds the header variables of a drawing. Fields are named
// after their DXF variable where one exists; a field missing from the
// version being decoded keeps its zero value.
type Variables struct {
	Unknown0                    float64
	Unknown1                    float64
	Unknown2                    float64
	Unknown3                    float64
	Unknown4                    string
	Unknown5                    string
	Unknown6                    string
	Unknown7                    string
	Unknown8                    uint32
	Unknown9                    uint32
	Unknown10                   uint16
	CurrentViewportEntityHeader Handle
	DIMASO                      bool
	DIMSHO                      bool
	DIMSAV                      bool
	PLINEGEN                    bool
	ORTHOMODE                   bool
	REGENMODE                   bool
	FILLMODE                    bool
	QTEXTMODE                   bool
	PSLTSCALE                   bool
	LIMCHECK                    bool
	BLIPMODE                    bool
	Unknown11                   bool
	USRTIMER                    bool
	SKPOLY                      bool
	ANGDIR                      bool
	SPLFRAME                    bool
	ATTREQ                      bool
	ATTDIA                      bool
	MIRRTEXT                    bool
	WORLDVIEW                   bool
	WIREFRAME                   bool
	TILEMODE                    bool
	PLIMCHECK                   bool
	VISRETAIN                   bool
	DELOBJ                      bool
	DISPSILH                    bool
	PELLIPSE                    bool
	PROXYGRAPHICS               uint16
	DRAGMODE                    uint16
	TREEDEPTH                   uint16
	LUNITS                      uint16
	LUPREC                      uint16
	AUNITS                      uint16
	AUPREC                      uint16
	OSMODE                      uint16
	ATTMODE                     uint16
	COORDS                      uint16
	PDMODE                      uint16
	PICKSTYLE                   uint16
	Unknown12                   uint32
	Unknown13                   uint32
	Unknown14                   uint32
	USERI1                      uint16
	USERI2                      uint16
	USERI3                      uint16
	USERI4                      uint16
	USERI5                      uint16
	SPLINESEGS                  uint16
	SURFU                       uint16
	SURFV                       uint16
	SURFTYPE                    uint16
	SURFTAB1                    uint16
	SURFTAB2                    uint16
	SPLINETYPE                  uint16
	SHADEDGE                    uint16
	SHADEDIF                    uint16
	UNITMODE                    uint16
	MAXACTVP                    uint16
	ISOLINES                    uint16
	CMLJUST                     uint16
	TEXTQLTY                    uint16
	LTSCALE                     float64
	TEXTSIZE                    float64
	TRACEWID                    float64
	SKETCHINC                   float64
	FILLETRAD                   float64
	THICKNESS                   float64
	ANGBASE                     float64
	PDSIZE                      float64
	PLINEWID                    float64
	USERR1                      float64
	USERR2                      float64
	USERR3                      float64
	USERR4                      float64
	USERR5                      float64
	CHAMFERA                    float64
	CHAMFERB                    float64
	CHAMFERC                    float64
	CHAMFERD                    float64
	FACETRES                    float64
	CMLSCALE                    float64
	CELTSCALE                   float64
	MENU                        string
	TDCREATE                    Timestamp
	TDUPDATE                    Timestamp
	Unknown15                   uint32
	Unknown16                   uint32
	Unknown17                   uint32
	TDINDWG                     Timestamp
	TDUSRTIMER                  Timestamp
	CECOLOR                     Color
	HANDSEED                    Handle
	CLAYER                      Handle
	TEXTSTYLE                   Handle
	CELTYPE                     Handle
	DIMSTYLE                    Handle
	CMLSTYLE                    Handle
	PSVPSCALE                   float64
	PINSBASE                    Point3
	PEXTMIN                     Point3
	PEXTMAX                     Point3
	PLIMMIN                     Point2
	PLIMMAX                     Point2
	PELEVATION                  float64
	PUCSORG                     Point3
	PUCSXDIR                    Point3
	PUCSYDIR                    Point3
	PUCSNAME                    Handle
	PUCSORTHOREF                Handle
	PUCSORTHOVIEW               uint16
	PUCSBASE                    Handle
	PUCSORGTOP                  Point3
	PUCSORGBOTTOM               Point3
	PUCSORGLEFT                 Point3
	PUCSORGRIGHT                Point3
	PUCSORGFRONT                Point3
	PUCSORGBACK                 Point3
	INSBASE                     Point3
	EXTMIN                      Point3
	EXTMAX                      Point3
	LIMMIN                      Point2
	LIMMAX                      Point2
	ELEVATION                   float64
	UCSORG                      Point3
	UCSXDIR                     Point3
	UCSYDIR                     Point3
	UCSNAME                     Handle
	UCSORTHOREF                 Handle
	UCSORTHOVIEW                uint16
	UCSBASE                     Handle
	UCSORGTOP                   Point3
	UCSORGBOTTOM                Point3
	UCSORGLEFT                  Point3
	UCSORGRIGHT                 Point3
	UCSORGFRONT                 Point3
	UCSORGBACK                  Point3
	DIMPOST                     string
	DIMAPOST                    string
	DIMTOL                      bool
	DIMLIM                      bool
	DIMTIH                      bool
	DIMTOH                      bool
	DIMSE1                      bool
	DIMSE2                      bool
	DIMALT                      bool
	DIMTOFL                     bool
	DIMSAH                      bool
	DIMTIX                      bool
	DIMSOXD                     bool
	DIMALTD                     uint16
	DIMZIN                      uint16
	DIMSD1                      bool
	DIMSD2                      bool
	DIMTOLJ                     uint16
	DIMJUST                     uint16
	DIMFIT                      uint16
	DIMUPT                      bool
	DIMTZIN                     uint16
	DIMALTZ                     uint16
	DIMALTTZ                    uint16
	DIMTAD                      uint16
	DIMUNIT                     uint16
	DIMAUNIT                    uint16
	DIMDEC                      uint16
	DIMTDEC                     uint16
	DIMALTU                     uint16
	DIMALTTD                    uint16
	DIMTXSTY                    Handle
	DIMSCALE                    float64
	DIMASZ                      float64
	DIMEXO                      float64
	DIMDLI                      float64
	DIMEXE                      float64
	DIMRND                      float64
	DIMDLE                      float64
	DIMTP                       float64
	DIMTM                       float64
	DIMAZIN                     uint16
	DIMTXT                      float64
	DIMCEN                      float64
	DIMTSZ                      float64
	DIMALTF                     float64
	DIMLFAC                     float64
	DIMTVP                      float64
	DIMTFAC                     float64
	DIMGAP                      float64
	DIMBLK                      string
	DIMBLK1                     string
	DIMBLK2                     string
	DIMALTRND                   float64
	DIMCLRD                     Color
	DIMCLRE                     Color
	DIMCLRT                     Color
	DIMADEC                     uint16
	DIMFRAC                     uint16
	DIMLUNIT                    uint16
	DIMDSEP                     uint16
	DIMTMOVE                    uint16
	DIMATFIT                    uint16
	DIMLDRBLK                   Handle
	DIMBLKH                     Handle
	DIMBLK1H                    Handle
	DIMBLK2H                    Handle
	DIMLWD                      uint16
	DIMLWE                      uint16
	BlockControl                Handle
	LayerControl                Handle
	StyleControl                Handle
	LinetypeControl             Handle
	ViewControl                 Handle
	UCSControl                  Handle
	VPortControl                Handle
	AppIDControl                Handle
	DimStyleControl             Handle
	VPEntHdrControl             Handle
	DictionaryGroup             Handle
	DictionaryMLineStyle        Handle
	DictionaryNamedObjects      Handle
	TSTACKALIGN                 uint16
	TSTACKSIZE                  uint16
	HYPERLINKBASE               string
	STYLESHEET                  string
	DictionaryLayouts           Handle
	DictionaryPlotSettings      Handle
	DictionaryPlotStyles        Handle
	DictionaryMaterials         Handle
	DictionaryColors            Handle
	FLAGS                       uint32
	INSUNITS                    uint16
	CEPSNTYPE                   uint16
	CPSNID                      Handle
	FINGERPRINTGUID             string
	VERSIONGUID                 string
	SORTENTS                    uint8
	INDEXCTL                    uint8
	HIDETEXT                    uint8
	XCLIPFRAME                  uint8
	DIMASSOC                    uint8
	HALOGAP                     uint8
	OBSCUREDCOLOR               uint16
	INTERSECTIONCOLOR           uint16
	OBSCUREDLTYPE               uint8
	INTERSECTIONDISPLAY         uint8
	PROJECTNAME                 string
	BlockRecordPaperSpace       Handle
	BlockRecordModelSpace       Handle
	LinetypeByLayer             Handle
	LinetypeByBlock             Handle
	LinetypeContinuous          Handle
	Unknown18                   uint16
	Unknown19                   uint16
	Unknown20                   uint16
	Unknown21                   uint16

	CRC         uint16
	Measurement uint32
}
