package raw

// Section is a physical page of the compressed container, or a locator
// record of the legacy container.
type Section struct {
	Number  int32
	Address uint32
	Size    uint32

	// Tree links of gap pages (negative numbers). Not used for decoding.
	Parent uint32
	Left   uint32
	Right  uint32
	X00    uint32
}

// SectionPage is one page of a logical section. Section is nil when the
// page number is missing from the page map.
type SectionPage struct {
	Number      int32
	DataSize    uint32
	StartOffset uint32
	Unknown     uint32
	Section     *Section
}

// Logical section types of the compressed container.
const (
	SectionTypeVariables uint32 = 0x01
	SectionTypeClasses   uint32 = 0x03
	SectionTypeHandles   uint32 = 0x04
	SectionTypeDbObjects uint32 = 0x07
)

// SectionInfo describes a named logical section and the pages it spans.
type SectionInfo struct {
	Size          int32
	Unknown1      int32
	NumSections   uint32
	MaxDecompSize uint32
	Unknown2      int32
	Compressed    uint32
	Type          uint32
	Encrypted     uint32
	Name          string
	Pages         []SectionPage
}
