package security

import "time"

// Limits defines sanity boundaries for decoding drawings. Most of them reject
// values that only occur in corrupt or misaligned records; the legacy object
// scan relies on them to tell real records from noise.
type Limits struct {
	// Maximum object bit size recorded in an object header. Default: 0x80000000.
	MaxObjectBits uint32

	// Maximum R13/R14 nongraph bit size. Default: 0x10000000.
	MaxNongraphBits uint32

	// Maximum reactors attached to one object. Default: 0x100000.
	MaxReactors uint32

	// Maximum extended-data chunk length (bytes). Default: 1000.
	MaxEEDSize int

	// Entity preview pictures at or above this size are treated as corruption. Default: 210210.
	MaxPictureSize uint32

	// Dictionaries with more entries keep only their common data. Default: 10,000.
	MaxDictionaryItems uint32

	// Linetype scale must lie in [MinLinetypeScale, MaxLinetypeScale].
	MinLinetypeScale float64
	MaxLinetypeScale float64

	// Magnitude bounds for decoded doubles: zero, or within [MinMagnitude, MaxMagnitude].
	MinMagnitude float64
	MaxMagnitude float64

	// Maximum pages listed for one logical section. Default: 1000.
	MaxSectionPages uint32

	// Maximum decompressed size of one logical section. Default: 256 MB.
	MaxDecompressedSize int64

	// Maximum total decode time; zero disables the check. Default: 5m.
	MaxParseTime time.Duration
}

// DefaultLimits returns a Limits struct with safe default values.
func DefaultLimits() Limits {
	return Limits{
		MaxObjectBits:       0x80000000,
		MaxNongraphBits:     0x10000000,
		MaxReactors:         0x100000,
		MaxEEDSize:          1000,
		MaxPictureSize:      210210,
		MaxDictionaryItems:  10000,
		MinLinetypeScale:    1.0e-6,
		MaxLinetypeScale:    1.0e6,
		MinMagnitude:        1.0e-31,
		MaxMagnitude:        1.0e27,
		MaxSectionPages:     1000,
		MaxDecompressedSize: 256 * 1024 * 1024, // 256 MB
		MaxParseTime:        5 * time.Minute,
	}
}

// WithDefaults fills every zero field of l from DefaultLimits.
func (l Limits) WithDefaults() Limits {
	d := DefaultLimits()
	if l.MaxObjectBits == 0 {
		l.MaxObjectBits = d.MaxObjectBits
	}
	if l.MaxNongraphBits == 0 {
		l.MaxNongraphBits = d.MaxNongraphBits
	}
	if l.MaxReactors == 0 {
		l.MaxReactors = d.MaxReactors
	}
	if l.MaxEEDSize == 0 {
		l.MaxEEDSize = d.MaxEEDSize
	}
	if l.MaxPictureSize == 0 {
		l.MaxPictureSize = d.MaxPictureSize
	}
	if l.MaxDictionaryItems == 0 {
		l.MaxDictionaryItems = d.MaxDictionaryItems
	}
	if l.MinLinetypeScale == 0 {
		l.MinLinetypeScale = d.MinLinetypeScale
	}
	if l.MaxLinetypeScale == 0 {
		l.MaxLinetypeScale = d.MaxLinetypeScale
	}
	if l.MinMagnitude == 0 {
		l.MinMagnitude = d.MinMagnitude
	}
	if l.MaxMagnitude == 0 {
		l.MaxMagnitude = d.MaxMagnitude
	}
	if l.MaxSectionPages == 0 {
		l.MaxSectionPages = d.MaxSectionPages
	}
	if l.MaxDecompressedSize == 0 {
		l.MaxDecompressedSize = d.MaxDecompressedSize
	}
	return l
}

// PlausibleDouble reports whether v is zero or within the magnitude bounds.
func (l Limits) PlausibleDouble(v float64) bool {
	if v > l.MaxMagnitude || v < -l.MaxMagnitude {
		return false
	}
	if v != 0 && v < l.MinMagnitude && v > -l.MinMagnitude {
		return false
	}
	return true
}
