// Package gopro classifies GoPro camera filenames and represents
// time-lapse still frames.
package gopro

import "fmt"

// Format represents the still-image file format of a frame.
type Format int

const (
	FormatUnknown Format = iota
	FormatJPG
	FormatGPR // GoPro raw
)

// unknownStr is the string representation for unknown values.
const unknownStr = "unknown"

func (f Format) String() string {
	switch f {
	case FormatJPG:
		return "JPG"
	case FormatGPR:
		return "GPR"
	default:
		return unknownStr
	}
}

// SkipReason explains why a filename was not classified as a
// time-lapse still.
type SkipReason int

const (
	// SkipNone means the name was classified.
	SkipNone SkipReason = iota
	// SkipExtension means the extension is not a still-image format.
	SkipExtension
	// SkipPattern means the extension matched but the name does not
	// follow the still naming pattern.
	SkipPattern
	// SkipVideo means the name belongs to one of the camera's video
	// naming families.
	SkipVideo
)

func (r SkipReason) String() string {
	switch r {
	case SkipNone:
		return "classified"
	case SkipExtension:
		return "extension"
	case SkipPattern:
		return "pattern"
	case SkipVideo:
		return "video"
	default:
		return unknownStr
	}
}

// Still identifies one frame of a time-lapse sequence as encoded in
// the camera's filename.
type Still struct {
	Sequence int // camera-assigned sequence number, 1-999
	Ordinal  int // frame index within the sequence, 0-9999
	Format   Format
}

// Name returns the canonical filename for the frame, with the
// extension in upper case. Classify(s.Name()) yields s back for any
// Still produced by Classify.
func (s Still) Name() string {
	return fmt.Sprintf("G%03d%04d.%s", s.Sequence, s.Ordinal, s.Format)
}
