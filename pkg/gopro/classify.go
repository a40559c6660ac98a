package gopro

import "strings"

// Still filenames are a fixed 'G' prefix, three sequence digits and
// four ordinal digits: G0010001.JPG. The camera also writes the same
// frame as a raw sibling with the .GPR extension.
const stemLen = 8

// Classify decides whether name is a time-lapse still frame. It is a
// pure function of the base filename: no filesystem access, no
// panics, any string input.
//
// On success the returned reason is SkipNone and the Still carries
// the decoded sequence number, ordinal and format. Everything else
// comes back as the zero Still with the reason for skipping.
// Extension matching is case-insensitive; the stem must use the
// camera's upper-case form.
func Classify(name string) (Still, SkipReason) {
	if strings.ContainsAny(name, `/\`) {
		return Still{}, SkipPattern
	}
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 {
		return Still{}, SkipExtension
	}
	stem, ext := name[:dot], name[dot+1:]

	var format Format
	switch {
	case strings.EqualFold(ext, "JPG"):
		format = FormatJPG
	case strings.EqualFold(ext, "GPR"):
		format = FormatGPR
	default:
		if isVideoExt(ext) && isVideoStem(stem) {
			return Still{}, SkipVideo
		}
		return Still{}, SkipExtension
	}

	if len(stem) != stemLen || stem[0] != 'G' || !isDigits(stem[1:]) {
		return Still{}, SkipPattern
	}
	seq := atoi(stem[1:4])
	if seq == 0 {
		// Sequence numbering starts at 001.
		return Still{}, SkipPattern
	}
	return Still{Sequence: seq, Ordinal: atoi(stem[4:]), Format: format}, SkipNone
}

func isVideoExt(ext string) bool {
	return strings.EqualFold(ext, "MP4") ||
		strings.EqualFold(ext, "LRV") ||
		strings.EqualFold(ext, "THM")
}

// isVideoStem matches the camera's video naming families: GOPR0001
// and chaptered GP010001 on older models, GH010001/GX010001 on newer
// ones (chapter may be letters for looping capture), and G0010001 for
// time-lapse video. Stems are matched in the upper-case form the
// camera writes.
func isVideoStem(stem string) bool {
	if len(stem) != stemLen {
		return false
	}
	switch {
	case stem[:4] == "GOPR" && isDigits(stem[4:]):
		return true
	case stem[:2] == "GP" && isDigits(stem[2:]):
		return true
	case (stem[:2] == "GH" || stem[:2] == "GX") && isChapter(stem[2:4]) && isDigits(stem[4:]):
		return true
	case stem[0] == 'G' && isDigits(stem[1:]):
		return true
	}
	return false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isChapter(s string) bool {
	for i := 0; i < len(s); i++ {
		digit := s[i] >= '0' && s[i] <= '9'
		upper := s[i] >= 'A' && s[i] <= 'Z'
		if !digit && !upper {
			return false
		}
	}
	return true
}

// atoi converts a digit-only string already validated by isDigits.
func atoi(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
