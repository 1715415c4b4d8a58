package soundcloud

import (
	"bytes"

	"github.com/dhowden/tag"
)

// SniffExtension guesses a file extension from the container signature of
// data. It is a fallback for transcodings whose MIME type is unrecognised.
func SniffExtension(data []byte) (string, bool) {
	format, fileType, err := tag.Identify(bytes.NewReader(data))
	if err != nil {
		return "", false
	}
	switch fileType {
	case tag.MP3:
		return "mp3", true
	case tag.FLAC:
		return "flac", true
	case tag.OGG:
		return "ogg", true
	case tag.M4A, tag.M4B, tag.M4P, tag.ALAC:
		return "m4a", true
	case tag.DSF:
		return "dsf", true
	}
	if format == tag.MP4 {
		return "m4a", true
	}
	return "", false
}
