package soundcloud

import "strings"

var audioExtensions = map[string]string{
	"aac":               "aac",
	"mp4":               "m4a",
	"mpeg":              "mp3",
	"ogg":               "ogg",
	"opus":              "opus",
	"webm":              "webm",
	"wav":               "wav",
	"x-wav":             "wav",
	"wave":              "wav",
	"x-pn-wav":          "wav",
	"vnd.wave":          "wav",
	"flac":              "flac",
	"x-flac":            "flac",
	"amr":               "amr",
	"3gpp":              "3gp",
	"3gpp2":             "3g2",
	"x-ms-wma":          "wma",
	"vnd.rn-realaudio":  "ra",
	"basic":             "au",
	"mpegurl":           "m3u8",
	"x-mpegurl":         "m3u8",
	"vnd.apple.mpegurl": "m3u8",
}

// ConvertMimeTypeToExtension maps an audio MIME type such as
// `audio/mpeg; codecs="mp3"` to a file extension without the dot.
// Unknown or malformed input returns false.
func ConvertMimeTypeToExtension(mimeType string) (string, bool) {
	base, _, _ := strings.Cut(mimeType, ";")
	base = strings.ToLower(strings.TrimSpace(base))

	top, sub, ok := strings.Cut(base, "/")
	if !ok || strings.TrimSpace(top) != "audio" {
		return "", false
	}
	ext, ok := audioExtensions[strings.TrimSpace(sub)]
	return ext, ok
}
