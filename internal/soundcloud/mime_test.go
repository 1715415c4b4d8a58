package soundcloud

import "testing"

func TestConvertMimeTypeToExtension_KnownTypes(t *testing.T) {
	cases := map[string]string{
		"audio/aac":               "aac",
		"audio/mp4":               "m4a",
		"audio/mpeg":              "mp3",
		"audio/ogg":               "ogg",
		"audio/opus":              "opus",
		"audio/webm":              "webm",
		"audio/wav":               "wav",
		"audio/x-wav":             "wav",
		"audio/wave":              "wav",
		"audio/x-pn-wav":          "wav",
		"audio/vnd.wave":          "wav",
		"audio/flac":              "flac",
		"audio/x-flac":            "flac",
		"audio/amr":               "amr",
		"audio/3gpp":              "3gp",
		"audio/3gpp2":             "3g2",
		"audio/x-ms-wma":          "wma",
		"audio/vnd.rn-realaudio":  "ra",
		"audio/basic":             "au",
		"audio/mpegurl":           "m3u8",
		"audio/x-mpegurl":         "m3u8",
		"audio/vnd.apple.mpegurl": "m3u8",
	}
	for mime, want := range cases {
		for _, variant := range []string{
			mime,
			"  " + mime + "  ",
			toUpperASCII(mime),
			mime + `; codecs="opus"`,
			toUpperASCII(mime) + ";charset=binary",
		} {
			got, ok := ConvertMimeTypeToExtension(variant)
			if !ok || got != want {
				t.Fatalf("ConvertMimeTypeToExtension(%q) = %q, %v, want %q", variant, got, ok, want)
			}
		}
	}
}

func TestConvertMimeTypeToExtension_Unknown(t *testing.T) {
	for _, mime := range []string{
		"",
		"   ",
		";",
		"audio",
		"audio/",
		"audio/midi",
		"video/mp4",
		"application/ogg",
		"application/x-mpegurl",
		"mpeg",
		"/mpeg",
	} {
		if got, ok := ConvertMimeTypeToExtension(mime); ok || got != "" {
			t.Fatalf("ConvertMimeTypeToExtension(%q) = %q, %v, want unknown", mime, got, ok)
		}
	}
}

func toUpperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}
