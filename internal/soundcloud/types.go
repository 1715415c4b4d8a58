package soundcloud

import (
	"iter"
	"strings"
)

// Quality is the transcoding tier reported by the API.
type Quality string

const (
	QualitySQ Quality = "sq"
	QualityHQ Quality = "hq"
)

// Valid reports whether q is one of the known tiers.
func (q Quality) Valid() bool {
	return q == QualitySQ || q == QualityHQ
}

// Protocol is the delivery protocol of a transcoding.
type Protocol string

const (
	ProtocolProgressive Protocol = "progressive"
	ProtocolHLS         Protocol = "hls"
)

// User mirrors the user object embedded in tracks and returned by /me.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	AvatarURL    string `json:"avatar_url"`
	PermalinkURL string `json:"permalink_url"`
}

// MediaTranscodingFormat describes how a transcoding is delivered.
type MediaTranscodingFormat struct {
	Protocol Protocol `json:"protocol"`
	MimeType string   `json:"mime_type"`
}

// MediaTranscoding is one encoded rendition of a track.
type MediaTranscoding struct {
	Snipped bool                   `json:"snipped"`
	Quality Quality                `json:"quality"`
	URL     string                 `json:"url"`
	Format  MediaTranscodingFormat `json:"format"`
}

// IsHLS reports whether the transcoding is a segmented playlist stream.
func (t MediaTranscoding) IsHLS() bool {
	return t.Format.Protocol == ProtocolHLS
}

// Media groups the transcodings available for a track.
type Media struct {
	Transcodings []MediaTranscoding `json:"transcodings"`
}

// Select returns the best full-length transcoding for the wanted quality.
// Progressive streams win over HLS at the same quality; a transcoding of the
// other quality is used when the wanted one is missing. Snipped previews are
// never selected.
func (m Media) Select(want Quality) (MediaTranscoding, bool) {
	best := -1
	bestScore := -1
	for i, t := range m.Transcodings {
		if t.Snipped || strings.TrimSpace(t.URL) == "" {
			continue
		}
		score := 0
		if t.Quality == want {
			score += 2
		}
		if t.Format.Protocol == ProtocolProgressive {
			score++
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return MediaTranscoding{}, false
	}
	return m.Transcodings[best], true
}

// Track mirrors the track payload.
type Track struct {
	ID               int64  `json:"id"`
	Duration         int64  `json:"duration"`
	DisplayDate      string `json:"display_date"`
	Kind             string `json:"kind"`
	State            string `json:"state"`
	Title            string `json:"title"`
	ArtworkURL       string `json:"artwork_url"`
	Streamable       bool   `json:"streamable"`
	Downloadable     bool   `json:"downloadable"`
	HasDownloadsLeft bool   `json:"has_downloads_left"`
	User             User   `json:"user"`
	Media            Media  `json:"media"`
	PermalinkURL     string `json:"permalink_url"`
}

// ArtworkURLSize swaps the default "-large" artwork variant for the given
// size label (for example "t500x500" or "original"). URLs without the
// "-large." marker are returned unchanged.
func (t Track) ArtworkURLSize(size string) string {
	return imageSize(t.ArtworkURL, size)
}

// CoverURL is ArtworkURLSize, falling back to the uploader's avatar when the
// track has no artwork of its own.
func (t Track) CoverURL(size string) string {
	if strings.TrimSpace(t.ArtworkURL) != "" {
		return t.ArtworkURLSize(size)
	}
	return imageSize(t.User.AvatarURL, size)
}

func imageSize(raw, size string) string {
	size = strings.TrimSpace(size)
	if size == "" || !strings.Contains(raw, "-large.") {
		return raw
	}
	idx := strings.LastIndex(raw, "-large.")
	return raw[:idx] + "-" + size + raw[idx+len("-large"):]
}

// CanDownloadOriginal reports whether the uploader allows fetching the source file.
func (t Track) CanDownloadOriginal() bool {
	return t.Downloadable && t.HasDownloadsLeft
}

// StreamDetails is the resolved playback location for a transcoding.
type StreamDetails struct {
	URL       string
	Extension string // empty when the MIME type is not recognised
	HLS       bool
}

// OriginalDownload holds the redirect to the uploaded source file.
type OriginalDownload struct {
	RedirectURI string `json:"redirectUri"`
}

// TrackSet maps requested track IDs to tracks, iterating in request order.
type TrackSet struct {
	order   []int64
	byID    map[int64]Track
	missing []int64
}

func newTrackSet(capacity int) *TrackSet {
	return &TrackSet{byID: make(map[int64]Track, capacity)}
}

func (s *TrackSet) add(id int64, track Track) {
	if _, ok := s.byID[id]; ok {
		return
	}
	s.order = append(s.order, id)
	s.byID[id] = track
}

// Len returns the number of tracks in the set.
func (s *TrackSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Get returns the track for id.
func (s *TrackSet) Get(id int64) (Track, bool) {
	if s == nil {
		return Track{}, false
	}
	t, ok := s.byID[id]
	return t, ok
}

// IDs returns the IDs present in the set, in request order.
func (s *TrackSet) IDs() []int64 {
	if s == nil || len(s.order) == 0 {
		return nil
	}
	out := make([]int64, len(s.order))
	copy(out, s.order)
	return out
}

// Missing returns requested IDs the API did not return.
func (s *TrackSet) Missing() []int64 {
	if s == nil || len(s.missing) == 0 {
		return nil
	}
	out := make([]int64, len(s.missing))
	copy(out, s.missing)
	return out
}

// All iterates the set in request order.
func (s *TrackSet) All() iter.Seq2[int64, Track] {
	return func(yield func(int64, Track) bool) {
		if s == nil {
			return
		}
		for _, id := range s.order {
			if !yield(id, s.byID[id]) {
				return
			}
		}
	}
}
