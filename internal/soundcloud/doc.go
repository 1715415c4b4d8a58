// Package soundcloud provides a thin HTTP client for the SoundCloud v2 API.
//
// # Overview
//
// The client resolves public URLs, fetches user and track metadata, maps
// audio MIME types to file extensions, and downloads artwork and audio with
// optional progress reporting. Each method is one request/response round trip
// (HLS downloads are one playlist request followed by one request per
// segment).
//
// # Architecture
//
//   - client.go: JSON lookups and the shared request helpers
//   - download.go: binary downloads with progress reporting
//   - hls.go: segmented playlist downloads
//   - mime.go, sniff.go: file extension detection
//   - types.go: data structures mirroring the API schema
//   - errors.go: error kinds
//
// # Client Usage
//
//	logger := log.New(os.Stderr, "soundcloud ", log.LstdFlags)
//	client := soundcloud.New(logger)
//
//	track, err := client.ResolveTrack(ctx, "https://soundcloud.com/artist/song")
//	if err != nil {
//		return err
//	}
//
//	t, ok := track.Media.Select(soundcloud.QualityHQ)
//	if !ok {
//		return errors.New("no transcoding")
//	}
//	details, err := client.StreamDetails(ctx, t)
//	if err != nil {
//		return err
//	}
//	audio, header, err := client.DownloadStream(ctx, details.URL, func(pct int) {
//		fmt.Printf("\r%3d%%", pct)
//	})
//
// # API Endpoints
//
// The base endpoint is fixed to https://api-v2.soundcloud.com:
//
//   - GET /resolve?url=<url>: resolve a public page URL
//   - GET /me: the current user
//   - GET /users/{id}/followings/ids: followed user IDs
//   - GET /tracks?ids=<csv>: batch track metadata
//   - GET /tracks/{id}/download: redirect to the original upload
//
// Stream resolution, artwork, and audio URLs are absolute and supplied by
// earlier responses.
//
// # Error Handling
//
// Ordinary failures never panic and always return a nil result with an
// error wrapping ErrUnavailable. This covers network errors, non-2xx
// statuses (*StatusError), empty bodies, malformed JSON, and a followings
// response without a collection. Every failure is also written to the
// client's Logger.
//
// StreamURL is the one operation with a contract error: a successful
// response lacking a url field returns *ContractError, which matches
// ErrContract and not ErrUnavailable.
//
// OriginalDownloadURL treats a missing redirectUri as "no original
// available" and returns (nil, nil) after logging it.
//
// # Batch Track Lookup
//
// Tracks indexes the response by each track's id, so response ordering does
// not matter. IDs the API leaves out are listed by TrackSet.Missing. If the
// response elements carry no ids, results are aligned by position and the
// lengths must match, otherwise the error wraps ErrTrackMismatch.
//
// # Progress Reporting
//
// DownloadStream reports integer percentages when the response carries a
// Content-Length. Values never decrease, duplicates are suppressed, and the
// last value is 100. Without a length the callback is never invoked.
// Callbacks run on the reading goroutine.
//
// # Thread Safety
//
// A Client is safe for concurrent use. Requests share nothing but the
// underlying http.Client and the Logger.
package soundcloud
