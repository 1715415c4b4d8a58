package app

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/five82/scfetch/internal/config"
	"github.com/five82/scfetch/internal/soundcloud"
	"github.com/five82/scfetch/internal/state"
)

// Transfer names shown in the UI.
const (
	transferAudio   = "audio"
	transferArtwork = "artwork"
)

const artworkSize = "t500x500"

// ErrNoTranscoding is returned when a track offers nothing playable.
var ErrNoTranscoding = errors.New("no playable transcoding")

// Fetcher is the subset of *soundcloud.Client the app drives.
type Fetcher interface {
	ResolveTrack(ctx context.Context, target string) (*soundcloud.Track, error)
	CurrentUser(ctx context.Context) (*soundcloud.User, error)
	FollowedArtistIDs(ctx context.Context, userID int64) ([]int64, error)
	Tracks(ctx context.Context, ids []int64) (*soundcloud.TrackSet, error)
	OriginalDownloadURL(ctx context.Context, trackID int64) (*soundcloud.OriginalDownload, error)
	StreamDetails(ctx context.Context, t soundcloud.MediaTranscoding) (*soundcloud.StreamDetails, error)
	DownloadStream(ctx context.Context, streamURL string, progress soundcloud.ProgressFunc) ([]byte, http.Header, error)
	DownloadHLS(ctx context.Context, playlistURL string, progress soundcloud.ProgressFunc) ([]byte, error)
	DownloadArtwork(ctx context.Context, artworkURL string) ([]byte, error)
}

// Result describes the files written for one track.
type Result struct {
	Track       soundcloud.Track
	AudioPath   string
	ArtworkPath string
}

// Downloader saves a track's audio and artwork into the output directory.
type Downloader struct {
	Fetcher Fetcher
	Config  config.Config
	Store   *state.Store
	Log     soundcloud.Logger
}

// Download resolves target and writes "<user> - <title>.<ext>" plus a .jpg
// cover next to it. The cover is the track artwork or, without one, the
// uploader's avatar. Audio and artwork download concurrently. Artwork
// failures are recorded in the store but do not fail the download.
func (d *Downloader) Download(ctx context.Context, target string) (Result, error) {
	track, err := d.Fetcher.ResolveTrack(ctx, target)
	if err != nil {
		return Result{}, fmt.Errorf("resolve %s: %w", target, err)
	}
	res := Result{Track: *track}

	name := displayName(*track)
	d.Store.SetTitle(name)
	base := filepath.Join(d.Config.OutputDir, fileBase(*track))
	if err := os.MkdirAll(d.Config.OutputDir, 0o755); err != nil {
		return res, fmt.Errorf("create output dir: %w", err)
	}

	d.Store.Start(transferAudio)
	artworkURL := track.CoverURL(artworkSize)
	if artworkURL != "" {
		d.Store.Start(transferArtwork)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		progress := func(pct int) { d.Store.Progress(transferAudio, pct) }
		data, ext, err := d.fetchAudio(gctx, *track, progress)
		if err == nil {
			res.AudioPath = base + "." + ext
			err = writeFile(res.AudioPath, data)
		}
		d.Store.Finish(transferAudio, len(data), err)
		return err
	})
	if artworkURL != "" {
		g.Go(func() error {
			data, err := d.Fetcher.DownloadArtwork(gctx, artworkURL)
			if err == nil {
				res.ArtworkPath = base + ".jpg"
				err = writeFile(res.ArtworkPath, data)
			}
			d.Store.Finish(transferArtwork, len(data), err)
			if err != nil {
				res.ArtworkPath = ""
				d.Log.Printf("artwork for track %d skipped: %v", track.ID, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return res, err
	}
	d.Log.Printf("saved track %d to %s", track.ID, res.AudioPath)
	return res, nil
}

// fetchAudio returns the audio bytes and the file extension to save them
// under. The uploader's original file wins when configured and allowed;
// otherwise the best transcoding for the configured quality is used.
func (d *Downloader) fetchAudio(ctx context.Context, track soundcloud.Track, progress soundcloud.ProgressFunc) ([]byte, string, error) {
	if d.Config.PreferOriginal && track.CanDownloadOriginal() {
		orig, err := d.Fetcher.OriginalDownloadURL(ctx, track.ID)
		switch {
		case err != nil:
			d.Log.Printf("original download for track %d unavailable, using stream: %v", track.ID, err)
		case orig == nil:
			d.Log.Printf("original download for track %d has no location, using stream", track.ID)
		default:
			data, header, err := d.Fetcher.DownloadStream(ctx, orig.RedirectURI, progress)
			if err != nil {
				return nil, "", fmt.Errorf("download original: %w", err)
			}
			return data, originalExtension(header, data), nil
		}
	}

	tc, ok := track.Media.Select(d.Config.Quality)
	if !ok {
		return nil, "", fmt.Errorf("track %d: %w", track.ID, ErrNoTranscoding)
	}
	details, err := d.Fetcher.StreamDetails(ctx, tc)
	if err != nil {
		return nil, "", fmt.Errorf("stream details: %w", err)
	}

	var data []byte
	if details.HLS {
		data, err = d.Fetcher.DownloadHLS(ctx, details.URL, progress)
	} else {
		data, _, err = d.Fetcher.DownloadStream(ctx, details.URL, progress)
	}
	if err != nil {
		return nil, "", fmt.Errorf("download stream: %w", err)
	}

	// A playlist MIME type describes the transport, not the joined segments.
	ext := details.Extension
	if ext == "" || ext == "m3u8" {
		ext = sniffOr(data, "bin")
	}
	return data, ext, nil
}

// originalExtension picks an extension for an uploader's source file from
// its Content-Type, then its Content-Disposition filename, then its bytes.
func originalExtension(header http.Header, data []byte) string {
	if ext, ok := soundcloud.ConvertMimeTypeToExtension(header.Get("Content-Type")); ok {
		return ext
	}
	if _, params, err := mime.ParseMediaType(header.Get("Content-Disposition")); err == nil {
		if ext := strings.TrimPrefix(filepath.Ext(params["filename"]), "."); ext != "" {
			return strings.ToLower(ext)
		}
	}
	return sniffOr(data, "bin")
}

func sniffOr(data []byte, fallback string) string {
	if ext, ok := soundcloud.SniffExtension(data); ok {
		return ext
	}
	return fallback
}

func writeFile(path string, data []byte) error {
	tmp := path + ".part"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func displayName(t soundcloud.Track) string {
	user := strings.TrimSpace(t.User.Username)
	title := strings.TrimSpace(t.Title)
	switch {
	case user != "" && title != "":
		return user + " - " + title
	case title != "":
		return title
	default:
		return fmt.Sprintf("track %d", t.ID)
	}
}

// fileBase turns a track into a file name without extension that is safe on
// common filesystems.
func fileBase(t soundcloud.Track) string {
	var b strings.Builder
	for _, r := range displayName(t) {
		switch {
		case r < 0x20 || r == 0x7f:
			continue
		case strings.ContainsRune(`/\:*?"<>|`, r):
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	name := strings.Trim(b.String(), " .")
	if runes := []rune(name); len(runes) > maxNameRunes {
		name = strings.TrimRight(string(runes[:maxNameRunes]), " .")
	}
	if name == "" {
		return fmt.Sprintf("track-%d", t.ID)
	}
	return name
}

const maxNameRunes = 200
