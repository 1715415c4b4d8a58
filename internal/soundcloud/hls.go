package soundcloud

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/grafov/m3u8"
)

// DownloadHLS fetches every segment of an HLS media playlist in order and
// returns the concatenated payload. A master playlist is followed to its
// highest-bandwidth variant. progress, when non-nil, receives the share of
// segments completed. Encrypted playlists are rejected.
func (c *Client) DownloadHLS(ctx context.Context, playlistURL string, progress ProgressFunc) ([]byte, error) {
	c.log.Printf("downloading hls playlist")

	segments, err := c.hlsSegments(ctx, playlistURL, 1)
	if err != nil {
		c.log.Printf("hls download failed: %v", err)
		return nil, err
	}
	if len(segments) == 0 {
		err := unavailable(errors.New("playlist has no segments"))
		c.log.Printf("hls download failed: %v", err)
		return nil, err
	}

	if progress != nil {
		progress(0)
	}
	var buf bytes.Buffer
	last := 0
	for i, seg := range segments {
		if err := c.appendBody(ctx, seg, &buf); err != nil {
			c.log.Printf("hls segment %d/%d failed: %v", i+1, len(segments), err)
			return nil, err
		}
		if progress != nil {
			if pct := (i + 1) * 100 / len(segments); pct > last {
				last = pct
				progress(pct)
			}
		}
	}
	return buf.Bytes(), nil
}

// hlsSegments returns absolute segment URLs for playlistURL, following at
// most depth master playlist hops.
func (c *Client) hlsSegments(ctx context.Context, playlistURL string, depth int) ([]string, error) {
	base, err := url.Parse(playlistURL)
	if err != nil {
		return nil, unavailable(fmt.Errorf("parse playlist url: %w", err))
	}

	resp, err := c.fetch(ctx, playlistURL, "application/vnd.apple.mpegurl, */*")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	playlist, listType, err := m3u8.DecodeFrom(resp.Body, true)
	if err != nil {
		return nil, unavailable(fmt.Errorf("decode playlist: %w", err))
	}

	switch listType {
	case m3u8.MASTER:
		if depth <= 0 {
			return nil, unavailable(errors.New("nested master playlists"))
		}
		master := playlist.(*m3u8.MasterPlaylist)
		var best *m3u8.Variant
		for _, v := range master.Variants {
			if v == nil || strings.TrimSpace(v.URI) == "" {
				continue
			}
			if best == nil || v.Bandwidth > best.Bandwidth {
				best = v
			}
		}
		if best == nil {
			return nil, unavailable(errors.New("master playlist has no variants"))
		}
		next, err := base.Parse(best.URI)
		if err != nil {
			return nil, unavailable(fmt.Errorf("parse variant uri: %w", err))
		}
		return c.hlsSegments(ctx, next.String(), depth-1)
	case m3u8.MEDIA:
		media := playlist.(*m3u8.MediaPlaylist)
		if encrypted(media.Key) {
			return nil, unavailable(errors.New("encrypted playlists are not supported"))
		}
		var out []string
		for _, seg := range media.Segments {
			if seg == nil {
				continue
			}
			if encrypted(seg.Key) {
				return nil, unavailable(errors.New("encrypted playlists are not supported"))
			}
			u, err := base.Parse(seg.URI)
			if err != nil {
				return nil, unavailable(fmt.Errorf("parse segment uri: %w", err))
			}
			out = append(out, u.String())
		}
		return out, nil
	default:
		return nil, unavailable(errors.New("unknown playlist type"))
	}
}

func encrypted(key *m3u8.Key) bool {
	return key != nil && key.Method != "" && !strings.EqualFold(key.Method, "NONE")
}

func (c *Client) appendBody(ctx context.Context, rawURL string, dst *bytes.Buffer) error {
	resp, err := c.fetch(ctx, rawURL, "*/*")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if _, err := io.Copy(dst, resp.Body); err != nil {
		return unavailable(fmt.Errorf("read body: %w", err))
	}
	return nil
}
