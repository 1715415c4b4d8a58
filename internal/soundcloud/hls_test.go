package soundcloud

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"testing"
)

const mediaPlaylist = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-TARGETDURATION:10
#EXT-X-MEDIA-SEQUENCE:0
#EXTINF:10.0,
seg0.mp3
#EXTINF:10.0,
seg1.mp3
#EXTINF:10.0,
seg2.mp3
#EXT-X-ENDLIST
`

func hlsHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/hls/playlist.m3u8", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/vnd.apple.mpegurl")
		_, _ = w.Write([]byte(mediaPlaylist))
	})
	mux.HandleFunc("/hls/master.m3u8", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`#EXTM3U
#EXT-X-STREAM-INF:BANDWIDTH=64000
low.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=128000
playlist.m3u8
`))
	})
	mux.HandleFunc("/hls/low.m3u8", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "low variant should not be chosen", http.StatusTeapot)
	})
	mux.HandleFunc("/hls/encrypted.m3u8", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`#EXTM3U
#EXT-X-VERSION:3
#EXT-X-TARGETDURATION:10
#EXT-X-KEY:METHOD=AES-128,URI="https://keys.example/k"
#EXTINF:10.0,
seg0.mp3
#EXT-X-ENDLIST
`))
	})
	mux.HandleFunc("/hls/seg0.mp3", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("aa")) })
	mux.HandleFunc("/hls/seg1.mp3", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("bb")) })
	mux.HandleFunc("/hls/seg2.mp3", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("cc")) })
	return mux
}

func TestDownloadHLS_ConcatenatesSegmentsInOrder(t *testing.T) {
	t.Parallel()

	c, server, _ := newTestClient(t, hlsHandler())

	var got []int
	data, err := c.DownloadHLS(context.Background(), server.URL+"/hls/playlist.m3u8", func(pct int) {
		got = append(got, pct)
	})
	if err != nil {
		t.Fatalf("DownloadHLS returned error: %v", err)
	}
	if string(data) != "aabbcc" {
		t.Fatalf("DownloadHLS = %q, want aabbcc", data)
	}
	if want := []int{0, 33, 66, 100}; !reflect.DeepEqual(got, want) {
		t.Fatalf("progress = %v, want %v", got, want)
	}
}

func TestDownloadHLS_FollowsHighestBandwidthVariant(t *testing.T) {
	t.Parallel()

	c, server, _ := newTestClient(t, hlsHandler())

	data, err := c.DownloadHLS(context.Background(), server.URL+"/hls/master.m3u8", nil)
	if err != nil {
		t.Fatalf("DownloadHLS returned error: %v", err)
	}
	if string(data) != "aabbcc" {
		t.Fatalf("DownloadHLS = %q, want aabbcc", data)
	}
}

func TestDownloadHLS_Failures(t *testing.T) {
	t.Parallel()

	c, server, _ := newTestClient(t, hlsHandler())

	for _, path := range []string{"/hls/encrypted.m3u8", "/hls/missing.m3u8"} {
		data, err := c.DownloadHLS(context.Background(), server.URL+path, nil)
		if !errors.Is(err, ErrUnavailable) {
			t.Fatalf("DownloadHLS(%s) error = %v, want ErrUnavailable", path, err)
		}
		if data != nil {
			t.Fatalf("DownloadHLS(%s) = %q, want nil", path, data)
		}
	}
}
