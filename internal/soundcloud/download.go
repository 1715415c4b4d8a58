package soundcloud

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// ProgressFunc receives whole-number download percentages in [0, 100].
// It runs on the goroutine reading the body and must not block.
type ProgressFunc func(percent int)

// DownloadArtwork fetches artwork bytes.
func (c *Client) DownloadArtwork(ctx context.Context, artworkURL string) ([]byte, error) {
	data, _, err := c.download(ctx, "artwork", artworkURL, nil)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// DownloadStream fetches an audio stream and returns it with the response
// headers. When the server reports a Content-Length, progress receives
// non-decreasing percentages that end at 100; otherwise it is never called.
// progress may be nil.
func (c *Client) DownloadStream(ctx context.Context, streamURL string, progress ProgressFunc) ([]byte, http.Header, error) {
	return c.download(ctx, "stream", streamURL, progress)
}

func (c *Client) download(ctx context.Context, op, rawURL string, progress ProgressFunc) ([]byte, http.Header, error) {
	c.log.Printf("downloading %s", op)

	resp, err := c.fetch(ctx, rawURL, "*/*")
	if err != nil {
		c.log.Printf("%s download failed: %v", op, err)
		return nil, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var body io.Reader = resp.Body
	var buf bytes.Buffer
	if total := resp.ContentLength; total > 0 {
		buf.Grow(int(min(total, 64<<20)))
		if progress != nil {
			body = newProgressReader(resp.Body, total, progress)
		}
	}

	if _, err := io.Copy(&buf, body); err != nil {
		err = unavailable(fmt.Errorf("read body: %w", err))
		c.log.Printf("%s download failed: %v", op, err)
		return nil, nil, err
	}
	return buf.Bytes(), resp.Header.Clone(), nil
}

// progressReader counts bytes read and reports percentage changes.
type progressReader struct {
	r      io.Reader
	total  int64
	read   int64
	last   int
	report ProgressFunc
}

func newProgressReader(r io.Reader, total int64, report ProgressFunc) *progressReader {
	pr := &progressReader{r: r, total: total, last: -1, report: report}
	pr.emit()
	return pr
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		p.emit()
	}
	return n, err
}

func (p *progressReader) emit() {
	pct := int(p.read * 100 / p.total)
	if pct > 100 {
		pct = 100
	}
	if pct <= p.last {
		return
	}
	p.last = pct
	p.report(pct)
}
