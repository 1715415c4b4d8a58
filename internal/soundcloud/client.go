package soundcloud

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Logger is the logging sink a Client reports through. *log.Logger satisfies it.
type Logger interface {
	Printf(format string, v ...any)
}

// Client talks to the SoundCloud v2 HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	timeout   time.Duration
	log       Logger
}

const (
	defaultBaseURL   = "https://api-v2.soundcloud.com"
	defaultUserAgent = "scfetch/0.1"
	requestTimeout   = 30 * time.Second
)

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client. The client's own
// timeouts then apply in place of the ones set by WithTimeout, except for
// the deadline on JSON lookups.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// WithTimeout bounds connecting, the TLS handshake and waiting for response
// headers. JSON lookups must also finish reading their body within d. Binary
// downloads have no overall deadline once headers arrive and stop only when
// their context is cancelled.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// withBaseURL points the client at another host. Tests only.
func withBaseURL(raw string) Option {
	return func(c *Client) {
		if u, err := url.Parse(raw); err == nil {
			c.baseURL = u
		}
	}
}

// New builds a Client that logs through logger. A nil logger discards output.
func New(logger Logger, opts ...Option) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	base, _ := url.Parse(defaultBaseURL)
	c := &Client{
		baseURL:   base,
		userAgent: defaultUserAgent,
		timeout:   requestTimeout,
		log:       logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = newHTTPClient(c.timeout)
	}
	return c
}

// newHTTPClient leaves http.Client.Timeout unset because it would also cut
// off long body reads.
func newHTTPClient(timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{Timeout: timeout, KeepAlive: 30 * time.Second}).DialContext
	transport.TLSHandshakeTimeout = timeout
	transport.ResponseHeaderTimeout = timeout
	return &http.Client{Transport: transport}
}

// ResolveURL resolves a public soundcloud.com URL and decodes the API
// representation into dest.
func (c *Client) ResolveURL(ctx context.Context, target string, dest any) error {
	values := url.Values{}
	values.Set("url", target)
	rel := &url.URL{Path: "/resolve", RawQuery: values.Encode()}
	return c.getJSON(ctx, "resolve", c.baseURL.ResolveReference(rel).String(), dest)
}

// Resolve resolves target into a freshly allocated T.
func Resolve[T any](ctx context.Context, c *Client, target string) (*T, error) {
	var payload T
	if err := c.ResolveURL(ctx, target, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ResolveTrack resolves a track page URL.
func (c *Client) ResolveTrack(ctx context.Context, target string) (*Track, error) {
	return Resolve[Track](ctx, c, target)
}

// CurrentUser fetches the user the session belongs to.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var payload User
	if err := c.getJSON(ctx, "current user", c.endpoint("/me", nil), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FollowedArtistIDs returns the IDs of the users userID follows.
func (c *Client) FollowedArtistIDs(ctx context.Context, userID int64) ([]int64, error) {
	path := "/users/" + strconv.FormatInt(userID, 10) + "/followings/ids"
	body, err := c.getRaw(ctx, "followed artists", c.endpoint(path, nil))
	if err != nil {
		return nil, err
	}
	collection := gjson.GetBytes(body, "collection")
	if !collection.IsArray() {
		err := unavailable(errors.New("response has no collection"))
		c.log.Printf("followed artists for user %d: %v", userID, err)
		return nil, err
	}
	items := collection.Array()
	ids := make([]int64, 0, len(items))
	for i, item := range items {
		if item.Type != gjson.Number {
			c.log.Printf("followed artists for user %d: skipping non-numeric entry %d: %s", userID, i, item.Raw)
			continue
		}
		ids = append(ids, item.Int())
	}
	return ids, nil
}

// Tracks fetches metadata for ids in one request. Results are matched to the
// requested IDs by their id field; IDs the API leaves out are reported by
// TrackSet.Missing. An empty ids slice returns an empty set without a request.
func (c *Client) Tracks(ctx context.Context, ids []int64) (*TrackSet, error) {
	if len(ids) == 0 {
		return newTrackSet(0), nil
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	values := url.Values{}
	values.Set("ids", strings.Join(parts, ","))

	c.log.Printf("fetching %d tracks", len(ids))
	var payload []Track
	if err := c.getJSON(ctx, "tracks", c.endpoint("/tracks", values), &payload); err != nil {
		return nil, err
	}

	set, err := matchTracks(ids, payload)
	if err != nil {
		c.log.Printf("tracks: %v", err)
		return nil, err
	}
	if missing := set.Missing(); len(missing) > 0 {
		c.log.Printf("tracks: api omitted %d of %d requested ids: %v", len(missing), len(ids), missing)
	}
	return set, nil
}

func matchTracks(ids []int64, tracks []Track) (*TrackSet, error) {
	set := newTrackSet(len(ids))

	keyed := true
	for _, t := range tracks {
		if t.ID == 0 {
			keyed = false
			break
		}
	}

	if keyed {
		byID := make(map[int64]Track, len(tracks))
		for _, t := range tracks {
			byID[t.ID] = t
		}
		for _, id := range ids {
			if t, ok := byID[id]; ok {
				set.add(id, t)
			} else {
				set.missing = append(set.missing, id)
			}
		}
		return set, nil
	}

	if len(tracks) != len(ids) {
		return nil, fmt.Errorf("%w: requested %d ids, got %d unkeyed tracks", ErrTrackMismatch, len(ids), len(tracks))
	}
	for i, id := range ids {
		if got := tracks[i].ID; got != 0 && got != id {
			return nil, fmt.Errorf("%w: position %d holds track %d, want %d", ErrTrackMismatch, i, got, id)
		}
		set.add(id, tracks[i])
	}
	return set, nil
}

// StreamURL resolves a transcoding URL into a playable stream URL. Unlike the
// other lookups, a response without a url field is a *ContractError.
func (c *Client) StreamURL(ctx context.Context, streamURL string) (string, error) {
	body, err := c.getRaw(ctx, "stream url", streamURL)
	if err != nil {
		return "", err
	}
	field := gjson.GetBytes(body, "url")
	if field.Type != gjson.String || strings.TrimSpace(field.String()) == "" {
		err := &ContractError{Op: "stream url", Field: "url"}
		c.log.Printf("%v", err)
		return "", err
	}
	return field.String(), nil
}

// StreamDetails resolves t into a stream location with its file extension.
func (c *Client) StreamDetails(ctx context.Context, t MediaTranscoding) (*StreamDetails, error) {
	streamURL, err := c.StreamURL(ctx, t.URL)
	if err != nil {
		return nil, err
	}
	ext, _ := ConvertMimeTypeToExtension(t.Format.MimeType)
	return &StreamDetails{
		URL:       streamURL,
		Extension: ext,
		HLS:       t.IsHLS(),
	}, nil
}

// OriginalDownloadURL fetches the redirect to a track's uploaded source file.
// A response without redirectUri yields (nil, nil).
func (c *Client) OriginalDownloadURL(ctx context.Context, trackID int64) (*OriginalDownload, error) {
	path := "/tracks/" + strconv.FormatInt(trackID, 10) + "/download"
	body, err := c.getRaw(ctx, "original download", c.endpoint(path, nil))
	if err != nil {
		return nil, err
	}
	field := gjson.GetBytes(body, "redirectUri")
	if field.Type != gjson.String || strings.TrimSpace(field.String()) == "" {
		c.log.Printf("original download for track %d: response has no redirectUri", trackID)
		return nil, nil
	}
	return &OriginalDownload{RedirectURI: field.String()}, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	rel := &url.URL{Path: path}
	if query != nil {
		rel.RawQuery = query.Encode()
	}
	return c.baseURL.ResolveReference(rel).String()
}

func (c *Client) getJSON(ctx context.Context, op, reqURL string, dest any) error {
	body, err := c.getRaw(ctx, op, reqURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		err = unavailable(fmt.Errorf("decode response: %w", err))
		c.log.Printf("%s failed: %v", op, err)
		return err
	}
	return nil
}

// getRaw returns a non-empty, syntactically valid JSON body that is not the
// literal null. The whole exchange, body included, is bounded by c.timeout.
func (c *Client) getRaw(ctx context.Context, op, reqURL string) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.fetch(ctx, reqURL, "application/json")
	if err != nil {
		c.log.Printf("%s failed: %v", op, err)
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		err = unavailable(fmt.Errorf("read response: %w", err))
		c.log.Printf("%s failed: %v", op, err)
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		err = unavailable(errors.New("empty response body"))
		c.log.Printf("%s failed: %v", op, err)
		return nil, err
	}
	if !gjson.ValidBytes(body) {
		err = unavailable(errors.New("decode response: invalid json"))
		c.log.Printf("%s failed: %v", op, err)
		return nil, err
	}
	if gjson.ParseBytes(body).Type == gjson.Null {
		err = unavailable(errors.New("null response body"))
		c.log.Printf("%s failed: %v", op, err)
		return nil, err
	}
	return body, nil
}

// fetch issues a GET and returns the response when the status is 2xx. The
// caller owns the body.
func (c *Client) fetch(ctx context.Context, reqURL, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, unavailable(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, unavailable(fmt.Errorf("execute request: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
		return nil, unavailable(&StatusError{URL: redact(req.URL), StatusCode: resp.StatusCode})
	}
	return resp, nil
}

// redact drops the query string, which may carry signed tokens.
func redact(u *url.URL) string {
	dup := *u
	dup.RawQuery = ""
	return dup.String()
}
