// Package http provides the fingerprint-aware implementation of
// nab.Fetcher: pooled connections, browser-ordered headers, transparent
// content decoding, and adaptive profile rotation when a site starts
// blocking.
package http

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/time/rate"

	nab "github.com/MikkoParkkola/nab-sub001"
	"github.com/MikkoParkkola/nab-sub001/arena"
)

// DefaultFetchTimeout is the default total timeout for one request.
const DefaultFetchTimeout = 30 * time.Second

// DefaultConnectTimeout is the default TCP connect timeout.
const DefaultConnectTimeout = 10 * time.Second

// DefaultRetryDelays is the backoff schedule between adaptive rotation
// attempts. One retry per entry.
var DefaultRetryDelays = []time.Duration{500 * time.Millisecond, time.Second, 2 * time.Second}

// maxRedirects caps redirect chains, matching browser behavior.
const maxRedirects = 10

// Ensure Client implements nab.Fetcher at compile time.
var _ nab.Fetcher = (*Client)(nil)

// ChallengeDetector identifies bot-challenge interstitials in response
// bodies, so a "successful" 200 serving a challenge page still counts
// as a block.
type ChallengeDetector interface {
	IsChallengePage(html string) bool
}

// Client fetches URLs disguised with a fingerprint profile. A fixed
// client binds one profile for its whole lifetime; an adaptive client
// rotates to a fresh random profile when it detects blocking.
//
// The profile rotation state machine is serialized through a generation
// counter: a fetch that hits a block while holding an already-rotated
// generation joins that rotation instead of burning another profile.
type Client struct {
	gen      nab.ProfileGenerator
	hc       *http.Client
	adaptive bool

	family   nab.Family
	platform nab.Platform

	timeout        time.Duration
	connectTimeout time.Duration
	retryDelays    []time.Duration
	blockStatus    map[int]bool
	detector       ChallengeDetector

	rps   float64
	burst int

	mu         sync.Mutex
	profile    nab.Profile
	generation uint64
	limiters   map[string]*rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the total per-request timeout.
// Defaults to DefaultFetchTimeout (30s).
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithConnectTimeout sets the TCP connect timeout.
// Defaults to DefaultConnectTimeout (10s).
func WithConnectTimeout(d time.Duration) Option {
	return func(c *Client) { c.connectTimeout = d }
}

// WithProfile pins the fixed client to a specific family and platform
// instead of a random draw. Has no effect on adaptive clients.
func WithProfile(family nab.Family, platform nab.Platform) Option {
	return func(c *Client) {
		c.family = family
		c.platform = platform
	}
}

// WithRetryDelays replaces the adaptive backoff schedule. The number of
// delays bounds the number of rotation retries.
func WithRetryDelays(delays ...time.Duration) Option {
	return func(c *Client) { c.retryDelays = delays }
}

// WithBlockStatuses adds status codes to the block-like set.
// 403 and 429 are always block-like.
func WithBlockStatuses(codes ...int) Option {
	return func(c *Client) {
		for _, code := range codes {
			c.blockStatus[code] = true
		}
	}
}

// WithChallengeDetector enables body inspection for challenge
// interstitials on HTML responses.
func WithChallengeDetector(d ChallengeDetector) Option {
	return func(c *Client) { c.detector = d }
}

// WithRateLimit throttles requests per host to rps with the given
// burst. Disabled by default.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		c.rps = rps
		c.burst = burst
	}
}

// NewClient creates a fixed-profile client. The profile is drawn on the
// first fetch: a random one, or the family/platform set via WithProfile.
func NewClient(gen nab.ProfileGenerator, opts ...Option) *Client {
	return newClient(gen, false, opts)
}

// NewAdaptiveClient creates a client that starts from a random profile
// and rotates on detected blocks.
func NewAdaptiveClient(gen nab.ProfileGenerator, opts ...Option) *Client {
	return newClient(gen, true, opts)
}

func newClient(gen nab.ProfileGenerator, adaptive bool, opts []Option) *Client {
	c := &Client{
		gen:            gen,
		adaptive:       adaptive,
		timeout:        DefaultFetchTimeout,
		connectTimeout: DefaultConnectTimeout,
		retryDelays:    DefaultRetryDelays,
		blockStatus:    map[int]bool{http.StatusForbidden: true, http.StatusTooManyRequests: true},
		limiters:       make(map[string]*rate.Limiter),
	}
	for _, opt := range opts {
		opt(c)
	}

	// cookiejar.New with default options cannot fail.
	jar, _ := cookiejar.New(nil)

	c.hc = &http.Client{
		Timeout: c.timeout,
		Jar:     jar,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   c.connectTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			ForceAttemptHTTP2:   true,
			MaxIdleConns:        64,
			MaxIdleConnsPerHost: 8,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: c.connectTimeout,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}

	return c
}

// Fetch retrieves the URL with the active profile's headers. Transport
// failures return an error; non-2xx responses are returned as responses.
// An adaptive client rotates and retries on block-like responses; when
// the retry budget is exhausted it returns the last blocked response
// together with an EBLOCKED error.
func (c *Client) Fetch(ctx context.Context, url string) (*nab.Response, error) {
	profile, generation, err := c.activeProfile(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, url, profile)
	if err != nil || !c.adaptive {
		return resp, err
	}

	for attempt := 0; c.blockLike(resp); attempt++ {
		if attempt >= len(c.retryDelays) {
			return resp, nab.Errorf(nab.EBLOCKED,
				"blocked after %d attempts: HTTP %d for %s", attempt+1, resp.StatusCode, url)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.retryDelays[attempt]):
		}

		profile, generation, err = c.rotate(ctx, generation)
		if err != nil {
			return nil, err
		}

		resp, err = c.do(ctx, url, profile)
		if err != nil {
			return nil, err
		}
	}

	return resp, nil
}

// FetchText fetches the URL and returns the decoded body as a string.
// Non-2xx responses are an error here, since the caller asked for
// content rather than a response to inspect.
func (c *Client) FetchText(ctx context.Context, url string) (string, error) {
	resp, err := c.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	if !resp.OK() {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	return string(resp.Body), nil
}

// Profile returns the currently active profile. For an adaptive client
// this reflects completed rotations.
func (c *Client) Profile(ctx context.Context) (nab.Profile, error) {
	p, _, err := c.activeProfile(ctx)
	return p, err
}

// Close releases pooled connections.
func (c *Client) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}

// activeProfile returns the current profile and its generation, drawing
// the initial profile on first use.
func (c *Client) activeProfile(ctx context.Context) (nab.Profile, uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generation == 0 {
		var p nab.Profile
		var err error
		if !c.adaptive && c.family != "" {
			p, err = c.gen.ProfileFor(ctx, c.family, c.platform)
		} else {
			p, err = c.gen.RandomProfile(ctx)
		}
		if err != nil {
			return nab.Profile{}, 0, err
		}
		c.profile = p
		c.generation = 1
	}

	return c.profile, c.generation, nil
}

// rotate swaps in a fresh random profile, unless another fetch already
// rotated past the caller's generation, in which case the caller joins
// that rotation and reuses its profile.
func (c *Client) rotate(ctx context.Context, generation uint64) (nab.Profile, uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generation != generation {
		return c.profile, c.generation, nil
	}

	p, err := c.gen.RandomProfile(ctx)
	if err != nil {
		return nab.Profile{}, 0, err
	}
	c.profile = p
	c.generation++
	return c.profile, c.generation, nil
}

// blockLike reports whether the response indicates blocking: a
// block-like status code, or a challenge interstitial in an HTML body.
func (c *Client) blockLike(resp *nab.Response) bool {
	if c.blockStatus[resp.StatusCode] {
		return true
	}
	if c.detector != nil && strings.Contains(strings.ToLower(resp.ContentType), "html") {
		return c.detector.IsChallengePage(string(resp.Body))
	}
	return false
}

// do executes one GET with the given profile and assembles the decoded
// body through a per-request arena. The per-host rate limit applies
// here so that adaptive retries are throttled like first attempts.
func (c *Client) do(ctx context.Context, url string, profile nab.Profile) (*nab.Response, error) {
	if err := c.waitHost(ctx, url); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	// Direct map writes keep the browser's exact header casing;
	// Header.Set would canonicalize Sec-CH-UA into Sec-Ch-Ua.
	for _, h := range profile.Headers() {
		req.Header[h.Name] = []string{h.Value}
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// Setting Accept-Encoding by hand disables the transport's
	// transparent gzip, so all advertised encodings are decoded here.
	reader, err := decodeBody(resp.Body, resp.Header.Get("Content-Encoding"))
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	body, err := readAll(reader)
	if err != nil {
		return nil, err
	}

	return &nab.Response{
		StatusCode:  resp.StatusCode,
		Proto:       resp.Proto,
		ContentType: resp.Header.Get("Content-Type"),
		Header:      resp.Header,
		Body:        body,
	}, nil
}

// readAll accumulates the body through an arena buffer, so a chunked
// response costs one committed copy instead of repeated reallocation.
func readAll(r io.Reader) ([]byte, error) {
	a := arena.New()
	buf := arena.NewBuffer(a)

	chunk := make([]byte, 32*1024)
	for {
		n, err := r.Read(chunk)
		if n > 0 {
			buf.Push(chunk[:n])
		}
		if err == io.EOF {
			return buf.Bytes(), nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// decodeBody wraps r with the decoder for the declared Content-Encoding.
func decodeBody(r io.ReadCloser, encoding string) (io.ReadCloser, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "identity":
		return r, nil
	case "gzip":
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr, nil
	case "deflate":
		return flate.NewReader(r), nil
	case "br":
		return io.NopCloser(brotli.NewReader(r)), nil
	case "zstd":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", encoding)
	}
}

// waitHost applies the per-host rate limit, blocking until a slot is
// available or the context is done.
func (c *Client) waitHost(ctx context.Context, rawURL string) error {
	if c.rps <= 0 {
		return nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}

	c.mu.Lock()
	limiter, ok := c.limiters[u.Host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(c.rps), c.burst)
		c.limiters[u.Host] = limiter
	}
	c.mu.Unlock()

	return limiter.Wait(ctx)
}
