package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	nab "github.com/MikkoParkkola/nab-sub001"
)

// Official release feeds. The all-platforms Chrome endpoint returns 8-10
// versions where the macOS-only one returns 2.
const (
	DefaultChromeFeedURL  = "https://versionhistory.googleapis.com/v1/chrome/platforms/all/channels/stable/versions"
	DefaultFirefoxFeedURL = "https://product-details.mozilla.org/1.0/firefox_versions.json"
)

// firefoxSynthCount is how many trailing majors to synthesize from the
// latest Firefox release for rotation diversity.
const firefoxSynthCount = 6

// DefaultFeedRetryDelays returns the backoff delays between feed fetch
// attempts: 50ms, 200ms, 800ms.
func DefaultFeedRetryDelays() []time.Duration {
	return []time.Duration{50 * time.Millisecond, 200 * time.Millisecond, 800 * time.Millisecond}
}

// Feeds fetches fresh version data from the official browser release APIs.
type Feeds struct {
	client     *http.Client
	chromeURL  string
	firefoxURL string
	delays     []time.Duration
}

// FeedOption configures Feeds.
type FeedOption func(*Feeds)

// WithHTTPClient sets the HTTP client used for feed fetches.
func WithHTTPClient(client *http.Client) FeedOption {
	return func(f *Feeds) { f.client = client }
}

// WithChromeURL overrides the Chrome version feed URL.
func WithChromeURL(url string) FeedOption {
	return func(f *Feeds) { f.chromeURL = url }
}

// WithFirefoxURL overrides the Firefox version feed URL.
func WithFirefoxURL(url string) FeedOption {
	return func(f *Feeds) { f.firefoxURL = url }
}

// WithRetryDelays overrides the backoff delays between fetch attempts.
func WithRetryDelays(delays []time.Duration) FeedOption {
	return func(f *Feeds) { f.delays = delays }
}

// NewFeeds creates Feeds pointed at the official release APIs.
func NewFeeds(opts ...FeedOption) *Feeds {
	f := &Feeds{
		client:     &http.Client{Timeout: 10 * time.Second},
		chromeURL:  DefaultChromeFeedURL,
		firefoxURL: DefaultFirefoxFeedURL,
		delays:     DefaultFeedRetryDelays(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Chrome fetches stable Chrome versions, deduplicated by major and sorted
// newest-first. Full patch versions are kept for authenticity.
func (f *Feeds) Chrome(ctx context.Context) ([]nab.VersionEntry, error) {
	var payload struct {
		Versions []struct {
			Version string `json:"version"`
		} `json:"versions"`
	}
	if err := f.fetchJSON(ctx, f.chromeURL, &payload); err != nil {
		return nil, err
	}
	if len(payload.Versions) == 0 {
		return nil, nab.Errorf(nab.EUNAVAILABLE, "chrome feed returned no versions")
	}

	entries := make([]nab.VersionEntry, 0, len(payload.Versions))
	for _, v := range payload.Versions {
		major, _, _ := strings.Cut(v.Version, ".")
		if major == "" {
			continue
		}
		entries = append(entries, nab.VersionEntry{Major: major, Full: v.Version})
	}
	if len(entries) == 0 {
		return nil, nab.Errorf(nab.EUNAVAILABLE, "chrome feed returned no parseable versions")
	}

	return mergeEntries(entries, nil), nil
}

// Firefox fetches the latest Firefox release and synthesizes the trailing
// majors, matching Mozilla's single-latest-version feed shape.
func (f *Feeds) Firefox(ctx context.Context) ([]nab.VersionEntry, error) {
	var payload struct {
		Latest string `json:"LATEST_FIREFOX_VERSION"`
	}
	if err := f.fetchJSON(ctx, f.firefoxURL, &payload); err != nil {
		return nil, err
	}

	majorStr, _, _ := strings.Cut(payload.Latest, ".")
	latest, err := strconv.Atoi(majorStr)
	if err != nil || latest <= 0 {
		return nil, nab.Errorf(nab.EUNAVAILABLE, "firefox feed version %q unparseable", payload.Latest)
	}

	entries := make([]nab.VersionEntry, 0, firefoxSynthCount)
	for i := 0; i < firefoxSynthCount && latest-i > 0; i++ {
		major := strconv.Itoa(latest - i)
		entries = append(entries, nab.VersionEntry{Major: major, Full: major + ".0"})
	}
	return entries, nil
}

// fetchJSON retrieves and decodes a feed with bounded retries. Delays come
// from the configured slice; the context aborts waits between attempts.
func (f *Feeds) fetchJSON(ctx context.Context, url string, out any) error {
	maxAttempts := len(f.delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(f.delays[attempt-1]):
			}
		}

		lastErr = f.fetchOnce(ctx, url, out)
		if lastErr == nil {
			return nil
		}
	}
	return lastErr
}

func (f *Feeds) fetchOnce(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("feed %s: HTTP %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}
