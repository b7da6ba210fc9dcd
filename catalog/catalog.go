// Package catalog maintains the browser version catalog: an XDG-cached
// JSON file refreshed from official release feeds, with a bundled
// last-known-good fallback so lookups never fail the caller.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/adrg/xdg"
	"golang.org/x/sync/singleflight"

	nab "github.com/MikkoParkkola/nab-sub001"
)

// Ensure Service implements nab.VersionService at compile time.
var _ nab.VersionService = (*Service)(nil)

// keepMajors caps how many distinct major versions are retained per family.
const keepMajors = 8

// Service loads, refreshes, and persists the browser version catalog.
//
// Readers share an immutable snapshot through an atomic pointer; refresh
// replaces the whole snapshot so no reader observes a partial update.
// Concurrent initializers collapse to a single refresh attempt.
type Service struct {
	path  string
	feeds *Feeds
	now   func() time.Time

	current atomic.Pointer[nab.BrowserVersions]
	group   singleflight.Group
}

// Option configures a Service.
type Option func(*Service)

// WithPath overrides the cache file location.
// Defaults to the XDG config path nab/versions.json.
func WithPath(path string) Option {
	return func(s *Service) { s.path = path }
}

// WithFeeds overrides the version feeds, typically with feeds pointed at
// test servers.
func WithFeeds(feeds *Feeds) Option {
	return func(s *Service) { s.feeds = feeds }
}

// WithClock overrides the time source for staleness checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a catalog Service.
func NewService(opts ...Option) (*Service, error) {
	s := &Service{
		feeds: NewFeeds(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.path == "" {
		path, err := xdg.ConfigFile(filepath.Join("nab", "versions.json"))
		if err != nil {
			return nil, fmt.Errorf("resolve catalog cache path: %w", err)
		}
		s.path = path
	}

	return s, nil
}

// Versions returns the current catalog snapshot, refreshing it when the
// freshness window has elapsed. Refresh failures fall back to cached data
// and, when nothing is cached, to the bundled default set; this path never
// returns an error for refresh problems.
func (s *Service) Versions(ctx context.Context) (*nab.BrowserVersions, error) {
	if cur := s.current.Load(); cur != nil && !cur.Stale(s.now()) {
		return cur, nil
	}

	v, _, _ := s.group.Do("refresh", func() (any, error) {
		// Re-check under the flight: a concurrent caller may have
		// completed the refresh while this one waited.
		if cur := s.current.Load(); cur != nil && !cur.Stale(s.now()) {
			return cur, nil
		}
		return s.loadOrUpdate(ctx), nil
	})

	return v.(*nab.BrowserVersions), nil
}

// loadOrUpdate implements the fallback ladder: fresh cache file as-is,
// otherwise refresh merged over cache (or the bundled defaults), otherwise
// whatever base data was available.
func (s *Service) loadOrUpdate(ctx context.Context) *nab.BrowserVersions {
	now := s.now()

	cached, err := s.loadFile()
	if err == nil && cached.Validate() == nil && !cached.Stale(now) {
		s.current.Store(cached)
		return cached
	}

	base := cached
	if base == nil || base.Validate() != nil {
		base = Defaults(now)
	}

	updated, err := s.refresh(ctx, base)
	if err != nil {
		s.current.Store(base)
		return base
	}

	// Persist best-effort; a write failure must not fail the caller.
	_ = s.saveFile(updated)

	s.current.Store(updated)
	return updated
}

// refresh fetches fresh Chrome and Firefox versions and merges them over
// the base catalog. Safari has no reliable feed, so its entries and check
// timestamp are carried over unchanged. A family whose feed fails keeps
// its base entries; refresh errors only when every feed failed.
func (s *Service) refresh(ctx context.Context, base *nab.BrowserVersions) (*nab.BrowserVersions, error) {
	now := s.now()
	var failed int

	chrome, err := s.feeds.Chrome(ctx)
	if err != nil {
		chrome = base.Chrome
		failed++
	}

	firefox, err := s.feeds.Firefox(ctx)
	if err != nil {
		firefox = base.Firefox
		failed++
	}

	if failed == 2 {
		return nil, nab.Errorf(nab.EUNAVAILABLE, "all version feeds unreachable")
	}

	return &nab.BrowserVersions{
		LastUpdated:       now,
		SafariLastChecked: base.SafariLastChecked,
		Chrome:            mergeEntries(chrome, base.Chrome),
		Firefox:           mergeEntries(firefox, base.Firefox),
		Safari:            base.Safari,
	}, nil
}

// mergeEntries prepends fresh entries to existing ones, deduplicates by
// major, and keeps the list sorted newest-first.
func mergeEntries(fresh, existing []nab.VersionEntry) []nab.VersionEntry {
	seen := make(map[string]bool, len(fresh)+len(existing))
	merged := make([]nab.VersionEntry, 0, len(fresh)+len(existing))

	for _, e := range append(append([]nab.VersionEntry{}, fresh...), existing...) {
		if e.Major == "" || seen[e.Major] {
			continue
		}
		seen[e.Major] = true
		merged = append(merged, e)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return majorValue(merged[i].Major) > majorValue(merged[j].Major)
	})

	if len(merged) > keepMajors {
		merged = merged[:keepMajors]
	}
	return merged
}

// majorValue parses a major version for sorting. Safari majors are
// dotted ("18.2"), so parse the leading integer part.
func majorValue(major string) float64 {
	if v, err := strconv.ParseFloat(major, 64); err == nil {
		return v
	}
	return 0
}

func (s *Service) loadFile() (*nab.BrowserVersions, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	var v nab.BrowserVersions
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// saveFile persists the catalog atomically: write to a temp file in the
// same directory, then rename over the destination.
func (s *Service) saveFile(v *nab.BrowserVersions) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".versions-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), s.path)
}
