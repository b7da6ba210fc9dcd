package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	nab "github.com/MikkoParkkola/nab-sub001"
	"github.com/MikkoParkkola/nab-sub001/bloom"
)

// defaultWarmWorkers bounds concurrent warm-up requests.
const defaultWarmWorkers = 4

// PrefetchManager warms connections to hosts ahead of real fetches, so
// the first content request skips DNS, TCP and TLS setup. Warmed hosts
// are tracked in a Bloom-backed set; a false positive only skips a
// redundant warm-up.
type PrefetchManager struct {
	client  *http.Client
	hosts   *bloom.HostSet
	workers int
}

// PrefetchOption configures a PrefetchManager.
type PrefetchOption func(*PrefetchManager)

// WithWarmWorkers sets the concurrent warm-up limit for PreconnectMany.
// Defaults to 4.
func WithWarmWorkers(n int) PrefetchOption {
	return func(m *PrefetchManager) { m.workers = n }
}

// NewPrefetchManager creates a PrefetchManager. The warm-up requests go
// through the given HTTP client so they share its connection pool; nil
// uses http.DefaultClient.
func NewPrefetchManager(client *http.Client, opts ...PrefetchOption) *PrefetchManager {
	if client == nil {
		client = http.DefaultClient
	}
	m := &PrefetchManager{
		client:  client,
		hosts:   bloom.NewHostSet(4096, 0.01),
		workers: defaultWarmWorkers,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Preconnect HEAD-warms a connection to the host once. Repeat calls for
// a warmed host are no-ops. Any HTTP status counts as warmed; the point
// is the established connection, not the response.
func (m *PrefetchManager) Preconnect(ctx context.Context, host string) error {
	if m.hosts.Warmed(host) {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, "https://"+host+"/", nil)
	if err != nil {
		return err
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("warming %s: %w", host, err)
	}
	resp.Body.Close()

	m.hosts.Mark(host)
	return nil
}

// PreconnectMany warms all hosts concurrently, bounded by the worker
// limit. The first failure cancels outstanding warm-ups.
func (m *PrefetchManager) PreconnectMany(ctx context.Context, hosts []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)

	for _, host := range hosts {
		g.Go(func() error {
			return m.Preconnect(ctx, host)
		})
	}

	return g.Wait()
}

// ParseEarlyHints extracts resource hints from Link header values, as
// sent in 103 Early Hints responses or regular Link headers. Each value
// may carry several comma-separated entries of the form
// <url>; rel=preconnect. Entries with other rel values are skipped.
func ParseEarlyHints(linkValues []string) []nab.LinkHint {
	var hints []nab.LinkHint
	for _, value := range linkValues {
		for _, entry := range strings.Split(value, ",") {
			if hint, ok := parseLinkEntry(entry); ok {
				hints = append(hints, hint)
			}
		}
	}
	return hints
}

func parseLinkEntry(entry string) (nab.LinkHint, bool) {
	parts := strings.Split(entry, ";")

	target := strings.TrimSpace(parts[0])
	if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
		return nab.LinkHint{}, false
	}
	target = target[1 : len(target)-1]
	if target == "" {
		return nab.LinkHint{}, false
	}

	for _, param := range parts[1:] {
		key, val, ok := strings.Cut(strings.TrimSpace(param), "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "rel") {
			continue
		}
		rel := strings.ToLower(strings.Trim(strings.TrimSpace(val), `"`))
		switch rel {
		case "preload", "preconnect", "dns-prefetch":
			return nab.LinkHint{Rel: rel, URL: target}, true
		}
	}

	return nab.LinkHint{}, false
}
