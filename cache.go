package nab

import (
	"context"
	"time"
)

// CachedPage is a converted page stored in a PageCache.
type CachedPage struct {
	URL         string
	ContentType string
	Title       string
	Markdown    string
	PageCount   int
	ContentHash uint64
	FetchedAt   time.Time
}

// Validate returns an error if the page contains invalid fields.
func (p *CachedPage) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "cached page URL required")
	}
	if p.Markdown == "" {
		return Errorf(EINVALID, "cached page markdown required")
	}
	return nil
}

// PageCache stores converted pages so repeat fetches can skip both the
// network and the conversion pass.
type PageCache interface {
	// Get retrieves a cached page by URL.
	// Returns ENOTFOUND if the URL has not been cached.
	Get(ctx context.Context, url string) (*CachedPage, error)

	// Put stores or replaces the cached page for its URL.
	Put(ctx context.Context, page *CachedPage) error

	// Close releases the underlying store.
	Close() error
}
