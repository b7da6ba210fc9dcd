package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	nab "github.com/MikkoParkkola/nab-sub001"
)

// Compile-time interface verification.
var _ nab.PageCache = (*PageCache)(nil)

// PageCache implements nab.PageCache using SQLite. One row per URL;
// Put replaces any previous conversion of the same URL.
type PageCache struct {
	db *sql.DB
}

// NewPageCache opens (or creates) the page cache at path.
// Use ":memory:" for an in-memory cache.
func NewPageCache(path string) (*PageCache, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}

	schema := `
		CREATE TABLE IF NOT EXISTS pages (
			url TEXT PRIMARY KEY,
			content_type TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL DEFAULT '',
			markdown TEXT NOT NULL,
			page_count INTEGER NOT NULL DEFAULT 0,
			content_hash TEXT NOT NULL DEFAULT '',
			fetched_at TEXT NOT NULL
		);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &PageCache{db: db}, nil
}

// Get retrieves a cached page by URL.
func (c *PageCache) Get(ctx context.Context, url string) (*nab.CachedPage, error) {
	var page nab.CachedPage
	var contentHash, fetchedAt string

	err := c.db.QueryRowContext(ctx, `
		SELECT url, content_type, title, markdown, page_count, content_hash, fetched_at
		FROM pages
		WHERE url = ?
	`, url).Scan(&page.URL, &page.ContentType, &page.Title, &page.Markdown,
		&page.PageCount, &contentHash, &fetchedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nab.Errorf(nab.ENOTFOUND, "page not cached: %s", url)
	}
	if err != nil {
		return nil, err
	}

	// The hash is stored as text: SQLite integers are signed 64-bit and
	// xxhash values use the full unsigned range.
	if _, err := fmt.Sscanf(contentHash, "%d", &page.ContentHash); err != nil {
		return nil, fmt.Errorf("failed to parse content_hash: %w", err)
	}
	page.FetchedAt, err = time.Parse(time.RFC3339, fetchedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fetched_at: %w", err)
	}

	return &page, nil
}

// Put stores or replaces the cached page for its URL.
func (c *PageCache) Put(ctx context.Context, page *nab.CachedPage) error {
	if err := page.Validate(); err != nil {
		return err
	}

	fetchedAt := page.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now().UTC()
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO pages (url, content_type, title, markdown, page_count, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			content_type = excluded.content_type,
			title = excluded.title,
			markdown = excluded.markdown,
			page_count = excluded.page_count,
			content_hash = excluded.content_hash,
			fetched_at = excluded.fetched_at
	`, page.URL, page.ContentType, page.Title, page.Markdown, page.PageCount,
		fmt.Sprintf("%d", page.ContentHash), fetchedAt.Format(time.RFC3339))

	return err
}

// Close closes the underlying database.
func (c *PageCache) Close() error {
	return c.db.Close()
}
