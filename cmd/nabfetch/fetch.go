package main

import (
	"context"
	"fmt"
	"time"

	nab "github.com/MikkoParkkola/nab-sub001"
	nabhttp "github.com/MikkoParkkola/nab-sub001/http"
)

// Run executes the fetch: cache lookup, optional warm-up, fetch,
// convert, and print.
func (c *CLI) Run(ctx context.Context, deps *Dependencies) error {
	if deps.Cache != nil {
		if page, err := deps.Cache.Get(ctx, c.URL); err == nil {
			fmt.Fprintln(deps.Stdout, page.Markdown)
			return nil
		} else if nab.ErrorCode(err) != nab.ENOTFOUND {
			return err
		}
	}

	if c.Prefetch {
		c.warmUp(ctx, deps)
	}

	if c.ShowProfile {
		profile, err := deps.Client.Profile(ctx)
		if err != nil {
			return err
		}
		for _, h := range profile.Headers() {
			fmt.Fprintf(deps.Stderr, "%s: %s\n", h.Name, h.Value)
		}
	}

	resp, err := deps.Fetcher.Fetch(ctx, c.URL)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return fmt.Errorf("HTTP %d for %s", resp.StatusCode, c.URL)
	}

	result, err := deps.Router.Convert(resp.Body, resp.ContentType)
	if err != nil {
		return fmt.Errorf("conversion failed: %s", nab.ErrorMessage(err))
	}

	if deps.Cache != nil {
		page := &nab.CachedPage{
			URL:         c.URL,
			ContentType: result.ContentType,
			Title:       result.Title,
			Markdown:    result.Markdown,
			PageCount:   result.PageCount,
			ContentHash: result.ContentHash,
			FetchedAt:   time.Now().UTC(),
		}
		if err := deps.Cache.Put(ctx, page); err != nil {
			fmt.Fprintf(deps.Stderr, "warning: failed to cache page: %v\n", err)
		}
	}

	fmt.Fprintln(deps.Stdout, result.Markdown)
	return nil
}

// warmUp discovers sitemap seeds and preconnects to their hosts.
// Warm-up is best effort; failures never abort the fetch.
func (c *CLI) warmUp(ctx context.Context, deps *Dependencies) {
	seeds, err := nabhttp.SitemapSeeds(ctx, deps.Fetcher, c.URL, 32)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "warning: sitemap discovery failed: %v\n", err)
		return
	}

	hosts := hostsOf(append(seeds, c.URL))
	m := nabhttp.NewPrefetchManager(nil)
	if err := m.PreconnectMany(ctx, hosts); err != nil {
		fmt.Fprintf(deps.Stderr, "warning: warm-up incomplete: %v\n", err)
	}
}
