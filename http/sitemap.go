package http

import (
	"context"
	"fmt"
	"net/url"

	"github.com/beevik/etree"

	nab "github.com/MikkoParkkola/nab-sub001"
)

// SitemapSeeds discovers warm-up seed URLs from a site's /sitemap.xml.
// Sitemap index files are followed one level deep. Results are
// deduplicated in document order and capped at limit (limit <= 0 means
// no cap). The sitemap is fetched through the given Fetcher so the
// request carries the same fingerprint as real fetches.
func SitemapSeeds(ctx context.Context, fetcher nab.Fetcher, baseURL string, limit int) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	base.Path = "/sitemap.xml"
	base.RawQuery = ""
	base.Fragment = ""

	resp, err := fetcher.Fetch(ctx, base.String())
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, nab.Errorf(nab.ENOTFOUND, "no sitemap at %s (HTTP %d)", base.String(), resp.StatusCode)
	}

	seen := make(map[string]bool)
	var seeds []string

	add := func(locs []string) {
		for _, loc := range locs {
			if loc == "" || seen[loc] {
				continue
			}
			seen[loc] = true
			seeds = append(seeds, loc)
		}
	}

	pages, children, err := parseSitemap(resp.Body)
	if err != nil {
		return nil, err
	}
	add(pages)

	for _, child := range children {
		if limit > 0 && len(seeds) >= limit {
			break
		}
		childResp, err := fetcher.Fetch(ctx, child)
		if err != nil || !childResp.OK() {
			continue
		}
		childPages, _, err := parseSitemap(childResp.Body)
		if err != nil {
			continue
		}
		add(childPages)
	}

	if limit > 0 && len(seeds) > limit {
		seeds = seeds[:limit]
	}
	return seeds, nil
}

// parseSitemap extracts page URLs from a urlset document and child
// sitemap URLs from a sitemapindex document.
func parseSitemap(data []byte) (pages, children []string, err error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, nil, fmt.Errorf("parsing sitemap: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, nil, fmt.Errorf("parsing sitemap: empty document")
	}

	switch root.Tag {
	case "urlset":
		for _, el := range root.SelectElements("url") {
			if loc := el.SelectElement("loc"); loc != nil {
				pages = append(pages, loc.Text())
			}
		}
	case "sitemapindex":
		for _, el := range root.SelectElements("sitemap") {
			if loc := el.SelectElement("loc"); loc != nil {
				children = append(children, loc.Text())
			}
		}
	default:
		return nil, nil, fmt.Errorf("parsing sitemap: unexpected root element %q", root.Tag)
	}

	return pages, children, nil
}
