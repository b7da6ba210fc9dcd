package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	nab "github.com/MikkoParkkola/nab-sub001"
)

// hintRels are the <link> rel values that describe resources worth
// warming ahead of navigation.
var hintRels = map[string]bool{
	"preload":      true,
	"preconnect":   true,
	"dns-prefetch": true,
}

// ExtractLinkHints collects preload, preconnect and dns-prefetch
// <link> elements from an HTML document. Elements without an href and
// rel values outside the hint set are skipped. Document order is
// preserved.
func ExtractLinkHints(html string) []nab.LinkHint {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var hints []nab.LinkHint
	doc.Find("link[rel]").Each(func(_ int, s *goquery.Selection) {
		rel := strings.ToLower(strings.TrimSpace(s.AttrOr("rel", "")))
		if !hintRels[rel] {
			return
		}
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" {
			return
		}
		hints = append(hints, nab.LinkHint{Rel: rel, URL: href})
	})
	return hints
}
