// Package trafilatura extracts main content from HTML pages using
// go-trafilatura, removing boilerplate regions (navigation, footers,
// sidebars) ahead of markdown conversion.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"

	nab "github.com/MikkoParkkola/nab-sub001"
)

// Ensure Extractor implements nab.Extractor at compile time.
var _ nab.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	fallback bool
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithoutFallback disables the readability/dom-distiller fallback chain,
// trading recall for speed.
func WithoutFallback() Option {
	return func(e *Extractor) { e.fallback = false }
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{fallback: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract processes raw HTML and returns the main content with its title.
func (e *Extractor) Extract(rawHTML string) (*nab.ExtractResult, error) {
	if rawHTML == "" {
		return nil, nab.Errorf(nab.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: e.fallback,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &nab.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
