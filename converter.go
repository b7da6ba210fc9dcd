package nab

import "time"

// ConversionResult is the output of converting response bytes to markdown.
type ConversionResult struct {
	// Markdown is the converted content.
	Markdown string

	// Title is the page title when the source format carries one.
	Title string

	// PageCount is the number of pages for paginated source formats.
	// Zero for formats without pagination.
	PageCount int

	// ContentType is the original declared content type, as provided.
	ContentType string

	// Elapsed is conversion-only timing; network time is excluded.
	Elapsed time.Duration

	// ContentHash is an xxhash of Markdown, for change detection.
	ContentHash uint64
}

// ContentHandler converts response bytes of specific MIME types to
// markdown. Implementations are stateless and safe for concurrent use.
type ContentHandler interface {
	// SupportedTypes returns the exact-match MIME types this handler
	// accepts. No wildcard matching.
	SupportedTypes() []string

	// ToMarkdown converts raw response bytes to markdown. contentType is
	// the full Content-Type header value and may include parameters.
	ToMarkdown(data []byte, contentType string) (*ConversionResult, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	Convert(html string) (string, error)
}

// ExtractResult holds the main content extracted from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML with boilerplate
	// regions (nav, footer, sidebar, ads) removed.
	ContentHTML string
}

// Extractor extracts main content from HTML pages, removing boilerplate
// regions ahead of markdown conversion.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// ExtractedDocument is the result of extracting a structured, paginated
// document format (e.g. PDF).
type ExtractedDocument struct {
	Title string
	Pages []string
}

// DocumentExtractor extracts text from structured, paginated binary
// formats. Concrete implementations typically shell out to external
// tooling; the core pipeline and its tests depend only on this interface.
type DocumentExtractor interface {
	// Types returns the exact MIME types the extractor understands.
	Types() []string

	// Extract parses the document bytes. Corrupt input returns an error.
	Extract(data []byte) (*ExtractedDocument, error)
}
