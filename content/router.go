// Package content routes fetched response bytes to the right
// markdown conversion handler based on the declared content type.
package content

import (
	"bytes"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	nab "github.com/MikkoParkkola/nab-sub001"
)

// Router dispatches response bytes to content handlers. Handlers are
// consulted in priority order: documents first, then HTML, then plain
// text, so the most structured interpretation of a type wins. The
// router holds no mutable state and is safe for concurrent use.
type Router struct {
	document nab.ContentHandler
	html     nab.ContentHandler
	plain    nab.ContentHandler
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithDocumentHandler adds a handler for structured document formats
// (e.g. PDF). It takes priority over the HTML and plain handlers for
// the types it declares.
func WithDocumentHandler(h nab.ContentHandler) RouterOption {
	return func(r *Router) { r.document = h }
}

// NewRouter creates a Router over the given HTML and plain-text
// handlers. The plain handler is the terminal fallback and must accept
// any input.
func NewRouter(html, plain nab.ContentHandler, opts ...RouterOption) *Router {
	r := &Router{html: html, plain: plain}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// htmlPrefixes mark bodies that are almost certainly HTML even when
// the server declared some other (or no) content type.
var htmlPrefixes = [][]byte{
	[]byte("<!"),
	[]byte("<html"),
	[]byte("<HTML"),
}

// Convert converts data to markdown. contentType is the raw
// Content-Type header value; parameters after the first ';' are
// ignored for matching but the original value is preserved on the
// result. Elapsed covers conversion only and ContentHash is an xxhash
// of the produced markdown.
func (r *Router) Convert(data []byte, contentType string) (*nab.ConversionResult, error) {
	start := time.Now()

	result, err := r.pick(data, contentType).ToMarkdown(data, contentType)
	if err != nil {
		return nil, err
	}

	result.ContentType = contentType
	result.Elapsed = time.Since(start)
	result.ContentHash = xxhash.Sum64String(result.Markdown)
	return result, nil
}

// pick selects the handler for the given body and declared type.
func (r *Router) pick(data []byte, contentType string) nab.ContentHandler {
	mediaType := NormalizeMediaType(contentType)

	for _, h := range []nab.ContentHandler{r.document, r.html, r.plain} {
		if h == nil {
			continue
		}
		for _, t := range h.SupportedTypes() {
			if t == mediaType {
				return h
			}
		}
	}

	if looksLikeHTML(data) {
		return r.html
	}
	return r.plain
}

// NormalizeMediaType reduces a Content-Type header value to its bare
// media type: parameters after the first ';' are dropped and the
// remainder is trimmed and lowercased.
func NormalizeMediaType(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}

func looksLikeHTML(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	for _, p := range htmlPrefixes {
		if bytes.HasPrefix(trimmed, p) {
			return true
		}
	}
	return false
}
