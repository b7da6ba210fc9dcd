package content

import (
	"strings"

	nab "github.com/MikkoParkkola/nab-sub001"
)

// Ensure DocumentHandler implements nab.ContentHandler at compile time.
var _ nab.ContentHandler = (*DocumentHandler)(nil)

// pageSeparator joins extracted document pages as a markdown thematic
// break so page boundaries survive into the output.
const pageSeparator = "\n\n---\n\n"

// DocumentHandler converts structured, paginated formats (PDF and the
// like) through an injected document extractor. The handler declares
// whatever MIME types its extractor understands.
type DocumentHandler struct {
	extractor nab.DocumentExtractor
}

// NewDocumentHandler creates a DocumentHandler around the extractor.
func NewDocumentHandler(e nab.DocumentExtractor) *DocumentHandler {
	return &DocumentHandler{extractor: e}
}

// SupportedTypes returns the extractor's MIME types.
func (h *DocumentHandler) SupportedTypes() []string {
	return h.extractor.Types()
}

// ToMarkdown extracts the document's pages and joins them with page
// separators. Corrupt input surfaces as ECONVERSION.
func (h *DocumentHandler) ToMarkdown(data []byte, contentType string) (*nab.ConversionResult, error) {
	doc, err := h.extractor.Extract(data)
	if err != nil {
		return nil, nab.Errorf(nab.ECONVERSION, "extracting document: %v", err)
	}

	return &nab.ConversionResult{
		Markdown:  strings.Join(doc.Pages, pageSeparator),
		Title:     doc.Title,
		PageCount: len(doc.Pages),
	}, nil
}
