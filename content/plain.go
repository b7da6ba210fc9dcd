package content

import (
	"strings"

	nab "github.com/MikkoParkkola/nab-sub001"
)

// Ensure PlainHandler implements nab.ContentHandler at compile time.
var _ nab.ContentHandler = (*PlainHandler)(nil)

// PlainHandler passes text-like responses through as markdown. It is
// the terminal fallback of the router and therefore never fails:
// arbitrary bytes become a lossy UTF-8 string with invalid sequences
// replaced by the replacement character.
type PlainHandler struct{}

// NewPlainHandler creates a PlainHandler.
func NewPlainHandler() *PlainHandler {
	return &PlainHandler{}
}

// SupportedTypes returns the MIME types this handler accepts.
func (h *PlainHandler) SupportedTypes() []string {
	return []string{
		"text/plain",
		"application/json",
		"text/csv",
		"text/xml",
		"application/xml",
	}
}

// ToMarkdown returns the body as a lossy UTF-8 string.
func (h *PlainHandler) ToMarkdown(data []byte, contentType string) (*nab.ConversionResult, error) {
	return &nab.ConversionResult{
		Markdown: strings.ToValidUTF8(string(data), "�"),
	}, nil
}
