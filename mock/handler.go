package mock

import (
	nab "github.com/MikkoParkkola/nab-sub001"
)

var _ nab.ContentHandler = (*ContentHandler)(nil)

// ContentHandler is a mock implementation of nab.ContentHandler.
type ContentHandler struct {
	SupportedTypesFn func() []string
	ToMarkdownFn     func(data []byte, contentType string) (*nab.ConversionResult, error)
}

func (h *ContentHandler) SupportedTypes() []string {
	return h.SupportedTypesFn()
}

func (h *ContentHandler) ToMarkdown(data []byte, contentType string) (*nab.ConversionResult, error) {
	return h.ToMarkdownFn(data, contentType)
}
