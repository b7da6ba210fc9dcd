package mock

import (
	nab "github.com/MikkoParkkola/nab-sub001"
)

var _ nab.DocumentExtractor = (*DocumentExtractor)(nil)

// DocumentExtractor is a mock implementation of nab.DocumentExtractor.
type DocumentExtractor struct {
	TypesFn   func() []string
	ExtractFn func(data []byte) (*nab.ExtractedDocument, error)
}

func (e *DocumentExtractor) Types() []string {
	return e.TypesFn()
}

func (e *DocumentExtractor) Extract(data []byte) (*nab.ExtractedDocument, error) {
	return e.ExtractFn(data)
}
