package mock

import (
	nab "github.com/MikkoParkkola/nab-sub001"
)

var _ nab.Converter = (*Converter)(nil)

// Converter is a mock implementation of nab.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ nab.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of nab.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*nab.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*nab.ExtractResult, error) {
	return e.ExtractFn(html)
}
