// Package htmltomarkdown converts HTML to Markdown using the
// html-to-markdown v2 converter.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	nab "github.com/MikkoParkkola/nab-sub001"
)

// Ensure Converter implements nab.Converter at compile time.
var _ nab.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	tables bool
	conv   *converter.Converter
}

// Option configures a Converter.
type Option func(*Converter)

// WithoutTables disables the table plugin, flattening table markup into
// plain text. Tables are converted by default.
func WithoutTables() Option {
	return func(c *Converter) { c.tables = false }
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{tables: true}
	for _, opt := range opts {
		opt(c)
	}

	plugins := []converter.Plugin{
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
	}
	if c.tables {
		plugins = append(plugins, table.NewTablePlugin())
	}

	c.conv = converter.NewConverter(converter.WithPlugins(plugins...))
	return c
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nab.Errorf(nab.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return result, nil
}
