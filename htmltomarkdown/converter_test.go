package htmltomarkdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nab "github.com/MikkoParkkola/nab-sub001"
	"github.com/MikkoParkkola/nab-sub001/htmltomarkdown"
)

// Compile-time verification that Converter implements nab.Converter.
var _ nab.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts headings and paragraphs", func(t *testing.T) {
		t.Parallel()

		c := htmltomarkdown.NewConverter()

		md, err := c.Convert("<html><body><h1>Title</h1><p>Body text</p></body></html>")
		require.NoError(t, err)
		assert.Contains(t, md, "# Title")
		assert.Contains(t, md, "Body text")
	})

	t.Run("converts links", func(t *testing.T) {
		t.Parallel()

		c := htmltomarkdown.NewConverter()

		md, err := c.Convert(`<p><a href="https://example.com">Example</a></p>`)
		require.NoError(t, err)
		assert.Contains(t, md, "[Example](https://example.com)")
	})

	t.Run("converts tables by default", func(t *testing.T) {
		t.Parallel()

		c := htmltomarkdown.NewConverter()

		md, err := c.Convert("<table><tr><th>Name</th></tr><tr><td>Value</td></tr></table>")
		require.NoError(t, err)
		assert.Contains(t, md, "Name")
		assert.Contains(t, md, "Value")
	})

	t.Run("empty input is invalid", func(t *testing.T) {
		t.Parallel()

		c := htmltomarkdown.NewConverter()

		_, err := c.Convert("   \n ")
		require.Error(t, err)
		assert.Equal(t, nab.EINVALID, nab.ErrorCode(err))
	})
}
