package content_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nab "github.com/MikkoParkkola/nab-sub001"
	"github.com/MikkoParkkola/nab-sub001/content"
	"github.com/MikkoParkkola/nab-sub001/htmltomarkdown"
	"github.com/MikkoParkkola/nab-sub001/mock"
)

func TestHTMLHandler_ToMarkdown(t *testing.T) {
	t.Parallel()

	t.Run("converts html to markdown", func(t *testing.T) {
		t.Parallel()

		h := content.NewHTMLHandler(htmltomarkdown.NewConverter())

		result, err := h.ToMarkdown([]byte("<h1>Heading</h1><p>Body</p>"), "text/html")
		require.NoError(t, err)
		assert.Contains(t, result.Markdown, "# Heading")
		assert.Contains(t, result.Markdown, "Body")
	})

	t.Run("extractor supplies title and trims the page", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(html string) (*nab.ExtractResult, error) {
				return &nab.ExtractResult{
					Title:       "Main Title",
					ContentHTML: "<p>only the article</p>",
				}, nil
			},
		}
		h := content.NewHTMLHandler(htmltomarkdown.NewConverter(), content.WithExtractor(extractor))

		result, err := h.ToMarkdown([]byte("<nav>menu</nav><p>only the article</p><footer>foot</footer>"), "text/html")
		require.NoError(t, err)
		assert.Equal(t, "Main Title", result.Title)
		assert.Contains(t, result.Markdown, "only the article")
		assert.NotContains(t, result.Markdown, "menu")
	})

	t.Run("extractor failure falls back to the full page", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(html string) (*nab.ExtractResult, error) {
				return nil, errors.New("no main content found")
			},
		}
		h := content.NewHTMLHandler(htmltomarkdown.NewConverter(), content.WithExtractor(extractor))

		result, err := h.ToMarkdown([]byte("<p>whole page body</p>"), "text/html")
		require.NoError(t, err)
		assert.Contains(t, result.Markdown, "whole page body")
	})

	t.Run("converter failure propagates", func(t *testing.T) {
		t.Parallel()

		conv := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return "", errors.New("conversion failed")
			},
		}
		h := content.NewHTMLHandler(conv)

		_, err := h.ToMarkdown([]byte("<p>x</p>"), "text/html")
		assert.Error(t, err)
	})
}

func TestFilterBoilerplate(t *testing.T) {
	t.Parallel()

	t.Run("drops boilerplate lines", func(t *testing.T) {
		t.Parallel()

		in := strings.Join([]string{
			"# Article",
			"",
			"Skip to content",
			"We use cookies to improve your experience.",
			"Read our Privacy Policy and Terms of Service.",
			"© 2025 Example Corp",
			"Copyright Example Corp",
			"|",
			"Real paragraph text.",
		}, "\n")

		out := content.FilterBoilerplate(in)
		assert.Equal(t, "# Article\nReal paragraph text.", out)
	})

	t.Run("keeps link-bearing lines even when boilerplate-like", func(t *testing.T) {
		t.Parallel()

		in := "See the [privacy policy](https://example.com/privacy) for details."
		assert.Equal(t, in, content.FilterBoilerplate(in))
	})

	t.Run("trims whitespace and drops blank lines", func(t *testing.T) {
		t.Parallel()

		out := content.FilterBoilerplate("  first  \n\n\n  second  \n")
		assert.Equal(t, "first\nsecond", out)
	})

	t.Run("short line with alphanumerics survives", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Go", content.FilterBoilerplate("Go"))
	})
}
