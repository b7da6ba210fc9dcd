package content_test

import (
	"errors"
	"testing"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nab "github.com/MikkoParkkola/nab-sub001"
	"github.com/MikkoParkkola/nab-sub001/content"
	"github.com/MikkoParkkola/nab-sub001/mock"
)

// echoHandler builds a mock handler that tags its output so tests can
// see which handler the router picked.
func echoHandler(tag string, types ...string) *mock.ContentHandler {
	return &mock.ContentHandler{
		SupportedTypesFn: func() []string { return types },
		ToMarkdownFn: func(data []byte, contentType string) (*nab.ConversionResult, error) {
			return &nab.ConversionResult{Markdown: tag + ":" + string(data)}, nil
		},
	}
}

func TestRouter_Convert(t *testing.T) {
	t.Parallel()

	html := echoHandler("html", "text/html", "application/xhtml+xml")
	plain := echoHandler("plain", "text/plain", "application/json")

	t.Run("routes by exact media type", func(t *testing.T) {
		t.Parallel()

		r := content.NewRouter(html, plain)

		result, err := r.Convert([]byte("{}"), "application/json")
		require.NoError(t, err)
		assert.Equal(t, "plain:{}", result.Markdown)
	})

	t.Run("parameters do not affect routing", func(t *testing.T) {
		t.Parallel()

		r := content.NewRouter(html, plain)

		bare, err := r.Convert([]byte("<p>x</p>"), "text/html")
		require.NoError(t, err)
		withParams, err := r.Convert([]byte("<p>x</p>"), "text/html; charset=utf-8")
		require.NoError(t, err)
		upper, err := r.Convert([]byte("<p>x</p>"), " TEXT/HTML ; charset=ISO-8859-1")
		require.NoError(t, err)

		assert.Equal(t, bare.Markdown, withParams.Markdown)
		assert.Equal(t, bare.Markdown, upper.Markdown)
	})

	t.Run("document handler wins for its types", func(t *testing.T) {
		t.Parallel()

		doc := echoHandler("doc", "application/pdf")
		r := content.NewRouter(html, plain, content.WithDocumentHandler(doc))

		result, err := r.Convert([]byte("%PDF"), "application/pdf")
		require.NoError(t, err)
		assert.Equal(t, "doc:%PDF", result.Markdown)
	})

	t.Run("unknown type with html prefix falls back to html handler", func(t *testing.T) {
		t.Parallel()

		r := content.NewRouter(html, plain)

		for _, body := range []string{
			"<!DOCTYPE html><p>a</p>",
			"<html><body>a</body></html>",
			"<HTML><BODY>a</BODY></HTML>",
			"\n  <!DOCTYPE html>",
		} {
			result, err := r.Convert([]byte(body), "application/octet-stream")
			require.NoError(t, err)
			assert.Equal(t, "html:"+body, result.Markdown)
		}
	})

	t.Run("unknown type without html prefix falls back to plain", func(t *testing.T) {
		t.Parallel()

		r := content.NewRouter(html, plain)

		result, err := r.Convert([]byte("col1,col2\n1,2"), "application/octet-stream")
		require.NoError(t, err)
		assert.Equal(t, "plain:col1,col2\n1,2", result.Markdown)
	})

	t.Run("sets content type, hash and elapsed", func(t *testing.T) {
		t.Parallel()

		r := content.NewRouter(html, plain)

		result, err := r.Convert([]byte("hello"), "text/plain; charset=utf-8")
		require.NoError(t, err)
		assert.Equal(t, "text/plain; charset=utf-8", result.ContentType)
		assert.Equal(t, xxhash.Sum64String(result.Markdown), result.ContentHash)
		assert.GreaterOrEqual(t, result.Elapsed, time.Duration(0))
	})

	t.Run("handler error propagates", func(t *testing.T) {
		t.Parallel()

		failing := &mock.ContentHandler{
			SupportedTypesFn: func() []string { return []string{"text/html"} },
			ToMarkdownFn: func(data []byte, contentType string) (*nab.ConversionResult, error) {
				return nil, errors.New("boom")
			},
		}
		r := content.NewRouter(failing, plain)

		_, err := r.Convert([]byte("<p>x</p>"), "text/html")
		assert.Error(t, err)
	})
}

func TestNormalizeMediaType(t *testing.T) {
	t.Parallel()

	for raw, want := range map[string]string{
		"text/html":                       "text/html",
		"text/html; charset=utf-8":        "text/html",
		"  TEXT/HTML ;charset=ISO-8859-1": "text/html",
		"":                                "",
		";charset=utf-8":                  "",
	} {
		assert.Equal(t, want, content.NormalizeMediaType(raw), "raw=%q", raw)
	}
}
