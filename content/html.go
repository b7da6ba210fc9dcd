package content

import (
	"strings"
	"unicode"

	nab "github.com/MikkoParkkola/nab-sub001"
)

// Ensure HTMLHandler implements nab.ContentHandler at compile time.
var _ nab.ContentHandler = (*HTMLHandler)(nil)

// HTMLHandler converts HTML responses to markdown. When an extractor
// is configured, the page is first reduced to its main content region;
// the converted markdown is then passed through a line filter that
// strips residual boilerplate.
type HTMLHandler struct {
	extractor nab.Extractor
	converter nab.Converter
}

// HTMLOption configures an HTMLHandler.
type HTMLOption func(*HTMLHandler)

// WithExtractor enables main-content extraction before conversion.
// Extraction failures fall back to converting the full page.
func WithExtractor(e nab.Extractor) HTMLOption {
	return func(h *HTMLHandler) { h.extractor = e }
}

// NewHTMLHandler creates an HTMLHandler around the given converter.
func NewHTMLHandler(c nab.Converter, opts ...HTMLOption) *HTMLHandler {
	h := &HTMLHandler{converter: c}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// SupportedTypes returns the MIME types this handler accepts.
func (h *HTMLHandler) SupportedTypes() []string {
	return []string{"text/html", "application/xhtml+xml"}
}

// ToMarkdown converts an HTML body to filtered markdown.
func (h *HTMLHandler) ToMarkdown(data []byte, contentType string) (*nab.ConversionResult, error) {
	html := string(data)

	var title string
	if h.extractor != nil {
		extracted, err := h.extractor.Extract(html)
		if err == nil && extracted.ContentHTML != "" {
			title = extracted.Title
			html = extracted.ContentHTML
		}
	}

	markdown, err := h.converter.Convert(html)
	if err != nil {
		return nil, err
	}

	return &nab.ConversionResult{
		Markdown: FilterBoilerplate(markdown),
		Title:    title,
	}, nil
}

// boilerplateFragments are lowercase substrings that mark a line as
// navigation or legal chrome rather than content.
var boilerplateFragments = []string{
	"skip to content",
	"cookie",
	"privacy policy",
	"terms of service",
}

// FilterBoilerplate removes blank and boilerplate lines from markdown.
// Lines containing a markdown link are always kept: link-bearing lines
// are content even when they mention cookies or legal pages. Remaining
// lines are trimmed and rejoined with single newlines.
func FilterBoilerplate(markdown string) string {
	var kept []string
	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.Contains(line, "](") {
			kept = append(kept, line)
			continue
		}
		if isBoilerplateLine(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func isBoilerplateLine(line string) bool {
	lower := strings.ToLower(line)
	for _, frag := range boilerplateFragments {
		if strings.Contains(lower, frag) {
			return true
		}
	}
	if strings.HasPrefix(line, "©") || strings.HasPrefix(lower, "copyright") {
		return true
	}
	// Stray separator fragments like "|" or "•" left over from nav bars.
	if len([]rune(line)) < 3 && !containsAlphanumeric(line) {
		return true
	}
	return false
}

func containsAlphanumeric(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
