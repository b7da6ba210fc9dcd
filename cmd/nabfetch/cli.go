package main

import (
	"fmt"
	"io"
	"time"

	nab "github.com/MikkoParkkola/nab-sub001"
	"github.com/MikkoParkkola/nab-sub001/content"
	"github.com/MikkoParkkola/nab-sub001/htmltomarkdown"
	"github.com/MikkoParkkola/nab-sub001/http"
	"github.com/MikkoParkkola/nab-sub001/trafilatura"
)

// CLI defines the command-line interface.
type CLI struct {
	URL string `arg:"" help:"URL to fetch and convert."`

	Adaptive    bool          `help:"Rotate to a fresh fingerprint when the site starts blocking."`
	Family      string        `help:"Pin the browser family (chrome, firefox, safari)."`
	Platform    string        `help:"Pin the platform (macos, windows, linux). Requires --family."`
	ShowProfile bool          `help:"Print the active fingerprint headers to stderr."`
	Prefetch    bool          `help:"Warm connections to hosts discovered in the site's sitemap."`
	Cache       string        `help:"Path to a SQLite page cache; cached pages skip fetch and conversion." type:"path"`
	Timeout     time.Duration `help:"Total per-request timeout." default:"30s"`
	Verbose     bool          `help:"Log fetches and catalog refreshes to stderr."`
}

// Validate checks flag combinations kong cannot express.
func (c *CLI) Validate() error {
	if c.Family != "" && !nab.Family(c.Family).Valid() {
		return fmt.Errorf("unknown family %q (chrome, firefox, safari)", c.Family)
	}
	if c.Platform != "" && !nab.Platform(c.Platform).Valid() {
		return fmt.Errorf("unknown platform %q (macos, windows, linux)", c.Platform)
	}
	if c.Platform != "" && c.Family == "" {
		return fmt.Errorf("--platform requires --family")
	}
	if c.Family != "" && c.Platform == "" {
		return fmt.Errorf("--family requires --platform")
	}
	if c.Family != "" && c.Adaptive {
		return fmt.Errorf("--family pins a profile and cannot be combined with --adaptive")
	}
	return nil
}

// Dependencies holds the wired services for command execution.
type Dependencies struct {
	Stdout io.Writer
	Stderr io.Writer

	Client  *http.Client
	Fetcher nab.Fetcher
	Router  *content.Router
	Cache   nab.PageCache
}

// newRouter builds the content pipeline: main-content extraction,
// markdown conversion, and the plain-text fallback.
func newRouter() *content.Router {
	html := content.NewHTMLHandler(
		htmltomarkdown.NewConverter(),
		content.WithExtractor(trafilatura.NewExtractor()),
	)
	return content.NewRouter(html, content.NewPlainHandler())
}
