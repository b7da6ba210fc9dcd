package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Detector identifies bot-challenge interstitials in HTML content.
// It checks for the CSS markers and title strings used by common
// anti-bot products (Cloudflare, PerimeterX, DataDome, generic
// captcha walls) rather than attempting to parse the challenge itself.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// challengeTitles are lowercase substrings of <title> text that mark a
// challenge interstitial rather than real content.
var challengeTitles = []string{
	"just a moment",
	"attention required",
	"access denied",
	"checking your browser",
	"verification required",
}

// challengeSelectors are CSS selectors unique to challenge pages.
var challengeSelectors = []string{
	"#challenge-form",
	"#challenge-running",
	"#cf-challenge-running",
	".cf-browser-verification",
	"#px-captcha",
	"#datadome",
	"iframe[src*='captcha']",
	"form[action*='/cdn-cgi/']",
}

// IsChallengePage reports whether the HTML looks like a bot-challenge
// interstitial. Unparseable input is not treated as a challenge.
func (d *Detector) IsChallengePage(html string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false
	}

	title := strings.ToLower(doc.Find("title").First().Text())
	for _, marker := range challengeTitles {
		if strings.Contains(title, marker) {
			return true
		}
	}

	for _, sel := range challengeSelectors {
		if doc.Find(sel).Length() > 0 {
			return true
		}
	}

	// Cloudflare's noscript fallback text survives minification and
	// theming changes better than any class name.
	body := strings.ToLower(doc.Find("body").Text())
	if strings.Contains(body, "enable javascript and cookies to continue") {
		return true
	}

	return false
}
