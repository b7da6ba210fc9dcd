package nab

import "context"

// Family identifies a browser family tracked by the version catalog.
type Family string

// Browser families supported by the profile generator.
const (
	FamilyChrome  Family = "chrome"
	FamilyFirefox Family = "firefox"
	FamilySafari  Family = "safari"
)

// Valid reports whether the family is one the generator knows how to build.
func (f Family) Valid() bool {
	switch f {
	case FamilyChrome, FamilyFirefox, FamilySafari:
		return true
	}
	return false
}

// IsChromium reports whether the family emits client-hint headers.
// Only Chromium-based browsers send the Sec-CH-UA family; emitting them for
// Firefox or Safari would itself be a detectable inconsistency.
func (f Family) IsChromium() bool {
	return f == FamilyChrome
}

// Platform identifies an operating system used in user-agent strings.
type Platform string

// Platforms supported by the profile generator.
const (
	PlatformMacOS   Platform = "macos"
	PlatformWindows Platform = "windows"
	PlatformLinux   Platform = "linux"
)

// Valid reports whether the platform is a known value.
func (p Platform) Valid() bool {
	switch p {
	case PlatformMacOS, PlatformWindows, PlatformLinux:
		return true
	}
	return false
}

// OSString returns the canonical OS description embedded in user-agent
// strings for this platform.
func (p Platform) OSString() string {
	switch p {
	case PlatformMacOS:
		return "Macintosh; Intel Mac OS X 10_15_7"
	case PlatformWindows:
		return "Windows NT 10.0; Win64; x64"
	case PlatformLinux:
		return "X11; Linux x86_64"
	}
	return ""
}

// SecCHPlatform returns the quoted Sec-CH-UA-Platform value for this
// platform.
func (p Platform) SecCHPlatform() string {
	switch p {
	case PlatformMacOS:
		return `"macOS"`
	case PlatformWindows:
		return `"Windows"`
	case PlatformLinux:
		return `"Linux"`
	}
	return ""
}

// Profile is a mutually consistent set of HTTP header values designed to
// look like a specific real browser/OS combination. Profiles are immutable
// value objects created by a ProfileGenerator.
//
// Invariant: for Chromium-family profiles the client-hint fields are
// non-empty and their embedded major version matches the major version in
// UserAgent. For non-Chromium families all three SecCHUA fields are empty
// strings and Headers omits them entirely.
type Profile struct {
	UserAgent       string
	Accept          string
	AcceptLanguage  string
	AcceptEncoding  string
	SecCHUA         string
	SecCHUAMobile   string
	SecCHUAPlatform string
}

// HeaderPair is a single rendered header. Headers returns pairs rather than
// a map so callers can preserve a realistic browser header order.
type HeaderPair struct {
	Name  string
	Value string
}

// Headers renders the profile into an ordered header set matching a real
// browser's ordering and casing. Client-hint headers are present only when
// the profile carries them; "present but empty" is itself a distinguishable
// anomaly, so they are omitted entirely for non-Chromium profiles.
func (p Profile) Headers() []HeaderPair {
	pairs := []HeaderPair{
		{"User-Agent", p.UserAgent},
		{"Accept", p.Accept},
		{"Accept-Language", p.AcceptLanguage},
		{"Accept-Encoding", p.AcceptEncoding},
	}

	if p.SecCHUA != "" {
		pairs = append(pairs,
			HeaderPair{"Sec-CH-UA", p.SecCHUA},
			HeaderPair{"Sec-CH-UA-Mobile", p.SecCHUAMobile},
			HeaderPair{"Sec-CH-UA-Platform", p.SecCHUAPlatform},
		)
	}

	// Sec-Fetch block sent by all modern browsers for top-level navigations.
	pairs = append(pairs,
		HeaderPair{"Sec-Fetch-Dest", "document"},
		HeaderPair{"Sec-Fetch-Mode", "navigate"},
		HeaderPair{"Sec-Fetch-Site", "none"},
		HeaderPair{"Sec-Fetch-User", "?1"},
		HeaderPair{"Upgrade-Insecure-Requests", "1"},
		HeaderPair{"Cache-Control", "max-age=0"},
	)

	return pairs
}

// ProfileGenerator builds internally consistent fingerprint profiles.
type ProfileGenerator interface {
	// ProfileFor builds a profile for the requested family and platform
	// using the newest catalog entry for that family.
	ProfileFor(ctx context.Context, family Family, platform Platform) (Profile, error)

	// RandomProfile draws a family weighted by approximate real-world
	// market share, then a platform consistent with that family's install
	// base, and delegates to ProfileFor.
	RandomProfile(ctx context.Context) (Profile, error)
}
