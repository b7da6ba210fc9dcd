// Package fingerprint generates internally consistent browser fingerprint
// profiles from the version catalog. Generated header sets are modeled on
// real browser traffic: Chromium profiles carry client hints whose major
// version matches the user-agent, Firefox and Safari carry none.
package fingerprint

import (
	"context"
	"fmt"
	"math/rand/v2"

	nab "github.com/MikkoParkkola/nab-sub001"
)

// Ensure Generator implements nab.ProfileGenerator at compile time.
var _ nab.ProfileGenerator = (*Generator)(nil)

// safariWebKitBuild is the WebKit build number Safari has reported in
// user-agent strings since macOS froze UA versioning.
const safariWebKitBuild = "605.1.15"

// Accept header lines per family, as captured from real browsers.
const (
	chromeAccept  = "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.7"
	firefoxAccept = "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8"
	safariAccept  = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
)

// acceptLanguages is the pool of realistic Accept-Language values drawn
// from when building a profile.
var acceptLanguages = []string{
	"en-US,en;q=0.9",
	"en-GB,en;q=0.9",
	"en-US,en;q=0.9,de;q=0.8",
	"en-US,en;q=0.9,fr;q=0.8",
	"en-US,en;q=0.9,es;q=0.8",
	"en-US,en;q=0.9,ja;q=0.8",
	"fi-FI,fi;q=0.9,en;q=0.8",
}

// Generator builds fingerprint profiles from the current version catalog.
// Safe for concurrent use when the injected random source is; the default
// source is the shared math/rand/v2 generator, which is.
type Generator struct {
	versions nab.VersionService
	randF64  func() float64
	randN    func(n int) int
}

// Option configures a Generator.
type Option func(*Generator)

// WithRandSource replaces the random source, for deterministic tests.
func WithRandSource(src *rand.Rand) Option {
	return func(g *Generator) {
		g.randF64 = src.Float64
		g.randN = src.IntN
	}
}

// NewGenerator creates a Generator backed by the given version service.
func NewGenerator(versions nab.VersionService, opts ...Option) *Generator {
	g := &Generator{
		versions: versions,
		randF64:  rand.Float64,
		randN:    rand.IntN,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ProfileFor builds a profile for the requested family and platform using
// the newest catalog entry for that family.
func (g *Generator) ProfileFor(ctx context.Context, family nab.Family, platform nab.Platform) (nab.Profile, error) {
	if !family.Valid() {
		return nab.Profile{}, nab.Errorf(nab.EINVALID, "unknown browser family %q", family)
	}
	if !platform.Valid() {
		return nab.Profile{}, nab.Errorf(nab.EINVALID, "unknown platform %q", platform)
	}
	if family == nab.FamilySafari && platform != nab.PlatformMacOS {
		return nab.Profile{}, nab.Errorf(nab.EINVALID, "safari profiles exist only on macOS")
	}

	versions, err := g.versions.Versions(ctx)
	if err != nil {
		return nab.Profile{}, err
	}
	entry, err := versions.Newest(family)
	if err != nil {
		return nab.Profile{}, err
	}

	switch family {
	case nab.FamilyChrome:
		return g.chromeProfile(entry, platform), nil
	case nab.FamilyFirefox:
		return g.firefoxProfile(entry, platform), nil
	default:
		return g.safariProfile(entry), nil
	}
}

// RandomProfile draws a family weighted by approximate market share, a
// platform consistent with that family's install base, and delegates to
// ProfileFor.
func (g *Generator) RandomProfile(ctx context.Context) (nab.Profile, error) {
	family := g.randomFamily()

	platform := nab.PlatformMacOS
	if family != nab.FamilySafari {
		platform = g.randomPlatform()
	}

	return g.ProfileFor(ctx, family, platform)
}

// randomFamily: Chrome 65%, Safari 20%, Firefox 15%.
func (g *Generator) randomFamily() nab.Family {
	roll := g.randF64()
	switch {
	case roll < 0.65:
		return nab.FamilyChrome
	case roll < 0.85:
		return nab.FamilySafari
	default:
		return nab.FamilyFirefox
	}
}

// randomPlatform: Windows 65%, macOS 20%, Linux 15%.
func (g *Generator) randomPlatform() nab.Platform {
	roll := g.randF64()
	switch {
	case roll < 0.65:
		return nab.PlatformWindows
	case roll < 0.85:
		return nab.PlatformMacOS
	default:
		return nab.PlatformLinux
	}
}

func (g *Generator) chromeProfile(entry nab.VersionEntry, platform nab.Platform) nab.Profile {
	ua := fmt.Sprintf(
		"Mozilla/5.0 (%s) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/%s Safari/537.36",
		platform.OSString(), entry.Full,
	)

	brands := fmt.Sprintf(
		`"Google Chrome";v=%[1]q, "Chromium";v=%[1]q, "Not_A Brand";v="24"`,
		entry.Major,
	)

	return nab.Profile{
		UserAgent:       ua,
		Accept:          chromeAccept,
		AcceptLanguage:  g.randomAcceptLanguage(),
		AcceptEncoding:  "gzip, deflate, br, zstd",
		SecCHUA:         brands,
		SecCHUAMobile:   "?0",
		SecCHUAPlatform: platform.SecCHPlatform(),
	}
}

func (g *Generator) firefoxProfile(entry nab.VersionEntry, platform nab.Platform) nab.Profile {
	ua := fmt.Sprintf(
		"Mozilla/5.0 (%s; rv:%s) Gecko/20100101 Firefox/%s",
		platform.OSString(), entry.Full, entry.Full,
	)

	return nab.Profile{
		UserAgent:      ua,
		Accept:         firefoxAccept,
		AcceptLanguage: g.randomAcceptLanguage(),
		AcceptEncoding: "gzip, deflate, br, zstd",
	}
}

func (g *Generator) safariProfile(entry nab.VersionEntry) nab.Profile {
	ua := fmt.Sprintf(
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/%[1]s (KHTML, like Gecko) Version/%[2]s Safari/%[1]s",
		safariWebKitBuild, entry.Full,
	)

	return nab.Profile{
		UserAgent:      ua,
		Accept:         safariAccept,
		AcceptLanguage: g.randomAcceptLanguage(),
		// Safari does not support zstd.
		AcceptEncoding: "gzip, deflate, br",
	}
}

func (g *Generator) randomAcceptLanguage() string {
	return acceptLanguages[g.randN(len(acceptLanguages))]
}
