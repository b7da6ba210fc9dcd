package nab

import (
	"context"
	"strings"
	"time"
)

// Catalog freshness windows. Chrome ships every four weeks so the shared
// window checks every two; Safari releases on a slower quarterly cadence and
// is tracked with its own timestamp.
const (
	CatalogMaxAge       = 14 * 24 * time.Hour
	SafariCatalogMaxAge = 180 * 24 * time.Hour
)

// VersionEntry is one released browser version. Full always begins with
// Major ("131" / "131.0.6778.85"; Safari uses "18.2" / "18.2").
type VersionEntry struct {
	Major string `json:"major"`
	Full  string `json:"full"`
}

// BrowserVersions holds per-family version history, most recent first.
// It is the sole source of truth for "current" version numbers. Snapshots
// are immutable once published; refresh replaces the whole value.
type BrowserVersions struct {
	LastUpdated       time.Time      `json:"last_updated"`
	SafariLastChecked time.Time      `json:"safari_last_checked"`
	Chrome            []VersionEntry `json:"chrome"`
	Firefox           []VersionEntry `json:"firefox"`
	Safari            []VersionEntry `json:"safari"`
}

// Entries returns the version sequence for a family, newest first.
func (v *BrowserVersions) Entries(family Family) []VersionEntry {
	switch family {
	case FamilyChrome:
		return v.Chrome
	case FamilyFirefox:
		return v.Firefox
	case FamilySafari:
		return v.Safari
	}
	return nil
}

// Newest returns the most recent entry for a family.
func (v *BrowserVersions) Newest(family Family) (VersionEntry, error) {
	entries := v.Entries(family)
	if len(entries) == 0 {
		return VersionEntry{}, Errorf(ENOTFOUND, "no versions for family %q", family)
	}
	return entries[0], nil
}

// Validate returns an error if the catalog violates its invariants: every
// family sequence non-empty, and every full version string prefixed by its
// paired major.
func (v *BrowserVersions) Validate() error {
	for _, family := range []Family{FamilyChrome, FamilyFirefox, FamilySafari} {
		entries := v.Entries(family)
		if len(entries) == 0 {
			return Errorf(EINVALID, "catalog has no %s versions", family)
		}
		for _, e := range entries {
			if e.Major == "" || !strings.HasPrefix(e.Full, e.Major) {
				return Errorf(EINVALID, "%s version %q does not start with major %q", family, e.Full, e.Major)
			}
		}
	}
	return nil
}

// Stale reports whether the Chrome/Firefox refresh window has elapsed.
func (v *BrowserVersions) Stale(now time.Time) bool {
	return now.Sub(v.LastUpdated) > CatalogMaxAge
}

// SafariStale reports whether the independent Safari check window has
// elapsed.
func (v *BrowserVersions) SafariStale(now time.Time) bool {
	return now.Sub(v.SafariLastChecked) > SafariCatalogMaxAge
}

// VersionService provides the current browser version catalog.
//
// Implementations must never fail the caller on refresh problems: a
// network or parse error falls back to cached data, and when nothing is
// cached, to a bundled last-known-good set.
type VersionService interface {
	Versions(ctx context.Context) (*BrowserVersions, error)
}
