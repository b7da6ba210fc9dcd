package catalog

import (
	"time"

	nab "github.com/MikkoParkkola/nab-sub001"
)

// Defaults returns the bundled last-known-good version set, used when no
// cache exists and the feeds are unreachable. The timestamps are set to
// now so a process that starts offline does not loop on refresh attempts.
func Defaults(now time.Time) *nab.BrowserVersions {
	return &nab.BrowserVersions{
		LastUpdated:       now,
		SafariLastChecked: now,
		Chrome: []nab.VersionEntry{
			{Major: "131", Full: "131.0.0.0"},
			{Major: "130", Full: "130.0.0.0"},
			{Major: "129", Full: "129.0.0.0"},
			{Major: "128", Full: "128.0.0.0"},
			{Major: "127", Full: "127.0.0.0"},
		},
		Firefox: []nab.VersionEntry{
			{Major: "134", Full: "134.0"},
			{Major: "133", Full: "133.0"},
			{Major: "132", Full: "132.0"},
			{Major: "131", Full: "131.0"},
		},
		Safari: []nab.VersionEntry{
			{Major: "18.2", Full: "18.2"},
			{Major: "18.1", Full: "18.1"},
			{Major: "18.0", Full: "18.0"},
			{Major: "17.6", Full: "17.6"},
		},
	}
}
