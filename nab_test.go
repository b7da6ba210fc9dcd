package nab_test

import (
	"testing"
	"time"

	nab "github.com/MikkoParkkola/nab-sub001"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := nab.Errorf(nab.ENOTFOUND, "no versions for family %q", "chrome")

	assert.Equal(t, nab.ENOTFOUND, nab.ErrorCode(err))
	assert.Equal(t, "no versions for family \"chrome\"", nab.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, nab.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, nab.ErrorMessage(nil))
}

func TestProfile_Headers_ChromiumIncludesClientHints(t *testing.T) {
	t.Parallel()

	p := nab.Profile{
		UserAgent:       "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
		Accept:          "text/html",
		AcceptLanguage:  "en-US,en;q=0.9",
		AcceptEncoding:  "gzip, deflate, br, zstd",
		SecCHUA:         `"Google Chrome";v="131", "Chromium";v="131", "Not_A Brand";v="24"`,
		SecCHUAMobile:   "?0",
		SecCHUAPlatform: `"Windows"`,
	}

	names := headerNames(p.Headers())
	assert.Contains(t, names, "Sec-CH-UA")
	assert.Contains(t, names, "Sec-CH-UA-Mobile")
	assert.Contains(t, names, "Sec-CH-UA-Platform")

	// User-Agent always renders first, like a real browser.
	assert.Equal(t, "User-Agent", names[0])
}

func TestProfile_Headers_NonChromiumOmitsClientHints(t *testing.T) {
	t.Parallel()

	p := nab.Profile{
		UserAgent:      "Mozilla/5.0 (X11; Linux x86_64; rv:133.0) Gecko/20100101 Firefox/133.0",
		Accept:         "text/html",
		AcceptLanguage: "en-US,en;q=0.9",
		AcceptEncoding: "gzip, deflate, br, zstd",
	}

	names := headerNames(p.Headers())
	assert.NotContains(t, names, "Sec-CH-UA")
	assert.NotContains(t, names, "Sec-CH-UA-Mobile")
	assert.NotContains(t, names, "Sec-CH-UA-Platform")
	assert.Contains(t, names, "Sec-Fetch-Mode")
}

func headerNames(pairs []nab.HeaderPair) []string {
	names := make([]string, 0, len(pairs))
	for _, p := range pairs {
		names = append(names, p.Name)
	}
	return names
}

func TestPlatform_OSString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Macintosh; Intel Mac OS X 10_15_7", nab.PlatformMacOS.OSString())
	assert.Equal(t, "Windows NT 10.0; Win64; x64", nab.PlatformWindows.OSString())
	assert.Equal(t, "X11; Linux x86_64", nab.PlatformLinux.OSString())
}

func TestBrowserVersions_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid catalog passes", func(t *testing.T) {
		t.Parallel()

		v := validVersions()
		require.NoError(t, v.Validate())
	})

	t.Run("full must start with major", func(t *testing.T) {
		t.Parallel()

		v := validVersions()
		v.Chrome[0] = nab.VersionEntry{Major: "131", Full: "130.0.0.0"}
		err := v.Validate()
		require.Error(t, err)
		assert.Equal(t, nab.EINVALID, nab.ErrorCode(err))
	})

	t.Run("empty family fails", func(t *testing.T) {
		t.Parallel()

		v := validVersions()
		v.Firefox = nil
		err := v.Validate()
		require.Error(t, err)
		assert.Equal(t, nab.EINVALID, nab.ErrorCode(err))
	})
}

func TestBrowserVersions_Newest(t *testing.T) {
	t.Parallel()

	v := validVersions()

	entry, err := v.Newest(nab.FamilyChrome)
	require.NoError(t, err)
	assert.Equal(t, "131", entry.Major)

	v.Safari = nil
	_, err = v.Newest(nab.FamilySafari)
	require.Error(t, err)
	assert.Equal(t, nab.ENOTFOUND, nab.ErrorCode(err))
}

func TestBrowserVersions_Staleness(t *testing.T) {
	t.Parallel()

	now := time.Now()

	v := validVersions()
	v.LastUpdated = now.Add(-31 * 24 * time.Hour)
	v.SafariLastChecked = now
	assert.True(t, v.Stale(now))
	assert.False(t, v.SafariStale(now))

	v.LastUpdated = now
	v.SafariLastChecked = now.Add(-185 * 24 * time.Hour)
	assert.False(t, v.Stale(now))
	assert.True(t, v.SafariStale(now))
}

func validVersions() *nab.BrowserVersions {
	now := time.Now()
	return &nab.BrowserVersions{
		LastUpdated:       now,
		SafariLastChecked: now,
		Chrome: []nab.VersionEntry{
			{Major: "131", Full: "131.0.6778.85"},
			{Major: "130", Full: "130.0.6723.117"},
		},
		Firefox: []nab.VersionEntry{
			{Major: "133", Full: "133.0"},
		},
		Safari: []nab.VersionEntry{
			{Major: "18.2", Full: "18.2"},
		},
	}
}
