package nab

import "context"

// The interfaces below are external collaborators: OS services and
// subprocess-driven tooling the fetch pipeline treats as opaque
// capabilities. The core never depends on the concrete binaries being
// present; orchestration layers inject implementations.

// Cookie is a single name/value pair scoped to a domain.
type Cookie struct {
	Name  string
	Value string
}

// CookieStore supplies cookies for a domain, typically read from a local
// browser's cookie database.
type CookieStore interface {
	Cookies(ctx context.Context, domain string) ([]Cookie, error)
}

// CredentialStore supplies login secrets from a password manager.
type CredentialStore interface {
	Credential(ctx context.Context, item string) (username, secret string, err error)
}

// TranscriptionBackend produces a transcript for a media file via external
// ML tooling over a subprocess boundary.
type TranscriptionBackend interface {
	Transcribe(ctx context.Context, mediaPath string) (transcript string, err error)
}

// CompositorBackend renders an overlay track onto a media file.
type CompositorBackend interface {
	Compose(ctx context.Context, mediaPath, overlayPath string) (outPath string, err error)
}
