package nab

import "context"

// Response is a fetched HTTP response with its body fully assembled and
// any content encoding already decoded.
type Response struct {
	// StatusCode is the HTTP status (200, 403, ...).
	StatusCode int

	// Proto is the negotiated protocol ("HTTP/1.1", "HTTP/2.0").
	Proto string

	// ContentType is the raw Content-Type header value, parameters
	// included ("text/html; charset=utf-8").
	ContentType string

	// Header holds the response headers (Link, Content-Encoding, ...).
	Header map[string][]string

	// Body is the decoded response body.
	Body []byte
}

// OK reports whether the response carries a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Fetcher issues GET requests disguised with a fingerprint profile.
// Implementations are safe for concurrent use.
type Fetcher interface {
	// Fetch retrieves the URL. Transport-level failures return an error;
	// non-2xx responses are returned as responses so callers can
	// distinguish a successful-but-blocked fetch from a network failure.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Response, error)

	// Close releases connection-pool resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
