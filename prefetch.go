package nab

// LinkHint is a resource hint discovered in a page or an Early Hints
// response: a rel directive (preload, preconnect, dns-prefetch) paired
// with its target URL.
type LinkHint struct {
	Rel string
	URL string
}
