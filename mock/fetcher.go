package mock

import (
	"context"

	nab "github.com/MikkoParkkola/nab-sub001"
)

var _ nab.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of nab.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*nab.Response, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*nab.Response, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
