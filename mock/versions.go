package mock

import (
	"context"

	nab "github.com/MikkoParkkola/nab-sub001"
)

var _ nab.VersionService = (*VersionService)(nil)

// VersionService is a mock implementation of nab.VersionService.
type VersionService struct {
	VersionsFn func(ctx context.Context) (*nab.BrowserVersions, error)
}

func (s *VersionService) Versions(ctx context.Context) (*nab.BrowserVersions, error) {
	return s.VersionsFn(ctx)
}
