package mock

import (
	"context"

	nab "github.com/MikkoParkkola/nab-sub001"
)

var _ nab.ProfileGenerator = (*ProfileGenerator)(nil)

// ProfileGenerator is a mock implementation of nab.ProfileGenerator.
type ProfileGenerator struct {
	ProfileForFn    func(ctx context.Context, family nab.Family, platform nab.Platform) (nab.Profile, error)
	RandomProfileFn func(ctx context.Context) (nab.Profile, error)
}

func (g *ProfileGenerator) ProfileFor(ctx context.Context, family nab.Family, platform nab.Platform) (nab.Profile, error) {
	return g.ProfileForFn(ctx, family, platform)
}

func (g *ProfileGenerator) RandomProfile(ctx context.Context) (nab.Profile, error) {
	return g.RandomProfileFn(ctx)
}
