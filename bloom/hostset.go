// Package bloom tracks warmed-up hosts using Bloom filters.
package bloom

import (
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// HostSet records which hosts already have a warm connection, backed by
// a Bloom filter. A false positive only skips a redundant warm-up, so
// the probabilistic membership test is acceptable here. Safe for
// concurrent use.
type HostSet struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewHostSet creates a HostSet sized for n expected hosts with the
// given false positive rate.
func NewHostSet(n uint, fpRate float64) *HostSet {
	return &HostSet{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Mark records the host as warmed. Hosts are compared
// case-insensitively.
func (s *HostSet) Mark(host string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.f.AddString(strings.ToLower(host))
}

// Warmed returns true if the host was probably warmed already.
// False positives are possible; false negatives are not.
func (s *HostSet) Warmed(host string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.TestString(strings.ToLower(host))
}

// EstimatedCount returns the approximate number of warmed hosts.
func (s *HostSet) EstimatedCount() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return uint(s.f.ApproximatedSize())
}
