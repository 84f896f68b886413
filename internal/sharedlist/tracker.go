package sharedlist

import (
	"sync/atomic"

	"github.com/vk/fnlists/internal/typeregistry"
)

// Tracker observes the lifetime of list storage. OnAlloc is called once when
// a list's storage is created and OnFree once when its last handle is
// released. Implementations must be safe for concurrent use.
type Tracker interface {
	OnAlloc(desc *typeregistry.Descriptor, elems int, bytes uintptr)
	OnFree(desc *typeregistry.Descriptor, elems int, bytes uintptr)
}

type nopTracker struct{}

func (nopTracker) OnAlloc(*typeregistry.Descriptor, int, uintptr) {}
func (nopTracker) OnFree(*typeregistry.Descriptor, int, uintptr)  {}

// Stats is a Tracker that counts allocations and frees.
type Stats struct {
	allocs    atomic.Int64
	frees     atomic.Int64
	liveBytes atomic.Int64
}

// NewStats returns a zeroed Stats.
func NewStats() *Stats {
	return &Stats{}
}

func (s *Stats) OnAlloc(_ *typeregistry.Descriptor, _ int, bytes uintptr) {
	s.allocs.Add(1)
	s.liveBytes.Add(int64(bytes))
}

func (s *Stats) OnFree(_ *typeregistry.Descriptor, _ int, bytes uintptr) {
	s.frees.Add(1)
	s.liveBytes.Add(-int64(bytes))
}

// Allocs is the number of list storages created so far.
func (s *Stats) Allocs() int64 { return s.allocs.Load() }

// Frees is the number of list storages dropped so far.
func (s *Stats) Frees() int64 { return s.frees.Load() }

// Live is the number of storages created but not yet dropped.
func (s *Stats) Live() int64 { return s.allocs.Load() - s.frees.Load() }

// LiveBytes is the element payload held by live storages.
func (s *Stats) LiveBytes() int64 { return s.liveBytes.Load() }
