package heap

import (
	"fmt"

	"github.com/jacklxc/mallocore/region"
)

// NewHeap reserves an mmap-backed region of up to maxSize bytes and returns
// an Allocator over it, for callers that don't need a custom
// RegionProvider. This is the zero-configuration entry point analogous to
// the teacher package's zero-value-ready Allocator, which implicitly talks
// to the OS the same way.
func NewHeap(maxSize int, opts ...Option) (*Allocator, error) {
	arena, err := region.New(maxSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInitFailed, err)
	}
	return New(arena, opts...)
}
