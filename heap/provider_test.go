package heap

import "unsafe"

func uintptrOf(b []byte) uintptr {
	if len(b) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&b[0]))
}

// fakeProvider is a RegionProvider backed by a single pre-allocated Go byte
// slice, used by this package's unit tests to exercise the allocator without
// touching the OS through package region. Because the slice's full capacity
// is allocated up front and Bytes() only ever reslices within it, addresses
// handed out never relocate - the one guarantee the allocator's pointer
// arithmetic depends on, exactly as region.Arena provides via mmap.
type fakeProvider struct {
	mem  []byte
	base uintptr
	brk  int
}

func newFakeProvider(maxSize int) *fakeProvider {
	mem := make([]byte, maxSize)
	return &fakeProvider{
		mem:  mem,
		base: uintptrOf(mem),
	}
}

func (p *fakeProvider) Sbrk(n int) (uintptr, error) {
	if n <= 0 {
		panic("fakeProvider: n must be positive")
	}
	if p.brk+n > len(p.mem) {
		return 0, ErrOOM
	}
	addr := p.base + uintptr(p.brk)
	p.brk += n
	return addr, nil
}

func (p *fakeProvider) Low() uintptr  { return p.base }
func (p *fakeProvider) High() uintptr { return p.base + uintptr(p.brk) }
func (p *fakeProvider) Bytes() []byte { return p.mem[:p.brk] }
