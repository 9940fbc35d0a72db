package heap

import (
	"fmt"
	"os"
	"unsafe"
)

// This file is the allocator's public surface. It mirrors the teacher
// package's two parallel APIs: UnsafeMalloc/UnsafeFree/UnsafeRealloc operate
// on raw addresses (spec.md's "block pointer" model, §3), while
// Malloc/Calloc/Free/Realloc wrap them behind ordinary Go byte slices for
// callers that would rather not carry unsafe.Pointer/uintptr values around.

// UnsafeMalloc allocates size bytes and returns the address of the payload,
// or 0 if size == 0 (spec §4.4 step 1). It panics for negative size, the
// same programmer-error convention the teacher package uses.
func (a *Allocator) UnsafeMalloc(size int) (r uintptr, err error) {
	if trace {
		defer func() {
			fmt.Fprintf(os.Stderr, "UnsafeMalloc(%#x) %#x, %v\n", size, r, err)
		}()
	}
	if size < 0 {
		panic("heap: invalid malloc size")
	}
	if size == 0 {
		return 0, nil
	}

	bp := a.allocate(size)
	if bp == 0 {
		return 0, ErrOOM
	}
	return bp, nil
}

// UnsafeCalloc is like UnsafeMalloc except the allocated memory is zeroed.
func (a *Allocator) UnsafeCalloc(size int) (uintptr, error) {
	bp, err := a.UnsafeMalloc(size)
	if bp == 0 || err != nil {
		return bp, err
	}
	o := a.off(bp)
	for i := o; i < o+size; i++ {
		a.buf[i] = 0
	}
	return bp, nil
}

// UnsafeFree releases memory acquired from UnsafeMalloc, UnsafeCalloc or
// UnsafeRealloc. A null or invalid pointer is silently ignored (spec §4.6,
// §7).
func (a *Allocator) UnsafeFree(bp uintptr) {
	if trace {
		defer func() { fmt.Fprintf(os.Stderr, "UnsafeFree(%#x)\n", bp) }()
	}
	a.free(bp)
}

// UnsafeRealloc changes the size of the block at bp (spec §4.7). A nil bp
// degrades to UnsafeMalloc; a zero size degrades to UnsafeFree. A bp that
// fails the validity heuristic yields ErrInvalidPointer. If growth fails the
// original block is left intact and ErrOOM is returned.
func (a *Allocator) UnsafeRealloc(bp uintptr, size int) (r uintptr, err error) {
	if trace {
		defer func() {
			fmt.Fprintf(os.Stderr, "UnsafeRealloc(%#x, %#x) %#x, %v\n", bp, size, r, err)
		}()
	}
	switch {
	case bp == 0:
		return a.UnsafeMalloc(size)
	case size == 0:
		a.UnsafeFree(bp)
		return 0, nil
	}

	if !a.validPointer(bp) {
		return 0, ErrInvalidPointer
	}

	newBp := a.reallocate(bp, size)
	if newBp == 0 {
		return 0, ErrOOM
	}
	return newBp, nil
}

// UnsafeUsableSize reports the usable payload size of the block at bp.
func (a *Allocator) UnsafeUsableSize(bp uintptr) int {
	if bp == 0 {
		return 0
	}
	return int(a.sizeOf(bp)) - dwordSize
}

// sliceAt builds a []byte view of length reqLen over the payload at bp,
// capped at the block's full usable size so callers may reslice up to it
// (matching the teacher package's Malloc doc comment on reslicing) without
// reading past the block's footer.
func (a *Allocator) sliceAt(bp uintptr, reqLen int) []byte {
	o := a.off(bp)
	usable := a.UnsafeUsableSize(bp)
	return a.buf[o : o+reqLen : o+usable]
}

// ptrOf recovers the block pointer a []byte was handed out at.
func ptrOf(b []byte) uintptr {
	return uintptr(unsafe.Pointer(&b[0]))
}

// AddrOf exposes ptrOf for callers outside the package (e.g. a harness that
// wants to key a live-allocation map by address without importing unsafe
// itself).
func AddrOf(b []byte) uintptr {
	if len(b) == 0 {
		return 0
	}
	return ptrOf(b)
}

// Malloc allocates size bytes and returns a byte slice over the allocated
// memory. The memory is not initialized. Malloc panics for size < 0 and
// returns (nil, nil) for zero size.
func (a *Allocator) Malloc(size int) (r []byte, err error) {
	bp, err := a.UnsafeMalloc(size)
	if bp == 0 || err != nil {
		return nil, err
	}
	return a.sliceAt(bp, size), nil
}

// Calloc is like Malloc except the allocated memory is zeroed.
func (a *Allocator) Calloc(size int) ([]byte, error) {
	bp, err := a.UnsafeCalloc(size)
	if bp == 0 || err != nil {
		return nil, err
	}
	return a.sliceAt(bp, size), nil
}

// Free deallocates memory acquired from Malloc, Calloc or Realloc. The
// argument may be freely resliced beforehand; Free resolves it back to its
// original block via cap.
func (a *Allocator) Free(b []byte) {
	b = b[:cap(b)]
	if len(b) == 0 {
		return
	}
	a.UnsafeFree(ptrOf(b))
}

// Realloc changes the size of the backing array of b to size bytes. The
// contents are unchanged up to min(old, new) size. If b's backing array is
// of zero size, Realloc behaves like Malloc(size); if size is zero and b is
// not, it behaves like Free(b) and returns (nil, nil).
func (a *Allocator) Realloc(b []byte, size int) ([]byte, error) {
	switch {
	case cap(b) == 0:
		return a.Malloc(size)
	case size == 0:
		a.Free(b)
		return nil, nil
	}

	newBp, err := a.UnsafeRealloc(ptrOf(b), size)
	if err != nil {
		return nil, err
	}
	return a.sliceAt(newBp, size), nil
}

// UsableSize reports the size of the memory block allocated at p, which
// must point to the first byte of a slice returned from Malloc, Calloc or
// Realloc.
func (a *Allocator) UsableSize(p []byte) int {
	if len(p) == 0 {
		return 0
	}
	return a.UnsafeUsableSize(ptrOf(p[:cap(p)]))
}
