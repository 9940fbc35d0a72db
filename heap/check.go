package heap

import (
	"fmt"
	"os"
)

// CheckHeap walks the heap and asserts the invariants of spec §3, returning
// a non-nil error describing the first violation found. When verbose is
// true it also dumps each physical block's state to stderr - the
// heap-consistency debug printing spec.md §1 calls "a non-functional
// observer"; CheckHeap is the (previously stubbed) real implementation spec
// §9 asks for.
func (a *Allocator) CheckHeap(verbose bool) error {
	physicalFree := 0
	prevFree := false

	for bp := a.prologue; ; bp = a.nextPhys(bp) {
		size := a.sizeOf(bp)
		if size == 0 {
			break // epilogue reached: the physical chain is complete.
		}

		h := a.readWord(a.header(bp))
		f := a.readWord(a.footer(bp))
		if h != f {
			return fmt.Errorf("heap: header %#x != footer %#x at block %#x", h, f, bp)
		}
		if size%dwordSize != 0 {
			return fmt.Errorf("heap: block %#x size %d not a multiple of %d", bp, size, dwordSize)
		}

		allocated := a.isAllocated(bp)
		if verbose {
			fmt.Fprintf(os.Stderr, "block %#x size=%d alloc=%v\n", bp, size, allocated)
		}

		if bp != a.prologue {
			if !allocated {
				if prevFree {
					return fmt.Errorf("heap: adjacent free blocks ending at %#x", bp)
				}
				physicalFree++
			}
			prevFree = !allocated
		}
	}

	flistCount := 0
	var prev uintptr
	for bp := a.flistHead; bp != 0; bp = a.nextLink(bp) {
		if a.isAllocated(bp) {
			return fmt.Errorf("heap: allocated block %#x present in free list", bp)
		}
		if a.prevLink(bp) != prev {
			return fmt.Errorf("heap: free list back-link mismatch at %#x", bp)
		}
		prev = bp
		flistCount++
	}

	if flistCount != physicalFree {
		return fmt.Errorf("heap: free list has %d blocks, physical walk found %d free", flistCount, physicalFree)
	}
	return nil
}
