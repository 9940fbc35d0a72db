package heap

// The explicit free list is doubly linked and LIFO (spec §4.3): insert
// always happens at the head, remove is O(1) given a block pointer. An empty
// list is represented by a null (0) head, rather than spec.md's
// prologue-as-terminator trick - the Allocator already encapsulates the head
// as a field (spec §9 "Global state" re-architecture note), so the prologue
// no longer needs to double as a sentinel list node. See DESIGN.md.

func (a *Allocator) flistInsert(bp uintptr) {
	a.setPrevLink(bp, 0)
	a.setNextLink(bp, a.flistHead)
	if a.flistHead != 0 {
		a.setPrevLink(a.flistHead, bp)
	}
	a.flistHead = bp
}

func (a *Allocator) flistRemove(bp uintptr) {
	prev := a.prevLink(bp)
	next := a.nextLink(bp)
	if prev == 0 {
		a.flistHead = next
	} else {
		a.setNextLink(prev, next)
	}
	if next != 0 {
		a.setPrevLink(next, prev)
	}
}

// findFit returns the first free block able to hold adj bytes, in LIFO
// (most-recently-freed-first) order, or 0 if none fits (spec §4.4 step 3).
func (a *Allocator) findFit(adj uint64) uintptr {
	for bp := a.flistHead; bp != 0; bp = a.nextLink(bp) {
		if a.sizeOf(bp) >= adj {
			return bp
		}
	}
	return 0
}
