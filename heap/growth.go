package heap

// extendHeap asks the region provider for at least size more bytes, lays
// down a new free block over them and a fresh epilogue, then coalesces the
// new block with whatever free tail preceded it (spec §4.5).
func (a *Allocator) extendHeap(size int) uintptr {
	size = alignUp16(size)
	if size < minBlockSize {
		size = minBlockSize
	}

	raw, err := a.mem.Sbrk(size)
	if err != nil {
		return 0
	}
	a.refresh()

	// raw is the previous region end; header(raw) happens to be exactly
	// where the old epilogue header lived, so writing the new block's
	// header there is overwriting that sentinel in place.
	newBp := raw
	a.setHeaderFooter(newBp, uint64(size), false)
	a.writeEpilogueAfter(newBp)
	a.Stats.Extends++

	return a.coalesce(newBp)
}

// coalesce merges bp with free physical neighbors using boundary tags,
// inserts the (possibly merged) block into the free list, and returns its
// final block pointer (spec §4.5 table). bp must have free header/footer
// already written and must not yet be in the free list.
func (a *Allocator) coalesce(bp uintptr) uintptr {
	prevAlloc := a.isAllocated(a.prevPhys(bp))
	next := a.nextPhys(bp)
	nextAlloc := a.isAllocated(next)
	size := a.sizeOf(bp)

	switch {
	case prevAlloc && nextAlloc: // case 1: nothing to merge
	case prevAlloc && !nextAlloc: // case 2: merge forward
		a.flistRemove(next)
		size += a.sizeOf(next)
		a.setHeaderFooter(bp, size, false)
		a.Stats.Coalesces++
	case !prevAlloc && nextAlloc: // case 3: merge backward
		prev := a.prevPhys(bp)
		a.flistRemove(prev)
		size += a.sizeOf(prev)
		bp = prev
		a.setHeaderFooter(bp, size, false)
		a.Stats.Coalesces++
	default: // case 4: merge both
		prev := a.prevPhys(bp)
		a.flistRemove(prev)
		a.flistRemove(next)
		size += a.sizeOf(prev) + a.sizeOf(next)
		bp = prev
		a.setHeaderFooter(bp, size, false)
		a.Stats.Coalesces++
	}

	a.flistInsert(bp)
	return bp
}
