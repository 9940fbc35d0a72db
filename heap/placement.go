package heap

// allocate is the core placement engine (spec §4.4): find-fit, grow on
// miss, then place. Returns 0 (null) for a zero/negative size or when
// growth fails.
func (a *Allocator) allocate(size int) uintptr {
	if size <= 0 {
		return 0
	}

	adj := adjSize(size)
	bp := a.findFit(adj)
	if bp == 0 {
		grow := adj
		if uint64(a.chunkSize) > grow {
			grow = uint64(a.chunkSize)
		}
		bp = a.extendHeap(int(grow))
		if bp == 0 {
			return 0
		}
	}

	a.place(bp, adj)
	a.Stats.Allocs++
	return bp
}

// place transitions a size-checked free block to allocated, splitting off a
// free residue when the remainder would still satisfy MIN_BLOCK_SIZE (spec
// §4.4 "place"). No best-fit, no address-ordered insertion: first-fit finds
// the head-most matching block in LIFO order and that's what gets placed.
func (a *Allocator) place(bp uintptr, adj uint64) {
	blockSize := a.sizeOf(bp)
	a.flistRemove(bp)

	if blockSize-adj >= minBlockSize {
		a.setHeaderFooter(bp, adj, true)
		residue := a.nextPhys(bp)
		a.setHeaderFooter(residue, blockSize-adj, false)
		a.coalesce(residue)
		a.Stats.Splits++
		return
	}

	a.setHeaderFooter(bp, blockSize, true)
}
