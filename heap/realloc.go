package heap

// reallocate implements spec §4.7's size-comparison / in-place / relocate
// decision tree. bp must already be known-valid (the public wrapper checks
// header==footer before calling in). Returns 0 only when relocation was
// necessary and allocate failed - the original block is left untouched in
// that case.
func (a *Allocator) reallocate(bp uintptr, size int) uintptr {
	adj := adjSize(size)
	b := a.sizeOf(bp)

	if adj <= b {
		if b-adj >= minBlockSize {
			a.splitResidue(bp, adj, b)
		}
		return bp
	}

	if next := a.nextPhys(bp); !a.isAllocated(next) && b+a.sizeOf(next) >= adj {
		a.flistRemove(next)
		b += a.sizeOf(next)
		if b-adj >= minBlockSize {
			a.splitResidue(bp, adj, b)
		} else {
			a.setHeaderFooter(bp, b, true)
		}
		return bp
	}

	newBp := a.allocate(size)
	if newBp == 0 {
		return 0
	}

	a.copyPayload(newBp, bp, int(b)-dwordSize)
	a.free(bp)
	return newBp
}

// splitResidue carves adj bytes off bp as allocated and the remainder of a
// totalSize-byte block as a free residue, coalescing the residue forward
// (used by both the shrink path and the in-place expand path, spec §4.7
// steps 5 and 6).
func (a *Allocator) splitResidue(bp uintptr, adj, totalSize uint64) {
	a.setHeaderFooter(bp, adj, true)
	residue := a.nextPhys(bp)
	a.setHeaderFooter(residue, totalSize-adj, false)
	a.coalesce(residue)
	a.Stats.Splits++
}

func (a *Allocator) copyPayload(dst, src uintptr, n int) {
	if n <= 0 {
		return
	}
	do, so := a.off(dst), a.off(src)
	copy(a.buf[do:do+n], a.buf[so:so+n])
}
