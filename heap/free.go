package heap

// free marks bp's block free and coalesces it, or silently no-ops if bp
// looks invalid (spec §4.6). The validation is the best-effort heuristic
// the spec calls for, not a safety guarantee against adversarial input.
func (a *Allocator) free(bp uintptr) {
	if bp == 0 {
		return
	}
	if !a.isAllocated(bp) || a.readWord(a.header(bp)) != a.readWord(a.footer(bp)) {
		return
	}

	size := a.sizeOf(bp)
	a.setHeaderFooter(bp, size, false)
	a.coalesce(bp)
	a.Stats.Frees++
}

// validPointer applies the same header==footer and allocated-bit heuristic
// free uses, plus a bounds check against the region the blocks live in.
// Reallocate has no business touching a block that isn't currently
// allocated, so this is stricter than spec §4.7 step 3 literally requires -
// a deliberate widening of the same best-effort heuristic free already
// applies.
func (a *Allocator) validPointer(bp uintptr) bool {
	if bp == 0 || bp < a.prologue+minBlockSize || bp >= a.mem.High() {
		return false
	}
	return a.isAllocated(bp) && a.readWord(a.header(bp)) == a.readWord(a.footer(bp))
}
