package heap

import "encoding/binary"

// This file is the small, centralized core that reads and writes heap words -
// every header, footer and link-word access in the package goes through
// these accessors, per the header/footer/link-word layout of spec.md
// §3-§4.2. Other files index a.buf directly only for payload bytes
// (zeroing, copying, slicing).

func pack(size uint64, allocated bool) uint64 {
	w := size &^ 0x0F
	if allocated {
		w |= 1
	}
	return w
}

func (a *Allocator) readWord(addr uintptr) uint64 {
	o := a.off(addr)
	return binary.LittleEndian.Uint64(a.buf[o : o+wordSize])
}

func (a *Allocator) writeWord(addr uintptr, v uint64) {
	o := a.off(addr)
	binary.LittleEndian.PutUint64(a.buf[o:o+wordSize], v)
}

// header returns the address of bp's header word.
func (a *Allocator) header(bp uintptr) uintptr { return bp - wordSize }

// footer returns the address of bp's footer word, given its current size.
func (a *Allocator) footer(bp uintptr) uintptr {
	return bp + uintptr(a.sizeOf(bp)) - dwordSize
}

// sizeOf masks off the low 4 reserved/flag bits of the header word.
func (a *Allocator) sizeOf(bp uintptr) uint64 {
	return a.readWord(a.header(bp)) &^ 0x0F
}

func (a *Allocator) isAllocated(bp uintptr) bool {
	return a.readWord(a.header(bp))&0x01 != 0
}

// setHeaderFooter packs and writes both boundary tags for bp in one call,
// keeping invariant 1 (header == footer) true by construction.
func (a *Allocator) setHeaderFooter(bp uintptr, size uint64, allocated bool) {
	w := pack(size, allocated)
	a.writeWord(a.header(bp), w)
	a.writeWord(bp+uintptr(size)-dwordSize, w)
}

// nextPhys is the block pointer of the physically adjacent next block.
func (a *Allocator) nextPhys(bp uintptr) uintptr {
	return bp + uintptr(a.sizeOf(bp))
}

// prevPhys reads the previous block's footer (the word directly preceding
// bp's header) to recover its size and hence its block pointer.
func (a *Allocator) prevPhys(bp uintptr) uintptr {
	prevFooter := bp - dwordSize
	prevSize := a.readWord(prevFooter) &^ 0x0F
	return bp - uintptr(prevSize)
}

// writeEpilogueAfter writes the zero-size, allocated epilogue header in the
// word immediately preceding the (virtual) next block at next_phys(bp).
func (a *Allocator) writeEpilogueAfter(bp uintptr) {
	addr := bp + uintptr(a.sizeOf(bp)) - wordSize
	a.writeWord(addr, pack(0, true))
}

// Free-list link words, valid only while bp is in the free state (spec §3):
// payload word 0 is the prev link, word 1 is the next link.

func (a *Allocator) prevLink(bp uintptr) uintptr { return uintptr(a.readWord(bp)) }
func (a *Allocator) nextLink(bp uintptr) uintptr { return uintptr(a.readWord(bp + wordSize)) }

func (a *Allocator) setPrevLink(bp, v uintptr) { a.writeWord(bp, uint64(v)) }
func (a *Allocator) setNextLink(bp, v uintptr) { a.writeWord(bp+wordSize, uint64(v)) }

func alignUp16(n int) int { return (n + 15) &^ 15 }

// adjSize computes the block size that must be carved out for a size-byte
// request: room for header+footer, rounded up to the double-word alignment,
// never smaller than MIN_BLOCK_SIZE (spec §4.4 step 2).
func adjSize(size int) uint64 {
	adj := alignUp16(size + dwordSize)
	if adj < minBlockSize {
		adj = minBlockSize
	}
	return uint64(adj)
}
