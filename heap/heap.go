// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package heap implements a drop-in dynamic memory allocator: a single
// contiguous byte region managed with an explicit, doubly-linked free list
// and boundary-tag coalescing.
//
// The region itself is obtained from a RegionProvider (an sbrk-like low
// level service, see package region for the default mmap-backed one); heap
// never talks to the operating system directly. All block-management state
// - the free-list head, the prologue location, growth bookkeeping - lives
// in the Allocator value, so a caller owns exactly one heap per Allocator.
package heap

import (
	"fmt"
)

const (
	wordSize     = 8  // one header/footer/link word
	dwordSize    = 16 // payload alignment
	minBlockSize = 32 // header + 2 link words + footer
	defaultChunk = 1 << 12
)

// RegionProvider is the sbrk-like low-level region provider consumed by the
// allocator (spec §6). It extends a contiguous region by exactly n bytes
// and hands back the address of the first new byte; the returned address is
// always the previous region end, never relocated.
type RegionProvider interface {
	// Sbrk grows the region by n bytes, returning the address of the first
	// new byte, or an error if the region cannot grow.
	Sbrk(n int) (uintptr, error)

	// Low is the fixed base address of the region.
	Low() uintptr

	// High is the current end of the region (Low + len(Bytes())).
	High() uintptr

	// Bytes is a byte-addressable view of [Low, High). The slice's backing
	// array never relocates across calls: growth only ever appends.
	Bytes() []byte
}

// Stats accumulates allocator-lifetime counters, mirroring the instrumentation
// the teacher package keeps on its Allocator (allocs, mmaps, bytes).
type Stats struct {
	Allocs    int
	Frees     int
	Splits    int
	Coalesces int
	Extends   int
}

// Allocator manages one heap backed by a RegionProvider. It is not safe for
// concurrent use; callers serialize their own operations (spec §5).
type Allocator struct {
	mem       RegionProvider
	buf       []byte
	prologue  uintptr
	flistHead uintptr // 0 means empty
	chunkSize int
	preExtend bool

	Stats Stats
}

// New creates an Allocator over provider, writing the prologue/epilogue
// sentinels (spec §4.1). Further heap growth happens lazily on first
// allocation unless WithPreExtend is supplied.
func New(provider RegionProvider, opts ...Option) (*Allocator, error) {
	a := &Allocator{mem: provider, chunkSize: defaultChunk}
	for _, opt := range opts {
		opt(a)
	}
	if err := a.init(); err != nil {
		return nil, err
	}
	if a.preExtend {
		if bp := a.extendHeap(a.chunkSize); bp == 0 {
			return nil, fmt.Errorf("%w: pre-extension failed", ErrInitFailed)
		}
	}
	return a, nil
}

// init lays down the padding, prologue and epilogue sentinels (spec §4.1).
func (a *Allocator) init() error {
	base, err := a.mem.Sbrk(3 * dwordSize)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInitFailed, err)
	}
	a.buf = a.mem.Bytes()

	a.writeWord(base, 0) // alignment pad

	prologueBp := base + dwordSize
	a.setHeaderFooter(prologueBp, minBlockSize, true)
	a.setPrevLink(prologueBp, 0)
	a.setNextLink(prologueBp, 0)
	a.writeEpilogueAfter(prologueBp)

	a.prologue = prologueBp
	a.flistHead = 0
	return nil
}

// off translates an address into the provider's region into a byte offset
// usable against a.buf; it is the one seam between "address" arithmetic
// (matching spec.md's pointer model) and Go's bounds-checked slices.
func (a *Allocator) off(addr uintptr) int {
	return int(addr - a.mem.Low())
}

// refresh must be called after any Sbrk call: the provider's backing slice
// grows but its header may change, so the cached view needs updating.
func (a *Allocator) refresh() {
	a.buf = a.mem.Bytes()
}
