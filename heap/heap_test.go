// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestAllocator(t *testing.T, opts ...Option) *Allocator {
	t.Helper()
	a, err := New(newFakeProvider(64<<20), opts...)
	require.NoError(t, err)
	return a
}

// Scenario 1: init + single alloc (spec §8).
func TestInitSingleAlloc(t *testing.T) {
	a := newTestAllocator(t)

	p1, err := a.Malloc(40)
	require.NoError(t, err)
	require.NotNil(t, p1)
	require.Zero(t, uintptrOf(p1)%16)
	require.NoError(t, a.CheckHeap(false))

	for i := range p1[:40] {
		p1[i] = byte(i)
	}
	for i, v := range p1[:40] {
		require.Equal(t, byte(i), v)
	}
}

// Scenario 2: split behavior, with CHUNKSIZE pre-extension (spec §8).
func TestSplitBehavior(t *testing.T) {
	a := newTestAllocator(t, WithChunkSize(4096), WithPreExtend(true))

	before := a.UnsafeUsableSize(a.flistHead)
	_, err := a.Malloc(16)
	require.NoError(t, err)
	after := a.UnsafeUsableSize(a.flistHead)

	// adjSize(16) == 32 bytes carved from the tail free block.
	require.Equal(t, 32, before-after)
	require.NoError(t, a.CheckHeap(false))
}

// Scenario 3: coalesce triple (spec §8).
func TestCoalesceTriple(t *testing.T) {
	a := newTestAllocator(t)

	p1, err := a.Malloc(64)
	require.NoError(t, err)
	p2, err := a.Malloc(64)
	require.NoError(t, err)
	p3, err := a.Malloc(64)
	require.NoError(t, err)

	sizeOfBlock := func(p []byte) uint64 { return a.sizeOf(ptrOf(p)) }
	s1, s2, s3 := sizeOfBlock(p1), sizeOfBlock(p2), sizeOfBlock(p3)

	a.Free(p2)
	require.NoError(t, a.CheckHeap(false))
	a.Free(p1)
	require.NoError(t, a.CheckHeap(false))

	merged := a.sizeOf(ptrOf(p1))
	require.Equal(t, s1+s2, merged)

	a.Free(p3)
	require.NoError(t, a.CheckHeap(false))

	all := a.sizeOf(ptrOf(p1))
	require.GreaterOrEqual(t, all, s1+s2+s3)
}

// Scenario 4: reallocate in-place expand (spec §8).
func TestReallocInPlaceExpand(t *testing.T) {
	a := newTestAllocator(t)

	p, err := a.Malloc(16)
	require.NoError(t, err)

	big, err := a.Malloc(4000)
	require.NoError(t, err)
	a.Free(big)
	require.NoError(t, a.CheckHeap(false))

	pAddr := ptrOf(p)
	q, err := a.Realloc(p, 200)
	require.NoError(t, err)
	require.Equal(t, pAddr, ptrOf(q))
	require.NoError(t, a.CheckHeap(false))
}

// Scenario 5: reallocate relocate with copy (spec §8).
func TestReallocRelocateWithCopy(t *testing.T) {
	a := newTestAllocator(t)

	p1, err := a.Malloc(64)
	require.NoError(t, err)
	for i := range p1 {
		p1[i] = byte(i + 1)
	}
	p2, err := a.Malloc(64)
	require.NoError(t, err)
	_, err = a.Malloc(64)
	require.NoError(t, err)

	a.Free(p2)
	require.NoError(t, a.CheckHeap(false))

	oldAddr := ptrOf(p1)
	q, err := a.Realloc(p1, 64+128)
	require.NoError(t, err)
	require.NotEqual(t, oldAddr, ptrOf(q))
	for i := 0; i < 64; i++ {
		require.Equal(t, byte(i+1), q[i])
	}
	require.NoError(t, a.CheckHeap(false))
}

// Scenario 6: out of memory, then recovery after a free (spec §8).
func TestOOM(t *testing.T) {
	a, err := New(newFakeProvider(1 << 16))
	require.NoError(t, err)

	const chunk = 4096
	var blocks [][]byte
	for {
		b, err := a.Malloc(chunk)
		if err != nil {
			require.ErrorIs(t, err, ErrOOM)
			break
		}
		blocks = append(blocks, b)
	}
	require.NotEmpty(t, blocks)

	a.Free(blocks[0])
	_, err = a.Malloc(chunk)
	require.NoError(t, err)
}

func TestFreeNullIsNoOp(t *testing.T) {
	a := newTestAllocator(t)
	a.UnsafeFree(0)
	require.NoError(t, a.CheckHeap(false))
}

func TestDoubleFreeIsNoOp(t *testing.T) {
	a := newTestAllocator(t)

	p, err := a.Malloc(32)
	require.NoError(t, err)

	a.Free(p)
	require.NoError(t, a.CheckHeap(false))

	// p's header is no longer allocated: the second Free must be rejected
	// by the validity heuristic rather than corrupting the free list.
	a.Free(p)
	require.NoError(t, a.CheckHeap(false))
}

func TestReallocZeroIsFree(t *testing.T) {
	a := newTestAllocator(t)

	p, err := a.Malloc(32)
	require.NoError(t, err)

	q, err := a.Realloc(p, 0)
	require.NoError(t, err)
	require.Nil(t, q)
	require.NoError(t, a.CheckHeap(false))
}

func TestReallocNilIsMalloc(t *testing.T) {
	a := newTestAllocator(t)

	p, err := a.Realloc(nil, 32)
	require.NoError(t, err)
	require.NotNil(t, p)
	require.NoError(t, a.CheckHeap(false))
}

func TestReallocSameUsableSizeReturnsSamePointer(t *testing.T) {
	a := newTestAllocator(t)

	p, err := a.Malloc(32)
	require.NoError(t, err)
	addr := ptrOf(p)

	q, err := a.Realloc(p, a.UsableSize(p))
	require.NoError(t, err)
	require.Equal(t, addr, ptrOf(q))
}

func TestPointersAreAligned(t *testing.T) {
	a := newTestAllocator(t)

	for _, size := range []int{1, 15, 16, 17, 100, 4000} {
		p, err := a.Malloc(size)
		require.NoError(t, err)
		require.Zero(t, ptrOf(p)%16)
		require.Greater(t, ptrOf(p), a.prologue)
	}
}
