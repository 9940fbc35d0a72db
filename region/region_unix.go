// Copyright 2011 Evan Shaw. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE-MMAP-GO file.

// Modifications (c) 2017 The Memory Authors.

//go:build darwin || dragonfly || freebsd || linux || openbsd || solaris || netbsd

package region

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// reserve maps a PROT_NONE region of the requested size: nothing is backed
// by real pages yet, so the reservation costs address space, not RAM.
func reserve(maxSize int) ([]byte, uintptr, int, error) {
	pageSize := unix.Getpagesize()
	size := roundup(maxSize, pageSize)

	mem, err := unix.Mmap(-1, 0, size, unix.PROT_NONE, unix.MAP_SHARED|unix.MAP_ANON)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("region: mmap reserve: %w", err)
	}

	base := uintptr(unsafe.Pointer(&mem[0]))
	if base&uintptr(pageSize-1) != 0 {
		panic("region: mmap returned a misaligned address")
	}

	return mem, base, pageSize, nil
}

// commit makes [offset, offset+n) readable/writable, rounding up to whole
// pages since that's the granularity mprotect understands.
func (a *Arena) commit(offset, n int) error {
	end := roundup(offset+n, a.pageSize)
	if end <= a.committed {
		return nil
	}

	if err := unix.Mprotect(a.mem[a.committed:end], unix.PROT_READ|unix.PROT_WRITE); err != nil {
		return fmt.Errorf("region: mprotect commit: %w", err)
	}
	a.committed = end
	return nil
}

func release(a *Arena) error {
	if a.mem == nil {
		return nil
	}
	err := unix.Munmap(a.mem)
	a.mem = nil
	return err
}
