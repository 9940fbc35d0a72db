// Copyright 2011 Evan Shaw. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE-MMAP-GO file.

// Modifications (c) 2017 The Memory Authors.

//go:build windows

package region

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// reserve asks for a contiguous, address-space-only reservation via
// VirtualAlloc(MEM_RESERVE); individual pages are committed lazily by
// commit below, the Windows analogue of the unix mmap(PROT_NONE)+mprotect
// pairing used in region_unix.go.
func reserve(maxSize int) ([]byte, uintptr, int, error) {
	pageSize := syscall.Getpagesize()
	size := roundup(maxSize, pageSize)

	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_RESERVE, windows.PAGE_NOACCESS)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("region: VirtualAlloc reserve: %w", err)
	}

	mem := unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
	return mem, addr, pageSize, nil
}

func (a *Arena) commit(offset, n int) error {
	end := roundup(offset+n, a.pageSize)
	if end <= a.committed {
		return nil
	}

	base := a.base + uintptr(a.committed)
	length := uintptr(end - a.committed)
	if _, err := windows.VirtualAlloc(base, length, windows.MEM_COMMIT, windows.PAGE_READWRITE); err != nil {
		return fmt.Errorf("region: VirtualAlloc commit: %w", err)
	}
	a.committed = end
	return nil
}

func release(a *Arena) error {
	if a.mem == nil {
		return nil
	}
	err := windows.VirtualFree(a.base, 0, windows.MEM_RELEASE)
	a.mem = nil
	return err
}
