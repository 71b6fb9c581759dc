// Copyright 2011 Evan Shaw. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE-MMAP-GO file.

// Modifications (c) 2017 The Memory Authors.
// Modifications (c) The listheap Authors: VirtualAlloc/VirtualFree via
// golang.org/x/sys/windows instead of a CreateFileMapping-backed view, to
// match the reserve-and-grow shape of MemRegion.

package listheap

import (
	"reflect"
	"unsafe"

	"golang.org/x/sys/windows"
)

// mmapReserve reserves size bytes of committed, zero-filled, read/write
// memory the region grows into.
func mmapReserve(size int) ([]byte, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, err
	}

	var b []byte
	sh := (*reflect.SliceHeader)(unsafe.Pointer(&b))
	sh.Data = addr
	sh.Len = size
	sh.Cap = size
	return b, nil
}

func mmapRelease(b []byte) error {
	if len(b) == 0 {
		return nil
	}

	return windows.VirtualFree(uintptr(unsafe.Pointer(&b[0])), 0, windows.MEM_RELEASE)
}
