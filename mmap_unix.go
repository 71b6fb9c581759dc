// Copyright 2011 Evan Shaw. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE-MMAP-GO file.

//go:build darwin || dragonfly || freebsd || linux || openbsd || solaris || netbsd

// +build darwin dragonfly freebsd linux openbsd solaris netbsd

// Modifications (c) 2017 The Memory Authors.
// Modifications (c) The listheap Authors: reserve-and-grow region backing
// instead of map-per-size-class pages, golang.org/x/sys/unix instead of the
// raw syscall package.

package listheap

import (
	"golang.org/x/sys/unix"
)

// mmapReserve reserves size bytes of anonymous, zero-filled memory that a
// MemRegion grows into without ever relocating.
func mmapReserve(size int) ([]byte, error) {
	return unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED|unix.MAP_ANON)
}

func mmapRelease(b []byte) error {
	return unix.Munmap(b)
}
