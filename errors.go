// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package listheap

import "fmt"

// ErrOutOfMemory is returned when the region provider refuses further
// extension and no existing free block can satisfy the request.
type ErrOutOfMemory struct {
	Requested int
}

func (e *ErrOutOfMemory) Error() string {
	return fmt.Sprintf("listheap: out of memory requesting %d bytes", e.Requested)
}

// ErrInvalidArgument reports a malformed call into the allocator or the
// region provider (a negative size, a zero-capacity region, and so on).
type ErrInvalidArgument struct {
	What string
	Arg  interface{}
}

func (e *ErrInvalidArgument) Error() string {
	return fmt.Sprintf("listheap: invalid argument: %s (%v)", e.What, e.Arg)
}

// ErrInvalidPointer reports a Reallocate call whose argument was never
// returned by Allocate/Reallocate on this Allocator. Detecting this
// reliably in general is undefined behavior per spec (section 7); this error
// is only returned for the cheap, always-checkable case of a pointer outside
// the region's bounds. Release does not report invalid pointers.
type ErrInvalidPointer struct {
	Ptr int
}

func (e *ErrInvalidPointer) Error() string {
	return fmt.Sprintf("listheap: invalid pointer %#x", e.Ptr)
}

// ErrNotInitialized is returned by Allocate/Reallocate when Init has not
// completed successfully.
var ErrNotInitialized = fmt.Errorf("listheap: allocator not initialized")

// ErrRegionExhausted is returned by a Region's Extend once growing past its
// reserved ceiling (or the uint32 offset space free-list links are encoded
// in) would be required.
var ErrRegionExhausted = fmt.Errorf("listheap: region exhausted")
