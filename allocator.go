// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package listheap implements an explicit free-list heap allocator: the
// classic Knuth boundary-tag design with a doubly-linked free list,
// immediate coalescing, first-fit search and splitting, layered over a
// monotonically growable memory Region.
package listheap

// Allocator allocates and frees memory from a Region using an explicit
// free list. Unlike the teacher's zero-value-ready Allocator, this one
// needs a Region before it can do anything useful, so its zero value is
// not ready for use — call NewAllocator.
type Allocator struct {
	region Region
	opts   Options

	heapListp int // payload pointer of the prologue block
	epilogue  int // offset of the epilogue's zero-size header
	freeListp int // head of the free list, or nilOffset

	ready bool
}

// NewAllocator creates an Allocator over region and runs Init on it.
func NewAllocator(region Region, opts Options) (*Allocator, error) {
	opts.setDefaults()
	a := &Allocator{region: region, opts: opts}
	if err := a.Init(); err != nil {
		return nil, err
	}
	return a, nil
}

// NewMemAllocator is a convenience constructor that reserves a MemRegion
// sized per opts.InitialRegionBytes and wraps it in an Allocator, for
// callers that don't need to supply their own Region implementation.
func NewMemAllocator(opts Options) (*Allocator, error) {
	opts.setDefaults()
	region, err := NewMemRegion(opts.InitialRegionBytes)
	if err != nil {
		return nil, err
	}
	return NewAllocator(region, opts)
}

// Init lays down the prologue and epilogue sentinels and seeds the heap
// with one CHUNKSIZE free block, per spec.md 4.5. It fails only if the
// region provider refuses either request, in which case no partial state
// is left for the caller to observe.
func (a *Allocator) Init() error {
	base, err := a.region.Extend(4 * wordSize)
	if err != nil {
		return err
	}

	buf := a.region.Buf()
	prologueBp := base + 2*wordSize
	setTags(buf, prologueBp, dwordSize, true)

	a.heapListp = prologueBp
	a.epilogue = base + 3*wordSize
	putWord(buf, a.epilogue, packWord(0, true))
	a.freeListp = nilOffset

	if _, err := a.extend(a.opts.ChunkSize / wordSize); err != nil {
		return err
	}

	a.ready = true
	tracef("Init() heapListp=%#x epilogue=%#x", a.heapListp, a.epilogue)
	return nil
}

// Allocate reserves at least size bytes and returns the offset of the
// payload, or nilOffset for size == 0 (not an error). Per spec.md 4.5: a
// first-fit search of the free list; on a miss, extend the region by
// max(asize, CHUNKSIZE) and place there.
func (a *Allocator) Allocate(size int) (int, error) {
	if !a.ready {
		return nilOffset, ErrNotInitialized
	}
	if size < 0 {
		return nilOffset, &ErrInvalidArgument{"Allocate size must be non-negative", size}
	}
	if size == 0 {
		tracef("Allocate(0) -> nil")
		return nilOffset, nil
	}

	asize := alignUp(size)
	if bp := a.findFit(asize); bp != nilOffset {
		a.place(bp, asize)
		tracef("Allocate(%d) -> %#x (fit)", size, bp)
		return bp, nil
	}

	extendBytes := asize
	if a.opts.ChunkSize > extendBytes {
		extendBytes = a.opts.ChunkSize
	}

	bp, err := a.extend(extendBytes / wordSize)
	if err != nil {
		tracef("Allocate(%d) -> out of memory: %v", size, err)
		return nilOffset, &ErrOutOfMemory{Requested: size}
	}

	a.place(bp, asize)
	tracef("Allocate(%d) -> %#x (extended)", size, bp)
	return bp, nil
}

// Release marks the block at ptr free and coalesces it with its
// neighbors. ptr == nilOffset, or an uninitialized allocator, is a no-op.
func (a *Allocator) Release(ptr int) {
	if ptr == nilOffset || !a.ready {
		return
	}

	buf := a.region.Buf()
	size := blockSize(buf, ptr)
	setTags(buf, ptr, size, false)
	a.coalesce(ptr)
	tracef("Release(%#x)", ptr)
}

// Reallocate resizes the block at ptr to size bytes, preserving the
// min(old, new) leading bytes of its contents. ptr == nilOffset behaves as
// Allocate(size); size == 0 behaves as Release(ptr) followed by returning
// nilOffset. This is the minimum viable implementation spec.md 4.5 allows:
// it does not attempt to grow in place even when the next block is free
// and large enough.
func (a *Allocator) Reallocate(ptr int, size int) (int, error) {
	if ptr == nilOffset {
		return a.Allocate(size)
	}
	if size == 0 {
		a.Release(ptr)
		return nilOffset, nil
	}
	if !a.ready {
		return nilOffset, ErrNotInitialized
	}
	if ptr < a.region.Lo() || ptr >= a.region.Hi() {
		return nilOffset, &ErrInvalidPointer{Ptr: ptr}
	}

	buf := a.region.Buf()
	oldPayload := blockSize(buf, ptr) - dwordSize

	newPtr, err := a.Allocate(size)
	if err != nil {
		return nilOffset, err
	}

	n := oldPayload
	if size < n {
		n = size
	}

	buf = a.region.Buf() // Allocate may have extended the region.
	copy(buf[newPtr:newPtr+n], buf[ptr:ptr+n])
	a.Release(ptr)
	tracef("Reallocate(%#x, %d) -> %#x", ptr, size, newPtr)
	return newPtr, nil
}

// Close releases the underlying Region. Callers that built the Allocator
// via NewMemAllocator should call this when done; callers who supplied
// their own Region via NewAllocator own its lifecycle and should close it
// themselves instead.
func (a *Allocator) Close() error { return a.region.Close() }

// Payload returns a byte slice view over the usable payload of the block
// at ptr. It is a convenience for callers and the test suite; it is not
// part of the spec's abstract operation set.
func (a *Allocator) Payload(ptr int) []byte {
	if ptr == nilOffset {
		return nil
	}

	buf := a.region.Buf()
	return buf[ptr:ftrOff(buf, ptr)]
}

// extend grows the region by words (rounded up to even so the byte count
// stays D-aligned), lays down a new free block whose header overwrites the
// old epilogue header, writes a fresh epilogue past it, and coalesces the
// new block with whatever was previously the heap's last block. Per
// spec.md 4.5.
func (a *Allocator) extend(words int) (int, error) {
	if words <= 0 {
		return nilOffset, &ErrInvalidArgument{"extend word count must be positive", words}
	}
	if words%2 != 0 {
		words++
	}

	nBytes := words * wordSize
	base, err := a.region.Extend(nBytes)
	if err != nil {
		return nilOffset, err
	}

	buf := a.region.Buf()
	bp := base
	setTags(buf, bp, nBytes, false)

	a.epilogue = bp + nBytes - wordSize
	putWord(buf, a.epilogue, packWord(0, true))

	return a.coalesce(bp), nil
}
