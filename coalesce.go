// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package listheap

// coalesce normalizes the block at bp — already marked free but not yet on
// the free list — against its address-adjacent neighbors, merging with
// whichever of them are also free, and adds the (possibly grown,
// possibly relocated) result to the free list. Returns the block's final
// payload pointer. The four cases mirror spec.md 4.4; the prologue's
// allocated footer and the epilogue's allocated header make both boundary
// cases fall through without special-casing the ends of the heap.
func (a *Allocator) coalesce(bp int) int {
	buf := a.region.Buf()
	prev := prevBlock(buf, bp)
	next := nextBlock(buf, bp)
	prevFree := !blockAlloc(buf, prev)
	nextFree := !blockAlloc(buf, next)
	size := blockSize(buf, bp)

	switch {
	case !prevFree && !nextFree:
		a.flAdd(bp)
		return bp

	case !prevFree && nextFree:
		a.flRemove(next)
		size += blockSize(buf, next)
		setTags(buf, bp, size, false)
		a.flAdd(bp)
		return bp

	case prevFree && !nextFree:
		a.flRemove(prev)
		size += blockSize(buf, prev)
		setTags(buf, prev, size, false)
		a.flAdd(prev)
		return prev

	default: // both free
		a.flRemove(prev)
		a.flRemove(next)
		size += blockSize(buf, prev) + blockSize(buf, next)
		setTags(buf, prev, size, false)
		a.flAdd(prev)
		return prev
	}
}
