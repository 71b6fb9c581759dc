// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package listheap

// nilOffset is the sentinel for "no block" everywhere a block pointer is
// stored: an empty free list, a missing prev/next neighbor, and the null
// returned by Allocate for a zero-size request. It doubles safely as all
// three because the prologue permanently occupies the low end of every
// region, so a real block's payload offset is never 0 (spec.md section 9,
// "Sentinel vs. null").
const nilOffset = 0

// A free block's payload stores its list links in its first two words:
// prev_free at offset 0, next_free at offset W — both D-aligned-region
// offsets rather than raw addresses (spec.md section 9, "Word-sized pointer
// storage").
func getPrevFree(buf []byte, bp int) int { return int(getWord(buf, bp)) }
func setPrevFree(buf []byte, bp, v int)  { putWord(buf, bp, uint32(v)) }
func getNextFree(buf []byte, bp int) int { return int(getWord(buf, bp+wordSize)) }
func setNextFree(buf []byte, bp, v int)  { putWord(buf, bp+wordSize, uint32(v)) }

// flAdd inserts bp at the head of the free list (LIFO), per spec.md 4.2.
func (a *Allocator) flAdd(bp int) {
	buf := a.region.Buf()
	if a.freeListp == nilOffset {
		a.freeListp = bp
		setPrevFree(buf, bp, nilOffset)
		setNextFree(buf, bp, nilOffset)
		return
	}

	setPrevFree(buf, a.freeListp, bp)
	setPrevFree(buf, bp, nilOffset)
	setNextFree(buf, bp, a.freeListp)
	a.freeListp = bp
}

// flRemove unlinks bp from the free list. The four cases follow the table
// in spec.md 4.2 keyed on whether bp's neighbors are sentinels.
func (a *Allocator) flRemove(bp int) {
	buf := a.region.Buf()
	prev := getPrevFree(buf, bp)
	next := getNextFree(buf, bp)

	switch {
	case prev == nilOffset && next == nilOffset:
		a.freeListp = nilOffset
	case prev == nilOffset && next != nilOffset:
		a.freeListp = next
		setPrevFree(buf, next, nilOffset)
	case prev != nilOffset && next == nilOffset:
		setNextFree(buf, prev, nilOffset)
	default:
		setNextFree(buf, prev, next)
		setPrevFree(buf, next, prev)
	}
}

// findFit is the first-fit search: the first free-list block whose size is
// at least asize, or nilOffset if none qualifies.
func (a *Allocator) findFit(asize int) int {
	buf := a.region.Buf()
	for bp := a.freeListp; bp != nilOffset; bp = getNextFree(buf, bp) {
		if blockSize(buf, bp) >= asize {
			return bp
		}
	}
	return nilOffset
}
