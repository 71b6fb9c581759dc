// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package listheap

// place carves asize bytes out of the free block at bp (csize >= asize),
// splitting off a remainder when it would still meet MIN_BLOCK, per
// spec.md 4.3. The allocated prefix keeps bp as its payload pointer; any
// remainder is the high half and is returned to the free list.
func (a *Allocator) place(bp, asize int) {
	buf := a.region.Buf()
	csize := blockSize(buf, bp)

	a.flRemove(bp)
	if csize-asize >= minBlock {
		setTags(buf, bp, asize, true)
		rp := bp + asize
		setTags(buf, rp, csize-asize, false)
		a.flAdd(rp)
		return
	}

	setTags(buf, bp, csize, true)
}
