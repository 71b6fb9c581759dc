// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package listheap

import "testing"

func TestVerifyClean(t *testing.T) {
	a := mustAllocator(t, Options{ChunkSize: chunkSize})
	for i := 0; i < 8; i++ {
		if _, err := a.Allocate(1 + i*7); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := a.Verify(nil); err != nil {
		t.Fatalf("unexpected finding on a healthy heap: %v", err)
	}
}

func TestVerifyDetectsTagMismatch(t *testing.T) {
	a := mustAllocator(t, Options{ChunkSize: chunkSize})
	buf := a.region.Buf()

	// The initial chunk minus its sentinels is one big free block at
	// a.heapListp's successor. Corrupt its footer directly.
	bp := nextBlock(buf, a.heapListp)
	putWord(buf, ftrOff(buf, bp), packWord(blockSize(buf, bp)+8, false))

	_, err := a.Verify(nil)
	f, ok := err.(*Finding)
	if !ok {
		t.Fatalf("expected a *Finding, got %v (%T)", err, err)
	}
	if f.Kind != FindingTagMismatch {
		t.Fatalf("expected FindingTagMismatch, got %v", f.Kind)
	}
}

func TestVerifyDetectsLostFreeBlock(t *testing.T) {
	a := mustAllocator(t, Options{ChunkSize: chunkSize})

	// Silently detach the initial free block from the list without
	// touching its header/footer, simulating a free-list bookkeeping bug.
	bp := a.freeListp
	a.freeListp = nilOffset

	_, err := a.Verify(nil)
	f, ok := err.(*Finding)
	if !ok {
		t.Fatalf("expected a *Finding, got %v (%T)", err, err)
	}
	if f.Kind != FindingLostFreeBlock {
		t.Fatalf("expected FindingLostFreeBlock, got %v", f.Kind)
	}
	if f.Off != bp {
		t.Fatalf("finding offset: got %#x want %#x", f.Off, bp)
	}
}

func TestVerifyDetectsFreeMarking(t *testing.T) {
	a := mustAllocator(t, Options{ChunkSize: chunkSize})
	buf := a.region.Buf()

	// Mark the one free-list entry allocated in its tags, while leaving
	// it linked into the free list.
	bp := a.freeListp
	setTags(buf, bp, blockSize(buf, bp), true)

	_, err := a.Verify(nil)
	f, ok := err.(*Finding)
	if !ok {
		t.Fatalf("expected a *Finding, got %v (%T)", err, err)
	}
	if f.Kind != FindingFreeMarking {
		t.Fatalf("expected FindingFreeMarking, got %v", f.Kind)
	}
}

func TestVerifyDetectsAdjacentFree(t *testing.T) {
	a := mustAllocator(t, Options{ChunkSize: 96})
	buf := a.region.Buf()

	pa, err := a.Allocate(24)
	if err != nil {
		t.Fatal(err)
	}
	pb, err := a.Allocate(24)
	if err != nil {
		t.Fatal(err)
	}

	// Free both but bypass coalesce, so two free blocks sit address-adjacent
	// without having been merged into one.
	setTags(buf, pa, blockSize(buf, pa), false)
	a.flAdd(pa)
	setTags(buf, pb, blockSize(buf, pb), false)
	a.flAdd(pb)

	_, err = a.Verify(nil)
	f, ok := err.(*Finding)
	if !ok {
		t.Fatalf("expected a *Finding, got %v (%T)", err, err)
	}
	if f.Kind != FindingAdjacentFree {
		t.Fatalf("expected FindingAdjacentFree, got %v", f.Kind)
	}
}

func TestVerifyLogCallbackCollectsAll(t *testing.T) {
	a := mustAllocator(t, Options{ChunkSize: chunkSize})
	buf := a.region.Buf()

	bp := a.freeListp
	setTags(buf, bp, blockSize(buf, bp), true)  // FindingFreeMarking: still linked into the free list
	setTags(buf, a.heapListp, dwordSize, false) // also FindingLostFreeBlock: the prologue now reads as a free block absent from the free list

	var found []*Finding
	_, err := a.Verify(func(f *Finding) bool {
		found = append(found, f)
		return true // keep going
	})
	if err != nil {
		t.Fatalf("log callback returning true must suppress the error: %v", err)
	}
	if len(found) == 0 {
		t.Fatal("expected at least one finding to be collected")
	}
}
