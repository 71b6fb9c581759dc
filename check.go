// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package listheap

import "fmt"

// FindingKind enumerates the invariant violations Verify can report,
// mirroring the six checks spec.md 4.6 names (its combined "bounds &
// alignment" invariant #5 is split across FindingOutOfBounds and
// FindingMisaligned).
type FindingKind int

const (
	_ FindingKind = iota
	FindingFreeMarking   // a free-list entry is not marked free
	FindingAdjacentFree  // two free blocks are address-adjacent
	FindingLostFreeBlock // a free block in the heap traversal is absent from the free list
	FindingOutOfBounds   // a block's footer runs past the region's high bound
	FindingMisaligned    // a payload pointer is not alignment-aligned
	FindingTagMismatch   // a free block's header and footer disagree
	FindingOverlap       // an allocated block's footer doesn't abut the next header
)

// Finding is a single invariant violation discovered by Verify. It
// implements error so a caller can return one directly.
type Finding struct {
	Kind FindingKind
	Off  int
	Msg  string
}

func (f *Finding) Error() string { return fmt.Sprintf("listheap: %s at offset %#x", f.Msg, f.Off) }

// VerifyReport summarizes a successful Verify pass.
type VerifyReport struct {
	Blocks     int
	FreeBlocks int
	AllocBytes int
	FreeBytes  int
}

// Verify audits the invariants listed in spec.md 4.6. It is callable at any
// quiescent point (no operation in progress). log, if non-nil, is invoked
// once per violation found; returning false from log stops the pass early
// and Verify returns that Finding as an error. A nil log stops at the
// first violation. Verify returns a nil error when no violation was found,
// or when log returned true for every violation it was given; the
// *VerifyReport it returns is never nil.
func (a *Allocator) Verify(log func(*Finding) bool) (*VerifyReport, error) {
	if log == nil {
		log = func(*Finding) bool { return false }
	}

	buf := a.region.Buf()
	report := &VerifyReport{}

	// Free-list marking (spec.md 4.6 #1) and membership bookkeeping for
	// the completeness check (#3) below.
	inFreeList := map[int]bool{}
	for bp := a.freeListp; bp != nilOffset; bp = getNextFree(buf, bp) {
		if blockAlloc(buf, bp) {
			f := &Finding{FindingFreeMarking, bp, "free-list entry marked allocated"}
			if !log(f) {
				return report, f
			}
		}
		inFreeList[bp] = true
	}

	prevFree := false
	for bp := a.heapListp; ; bp = nextBlock(buf, bp) {
		if bp%alignment != 0 {
			f := &Finding{FindingMisaligned, bp, "payload pointer is not alignment-aligned"}
			if !log(f) {
				return report, f
			}
		}

		size := blockSize(buf, bp)
		if size == 0 {
			break // epilogue reached: traversal complete (spec.md 4.6 #2 implicitly holds)
		}

		if ftrOff(buf, bp)+wordSize > a.region.Hi() {
			f := &Finding{FindingOutOfBounds, bp, "block footer runs past the region's high bound"}
			if !log(f) {
				return report, f
			}
			break
		}

		isFree := !blockAlloc(buf, bp)
		if isFree {
			hdrWord := getWord(buf, hdrOff(bp))
			ftrWord := getWord(buf, ftrOff(buf, bp))
			if hdrWord != ftrWord {
				f := &Finding{FindingTagMismatch, bp, "free block header/footer disagree"}
				if !log(f) {
					return report, f
				}
			}

			report.FreeBlocks++
			report.FreeBytes += size
			if prevFree {
				f := &Finding{FindingAdjacentFree, bp, "address-adjacent free blocks"}
				if !log(f) {
					return report, f
				}
			}
			if !inFreeList[bp] {
				f := &Finding{FindingLostFreeBlock, bp, "free block missing from the free list"}
				if !log(f) {
					return report, f
				}
			}
		} else {
			if got, want := ftrOff(buf, bp)+wordSize, hdrOff(nextBlock(buf, bp)); got != want {
				f := &Finding{FindingOverlap, bp, "allocated block's footer does not abut the next block's header"}
				if !log(f) {
					return report, f
				}
			}

			report.AllocBytes += size - dwordSize
		}

		report.Blocks++
		prevFree = isFree
	}

	return report, nil
}
