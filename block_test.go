// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package listheap

import "testing"

func TestPackAndAccessors(t *testing.T) {
	buf := make([]byte, 64)
	bp := 16 // pretend payload pointer; room for a header before it

	setTags(buf, bp, 32, true)
	if g, e := blockSize(buf, bp), 32; g != e {
		t.Fatalf("size: got %d want %d", g, e)
	}
	if !blockAlloc(buf, bp) {
		t.Fatal("expected alloc bit set")
	}
	if g, e := getWord(buf, hdrOff(bp)), getWord(buf, ftrOff(buf, bp)); g != e {
		t.Fatalf("header %#x != footer %#x", g, e)
	}

	setTags(buf, bp, 32, false)
	if blockAlloc(buf, bp) {
		t.Fatal("expected alloc bit clear")
	}
}

func TestNextPrevBlock(t *testing.T) {
	buf := make([]byte, 128)
	a := 16
	setTags(buf, a, 24, true)
	b := nextBlock(buf, a)
	setTags(buf, b, 40, false)
	c := nextBlock(buf, b)
	setTags(buf, c, 16, true)

	if g, e := b, a+24; g != e {
		t.Fatalf("nextBlock(a): got %#x want %#x", g, e)
	}
	if g, e := prevBlock(buf, b), a; g != e {
		t.Fatalf("prevBlock(b): got %#x want %#x", g, e)
	}
	if g, e := prevBlock(buf, c), b; g != e {
		t.Fatalf("prevBlock(c): got %#x want %#x", g, e)
	}
}

func TestAlignUp(t *testing.T) {
	cases := []struct{ size, want int }{
		{0, minBlock},
		{1, minBlock},
		{8, minBlock},
		{9, 24},
		{16, 24},
		{17, 32},
		{24, 32},
	}
	for _, c := range cases {
		if g := alignUp(c.size); g != c.want {
			t.Errorf("alignUp(%d): got %d want %d", c.size, g, c.want)
		}
	}
}
