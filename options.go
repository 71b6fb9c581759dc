// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package listheap

// Options amend the behavior of NewAllocator. The compatibility promise is
// the same as for struct types in the Go standard library: add fields, never
// remove or repurpose one.
type Options struct {
	// ChunkSize is the number of bytes requested from the region provider
	// whenever the free list has no fit and the heap must grow. Must be a
	// positive multiple of the double word size (8). Defaults to 4096.
	ChunkSize int

	// InitialRegionBytes is the amount of address space the default
	// MemRegion reserves up front. It is a ceiling, not a commitment: the
	// allocator still only asks the region for what it needs via Extend.
	// Defaults to 64 MiB.
	InitialRegionBytes int
}

// DefaultOptions returns the Options spec.md names: CHUNKSIZE = 4096, and a
// generous region reservation suitable for tests and small programs.
func DefaultOptions() Options {
	return Options{
		ChunkSize:          chunkSize,
		InitialRegionBytes: 64 << 20,
	}
}

func (o *Options) setDefaults() {
	if o.ChunkSize <= 0 {
		o.ChunkSize = chunkSize
	}
	if o.InitialRegionBytes <= 0 {
		o.InitialRegionBytes = 64 << 20
	}
}
