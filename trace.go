// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package listheap

import (
	"fmt"
	"os"
)

// trace enables verbose, stderr-bound diagnostics of every public call.
// Flip it on locally while chasing a corruption; it is never read from an
// environment variable or flag because the allocator has no other ambient
// configuration surface and this one is a recompile-and-go switch like the
// teacher's own.
const trace = false

func tracef(s string, va ...interface{}) {
	if !trace {
		return
	}
	fmt.Fprintf(os.Stderr, s, va...)
	fmt.Fprintln(os.Stderr)
}
