// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command heapcheck replays a trace of allocator operations against a fresh
// listheap.Allocator, running Verify after every step, and reports the
// first invariant violation it finds.
//
// Trace format, one operation per line:
//
//	a <id> <size>   allocate size bytes, remembered under id
//	f <id>          release the pointer remembered under id
//	r <id> <size>   reallocate the pointer remembered under id to size bytes
//
// Blank lines and lines starting with # are ignored.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hanahabibi/listheap"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	fs := flag.NewFlagSet("heapcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	chunkSize := fs.Int("chunksize", 4096, "allocator CHUNKSIZE in bytes")
	regionBytes := fs.Int("region", 64<<20, "reserved region size in bytes")
	verbose := fs.Bool("v", false, "log every operation as it replays")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "usage: heapcheck [flags] <tracefile>")
		return 2
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer f.Close()

	a, err := listheap.NewMemAllocator(listheap.Options{ChunkSize: *chunkSize, InitialRegionBytes: *regionBytes})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer a.Close()

	live := map[string]int{}
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		if err := step(a, live, fields); err != nil {
			fmt.Fprintf(stderr, "line %d: %v\n", line, err)
			return 1
		}
		if *verbose {
			fmt.Fprintf(stdout, "line %d: %s ok\n", line, text)
		}

		if rep, verr := a.Verify(nil); verr != nil {
			fmt.Fprintf(stderr, "line %d: heap corrupt: %v\n", line, verr)
			return 1
		} else if *verbose {
			fmt.Fprintf(stdout, "  verify: %+v\n", *rep)
		}
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	fmt.Fprintln(stdout, "ok")
	return 0
}

func step(a *listheap.Allocator, live map[string]int, fields []string) error {
	if len(fields) == 0 {
		return fmt.Errorf("empty operation")
	}

	op, id := fields[0], ""
	if len(fields) > 1 {
		id = fields[1]
	}

	switch op {
	case "a":
		if len(fields) != 3 {
			return fmt.Errorf("a <id> <size>: got %q", fields)
		}
		size, err := strconv.Atoi(fields[2])
		if err != nil {
			return err
		}
		p, err := a.Allocate(size)
		if err != nil {
			return err
		}
		live[id] = p

	case "f":
		if len(fields) != 2 {
			return fmt.Errorf("f <id>: got %q", fields)
		}
		p, ok := live[id]
		if !ok {
			return fmt.Errorf("release of unknown id %q", id)
		}
		a.Release(p)
		delete(live, id)

	case "r":
		if len(fields) != 3 {
			return fmt.Errorf("r <id> <size>: got %q", fields)
		}
		p, ok := live[id]
		if !ok {
			return fmt.Errorf("reallocate of unknown id %q", id)
		}
		size, err := strconv.Atoi(fields[2])
		if err != nil {
			return err
		}
		np, err := a.Reallocate(p, size)
		if err != nil {
			return err
		}
		live[id] = np

	default:
		return fmt.Errorf("unknown operation %q", op)
	}

	return nil
}
