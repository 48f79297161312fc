//go:build !cgo
// +build !cgo

package main

import (
	"fmt"
	"os"
)

func main() {
	opts := parseFlags()
	if !opts.headless && !opts.showVersion && !opts.dumpConfig {
		fmt.Fprintln(os.Stderr, "Built without cgo; the window client is unavailable, using the terminal interface.")
	}
	os.Exit(run(opts, nil))
}
