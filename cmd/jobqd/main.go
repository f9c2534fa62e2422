// Command jobqd runs a durable shell-command job queue: enqueue
// commands, run worker processes that claim and execute them, and
// inspect queue state, all backed by the store package (spec.md §6).
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
