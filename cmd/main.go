// Package main is the entry point of Coverflow, a circular cover-flow carousel.
//
// Coverflow is built with clean architecture:
// - Event-driven communication (ready/change/scratch-complete events)
// - Dependency injection for testability
// - MVP pattern for UI decoupling
// - A headless simulator sharing the carousel core with the desktop UI
//
// Build:
//
//	go build -o build/coverflow ./cmd
//
// Run:
//
//	./build/coverflow show --library ~/Pictures
//	./build/coverflow simulate next next "advance 500ms"
package main

import (
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
