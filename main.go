// ABOUTME: Entry point for the ssnapify CLI
// ABOUTME: Command-line and TUI client for the ssnapify image service

package main

import (
	"fmt"
	"os"

	"github.com/jothyanandanch/ssnapify/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
