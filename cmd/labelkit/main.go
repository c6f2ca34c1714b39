// Package main provides the entry point for the labelkit CLI tool.
package main

import (
	"os"

	"github.com/labelkit/labelkit/cmd/labelkit/cmd"
)

func main() {
	if err := cmd.Execute(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
