// Package main is the entry point for the senti CLI.
package main

import (
	"os"

	"github.com/f3rmion/senti/cmd/senti/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
