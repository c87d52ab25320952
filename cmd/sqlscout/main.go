// Package main provides the sqlscout CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/sqlscout/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
