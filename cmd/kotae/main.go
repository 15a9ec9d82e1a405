// Package main is the kotae CLI entry point.
package main

import (
	"os"

	"github.com/hyperjump/kotae/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
