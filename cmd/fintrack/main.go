package main

import (
	"os"

	"github.com/rustyeddy/fintrack/cmd/fintrack/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
