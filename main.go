// Package main is the entry point for the techpulse CLI
package main

import (
	"github.com/joho/godotenv"

	"github.com/petergeorgioutech/techpulse-news/cmd"
)

// Set at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	godotenv.Load()

	cmd.SetVersionInfo(version, commit, date)
	cmd.Execute()
}
