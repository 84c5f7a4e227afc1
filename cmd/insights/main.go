package main

import (
	"os"

	"github.com/ahmednasr/repo-insights/internal/cli"
)

// main is the single entry‑point for the runner.
func main() {
	os.Exit(cli.Execute())
}
