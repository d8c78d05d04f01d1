// Command seasonsim schedules season events, simulates them day by day, and
// aggregates the outcomes into standings and season history.
//
// Usage:
//
//	seasonsim run --schedule season.yaml --config sim.yaml
//	seasonsim standings --db seasonsim.db
//	seasonsim checkpoints list
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/me/seasonsim/internal/cli"
)

func main() {
	// Optional; env vars may also come from the shell.
	_ = godotenv.Load()

	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
