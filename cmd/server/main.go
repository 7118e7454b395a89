// Package main is the entry point for the courses API.
//
// All the work happens in internal/command; main only wires the root
// context to SIGINT so Ctrl+C cancels whatever command is running.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/vmccready/techdegree-project-9/internal/command"
)

func main() { os.Exit(run()) }

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := command.RootCommand().ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
