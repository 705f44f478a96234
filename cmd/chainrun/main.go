// Command chainrun counts the bytes of text files by pushing them through a
// ReadFile -> Counter chain with one of the three runners.
//
// Usage:
//
//	chainrun count FILE... [--mode sync|inline|scheduled] [--copies N] [--config FILE] [--verbose]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
