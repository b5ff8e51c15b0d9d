// dtcp - a duplex TCP relay between stdin/stdout and one peer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dtcp/cmd"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "dtcp: %v\n", err)
		os.Exit(1)
	}
}
