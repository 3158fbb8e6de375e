// pcrchat - A terminal client for a simple TCP group chat.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pcrchat/cmd"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "pcrchat: %v\n", err)
		os.Exit(1)
	}
}
