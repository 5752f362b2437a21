// Command presalesctl is the terminal client for the pre-sales asset
// manager: sign in, inspect the session, and administer master lists.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"presales/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
