package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/cambios/internal/cli"
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		// The logger may not be initialized when configuration fails.
		os.Stderr.WriteString("cambios: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}
