// Command holofavs browses the Star Wars catalog and manages the user's
// favorites against the HoloFavs backend.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/atinyakov/HoloFavs/internal/config"
)

var (
	version   string
	buildDate string
)

func main() {
	opts := config.DefaultClient()
	if err := opts.ApplyEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(opts).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
