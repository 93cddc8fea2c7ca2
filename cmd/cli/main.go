package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sevigo/pr-warden/internal/core"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		// A rejected pull request has already been reported to the user.
		if !errors.Is(err, core.ErrRejected) {
			slog.Error("pr-warden failed to run", "error", err)
		}
		os.Exit(1)
	}
}
