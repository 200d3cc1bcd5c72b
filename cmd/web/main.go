package main

import (
	"context"
	"log/slog"
	"os"

	"pledgewall/internal/app/bootstrap"
)

func main() {
	ctx := context.Background()

	app, err := bootstrap.Build(ctx)
	if err != nil {
		slog.Error("bootstrap failed",
			"event", "bootstrap_failed",
			"error", err.Error(),
		)
		os.Exit(1)
	}
	defer func() {
		_ = app.Close()
	}()

	if err := app.Run(); err != nil {
		app.Logger.Error("server stopped",
			"event", "http_server_stopped",
			"error", err.Error(),
		)
		os.Exit(1)
	}
}
