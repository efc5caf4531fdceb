// Command worker keeps driver and owner-dispatcher verification in sync from identity events.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"cargo-platform-go/internal/app"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	container := app.MustBuildWorkerContainer(ctx)
	app.NewWorkerRunner().MustRun(container)
}
