package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"jpdiet/kokkaiharvester/internal/cli"
	"jpdiet/kokkaiharvester/logger"
)

func main() {
	// .env is optional; environment variables win either way
	_ = godotenv.Load()

	logger.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.ExecuteContext(ctx); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}
