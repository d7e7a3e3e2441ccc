package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"bookdrive/internal/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		log.Printf("error: %v", err)
		os.Exit(errors.ExitCode(err))
	}
}
