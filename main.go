package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"studentpoints_client/internals/commands"
	"studentpoints_client/internals/configs"
)

func main() {
	configs.LoadEnv()

	// Ctrl+C membatalkan request yang sedang berjalan / mematikan fake-api dengan rapi
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := commands.Execute(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "❌", commands.ErrorMessage(err))
		stop()
		os.Exit(1)
	}
}
