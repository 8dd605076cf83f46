package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"bookstore-admin/bookctl/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "bookctl:", err)
		os.Exit(1)
	}
}
