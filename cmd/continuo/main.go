package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/on-the-ground/continuation_go/cmd/continuo/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cmd.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
