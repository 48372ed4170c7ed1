package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/pathcopycopy/pathcopy/internal/cli"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return cli.Main(ctx, version)
}
