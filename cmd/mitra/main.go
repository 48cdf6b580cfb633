package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/mitrakurir/internal/client/cli"
	"github.com/dmitrijs2005/mitrakurir/internal/client/config"
	"github.com/dmitrijs2005/mitrakurir/internal/flagx"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(2)
	}

	root := cli.NewRootCommand(func(ctx context.Context, in io.Reader, out io.Writer) (*cli.App, error) {
		return cli.NewApp(ctx, cfg, in, out)
	})
	root.SetArgs(flagx.StripArgs(os.Args[1:], config.FlagNames))

	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
