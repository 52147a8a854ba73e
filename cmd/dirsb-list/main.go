// Command dirsb-list prints the entries under a directory whose names match a
// filter, pruning paths matched by an exclusion pattern.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"pathtools/internal/cli"
	"pathtools/internal/ctxlog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	ctx = ctxlog.New(ctx, nil)

	code := cli.DirsbList(ctx, os.Args[1:], os.Stdout)
	stop()
	os.Exit(code)
}
