// Command findstr-search prints every line containing a term in the files
// under a directory whose names match a filter.
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

	code := cli.FindstrSearch(ctx, os.Args[1:], os.Stdout)
	stop()
	os.Exit(code)
}
