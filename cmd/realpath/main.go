// Command realpath prints the absolute location of a path or command name.
package main

import (
	"context"
	"os"

	"pathtools/internal/cli"
	"pathtools/internal/ctxlog"
)

func main() {
	ctx := ctxlog.New(context.Background(), nil)
	os.Exit(cli.Realpath(ctx, os.Args[1:], os.Stdout))
}
