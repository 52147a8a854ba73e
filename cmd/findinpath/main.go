// Command findinpath reports where a name is found on the search path.
package main

import (
	"context"
	"os"

	"pathtools/internal/cli"
	"pathtools/internal/ctxlog"
)

func main() {
	ctx := ctxlog.New(context.Background(), nil)
	os.Exit(cli.Findinpath(ctx, os.Args[1:], os.Stdout, os.Stderr))
}
