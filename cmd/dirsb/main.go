// Command dirsb lists matching entries under a directory by delegating to
// the dirsb-list companion found on the search path.
package main

import (
	"context"
	"os"

	"pathtools/internal/cli"
	"pathtools/internal/ctxlog"
	"pathtools/internal/dispatch"
)

func main() {
	ctx := ctxlog.New(context.Background(), nil)
	os.Exit(cli.Dirsb(ctx, os.Args[1:], dispatch.NewExecRunner(), os.Stdout))
}
