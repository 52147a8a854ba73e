// Command findstr searches file contents under a directory by delegating to
// the findstr-search companion found on the search path.
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
	os.Exit(cli.Findstr(ctx, os.Args[1:], dispatch.NewExecRunner(), os.Stdout))
}
