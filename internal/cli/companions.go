package cli

import (
	"context"
	"fmt"
	"io"

	"pathtools/internal/ctxlog"
	"pathtools/internal/dispatch"
	"pathtools/internal/model"
	"pathtools/internal/scan"
)

// FindstrSearch is the content search companion.
func FindstrSearch(ctx context.Context, args []string, stdout io.Writer) int {
	if len(args) != 3 {
		fmt.Fprint(stdout, dispatch.SearchUsage("findstr-search"))
		return exitFailure
	}

	root := model.ExpandTilde(args[0])

	if err := scan.NewSearcher(stdout).Search(ctx, root, args[1], args[2]); err != nil {
		ctxlog.Error(ctx, "search failed", "root", root, "error", err)
		return exitFailure
	}

	return exitOK
}

// DirsbList is the listing companion.
func DirsbList(ctx context.Context, args []string, stdout io.Writer) int {
	if dispatch.CheckListArgs(args) != nil {
		fmt.Fprint(stdout, dispatch.ListUsage("dirsb-list"))
		return exitFailure
	}

	expr := dispatch.DefaultExclude
	if len(args) == 3 {
		expr = args[2]
	}

	exclude, err := scan.CompileExclude(expr)
	if err != nil {
		ctxlog.Error(ctx, "bad exclude pattern", "error", err)
		return exitFailure
	}

	root := model.ExpandTilde(args[0])

	if err := scan.NewLister(stdout, exclude).List(ctx, root, args[1]); err != nil {
		ctxlog.Error(ctx, "listing failed", "root", root, "error", err)
		return exitFailure
	}

	return exitOK
}
