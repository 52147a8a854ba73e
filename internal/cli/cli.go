// Package cli holds the entry points of the pathtools binaries. Each function
// takes its arguments and output streams explicitly and returns the process
// exit code, so cmd/*/main.go only wires os.Args and os.Exit.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"pathtools/internal/config"
	"pathtools/internal/ctxlog"
	"pathtools/internal/dispatch"
	"pathtools/internal/model"
	"pathtools/internal/resolver"
)

const (
	exitOK      = 0
	exitFailure = 1
)

// RealpathUsage is printed to stdout on a usage error.
const RealpathUsage = `Usage: realpath <path>

Prints the absolute, symlink-free location of path if it exists,
otherwise the first <dir>/path found on the search path.
`

func loadResolver(ctx context.Context) (*resolver.Resolver, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, err
	}

	dirs := cfg.SearchDirs(os.Getenv)
	ctxlog.Debug(ctx, "search path", "var", cfg.SearchPathVar, "dirs", len(dirs))

	r := resolver.New(dirs, resolver.WithUniformCanonicalization(cfg.CanonicalizeSearchMatches))

	return r, cfg, nil
}

// Realpath resolves a single path argument.
func Realpath(ctx context.Context, args []string, stdout io.Writer) int {
	input, err := resolver.CheckArgs(args)
	if err != nil {
		fmt.Fprint(stdout, RealpathUsage)
		return exitFailure
	}

	r, _, err := loadResolver(ctx)
	if err != nil {
		ctxlog.Error(ctx, "configuration", "error", err)
		return exitFailure
	}

	res, err := r.Resolve(ctx, input)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			ctxlog.Error(ctx, "resolve failed", "input", input, "error", err)
		}
		return exitFailure
	}

	fmt.Fprintln(stdout, res.Path)

	return exitOK
}

// Findstr forwards its three arguments to the content search companion.
func Findstr(ctx context.Context, args []string, runner dispatch.Runner, stdout io.Writer) int {
	if err := dispatch.CheckSearchArgs(args); err != nil {
		fmt.Fprint(stdout, dispatch.SearchUsage("findstr"))
		return exitFailure
	}

	r, cfg, err := loadResolver(ctx)
	if err != nil {
		ctxlog.Error(ctx, "configuration", "error", err)
		return exitFailure
	}

	d := dispatch.NewSearch(cfg.FindstrProgram, r, runner, resolver.Canonicalize)

	code, err := d.Dispatch(ctx, args)

	return finish(ctx, code, err)
}

// Dirsb forwards its two or three arguments to the listing companion.
func Dirsb(ctx context.Context, args []string, runner dispatch.Runner, stdout io.Writer) int {
	if err := dispatch.CheckListArgs(args); err != nil {
		fmt.Fprint(stdout, dispatch.ListUsage("dirsb"))
		return exitFailure
	}

	r, cfg, err := loadResolver(ctx)
	if err != nil {
		ctxlog.Error(ctx, "configuration", "error", err)
		return exitFailure
	}

	d := dispatch.NewList(cfg.DirsbProgram, r, runner)

	code, err := d.Dispatch(ctx, args)

	return finish(ctx, code, err)
}

func finish(ctx context.Context, code int, err error) int {
	if err != nil {
		ctxlog.Error(ctx, "dispatch failed", "error", err)
	}

	return code
}
