// Package dispatch forwards positional arguments to companion programs.
//
// A dispatcher validates its argument count, asks a Locator where the companion
// lives, runs it through a Runner with an explicit argument vector and returns
// the companion's exit code unchanged.
package dispatch

import (
	"context"
	"fmt"
	"path/filepath"

	"pathtools/internal/ctxlog"
	"pathtools/internal/model"
)

// DefaultExclude is forwarded by the list dispatcher when no exclusion pattern is given.
// It is not expected to match any real entry.
const DefaultExclude = "###"

// ExitUsage is the exit code for usage errors and unresolvable companions.
const ExitUsage = 1

// Locator finds an executable by name.
type Locator interface {
	Locate(ctx context.Context, name string) (string, error)
}

// LocatorFunc adapts a function to the Locator interface.
type LocatorFunc func(ctx context.Context, name string) (string, error)

// Locate implements Locator.
func (f LocatorFunc) Locate(ctx context.Context, name string) (string, error) {
	return f(ctx, name)
}

// Runner starts a program with the given arguments and waits for it.
type Runner interface {
	Run(ctx context.Context, program string, args []string) (int, error)
}

// Dispatcher holds what both dispatchers share: the companion name and how to find and run it.
type Dispatcher struct {
	Program string
	Locator Locator
	Runner  Runner
}

func (d *Dispatcher) invoke(ctx context.Context, args []string) (int, error) {
	logger := ctxlog.Logger(ctx).With("program", d.Program)

	path, err := d.Locator.Locate(ctx, d.Program)
	if err != nil {
		return ExitUsage, fmt.Errorf("locate companion %s: %w", d.Program, err)
	}

	logger.Debug("running companion", "path", path, "args", args)

	code, err := d.Runner.Run(ctx, path, args)
	logger.Debug("companion finished", "exitCode", code)

	return code, err
}

// SearchDispatcher forwards (directory, fileFilter, searchTerm) to the content search companion.
type SearchDispatcher struct {
	Dispatcher
	Canonicalize func(string) (string, error)
}

// NewSearch creates a SearchDispatcher.
func NewSearch(program string, locator Locator, runner Runner, canonicalize func(string) (string, error)) *SearchDispatcher {
	return &SearchDispatcher{
		Dispatcher:   Dispatcher{Program: program, Locator: locator, Runner: runner},
		Canonicalize: canonicalize,
	}
}

// CheckSearchArgs validates the argument count of the search dispatcher.
func CheckSearchArgs(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("%w: expected 3 arguments, got %d", model.ErrUsage, len(args))
	}

	return nil
}

// Dispatch validates args, canonicalizes the directory and runs the companion.
func (s *SearchDispatcher) Dispatch(ctx context.Context, args []string) (int, error) {
	if err := CheckSearchArgs(args); err != nil {
		return ExitUsage, err
	}

	return s.invoke(ctx, []string{s.canonicalDir(ctx, args[0]), args[1], args[2]})
}

// canonicalDir falls back to the cleaned absolute path when the directory cannot
// be canonicalized, leaving the companion to report a missing directory.
func (s *SearchDispatcher) canonicalDir(ctx context.Context, dir string) string {
	if s.Canonicalize != nil {
		canonical, err := s.Canonicalize(dir)
		if err == nil {
			return canonical
		}

		ctxlog.Debug(ctx, "directory not canonicalized", "dir", dir, "error", err)
	}

	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}

	return dir
}

// ListDispatcher forwards (directory, fileFilter, excludeRegex) to the listing companion.
type ListDispatcher struct {
	Dispatcher
}

// NewList creates a ListDispatcher.
func NewList(program string, locator Locator, runner Runner) *ListDispatcher {
	return &ListDispatcher{
		Dispatcher: Dispatcher{Program: program, Locator: locator, Runner: runner},
	}
}

// CheckListArgs validates the argument count of the list dispatcher.
func CheckListArgs(args []string) error {
	if len(args) != 2 && len(args) != 3 {
		return fmt.Errorf("%w: expected 2 or 3 arguments, got %d", model.ErrUsage, len(args))
	}

	return nil
}

// Dispatch validates args, fills in the default exclusion and runs the companion.
func (l *ListDispatcher) Dispatch(ctx context.Context, args []string) (int, error) {
	if err := CheckListArgs(args); err != nil {
		return ExitUsage, err
	}

	exclude := DefaultExclude
	if len(args) == 3 {
		exclude = args[2]
	}

	return l.invoke(ctx, []string{args[0], args[1], exclude})
}
