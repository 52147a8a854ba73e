// Package resolver turns a path or command name into a filesystem location.
//
// Resolution tries the input as given first (relative to the working
// directory, or absolute) and returns it canonicalized. Failing that, it tries
// each search directory in order and returns the first "dir/input" that
// exists, exactly as built.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"pathtools/internal/ctxlog"
	"pathtools/internal/model"
)

// FsFactory returns the filesystem existence checks run against.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// helpTokens are treated as a request for usage when given as the only argument.
var helpTokens = map[string]struct{}{
	"-h":        {},
	"--help":    {},
	"--?":       {},
	"--version": {},
	"-?":        {},
	"-help":     {},
}

// IsHelpToken reports whether arg is one of the recognized help flags.
func IsHelpToken(arg string) bool {
	_, ok := helpTokens[arg]
	return ok
}

// CheckArgs validates the raw argument list and returns the single input.
func CheckArgs(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%w: expected 1 argument, got %d", model.ErrUsage, len(args))
	}

	if args[0] == "" || IsHelpToken(args[0]) {
		return "", fmt.Errorf("%w: help requested", model.ErrUsage)
	}

	return args[0], nil
}

// Canonicalize makes path absolute, resolves every symlink and removes . and .. segments.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return filepath.EvalSymlinks(abs)
}

// Resolver implements the resolution algorithm over an injected list of directories.
type Resolver struct {
	fs           afero.Fs
	dirs         []string
	canonicalize func(string) (string, error)
	uniform      bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithFs overrides the filesystem (FsFactory by default).
func WithFs(fs afero.Fs) Option {
	return func(r *Resolver) {
		r.fs = fs
	}
}

// WithCanonicalizer overrides the canonicalization primitive (Canonicalize by default).
func WithCanonicalizer(fn func(string) (string, error)) Option {
	return func(r *Resolver) {
		r.canonicalize = fn
	}
}

// WithUniformCanonicalization also canonicalizes matches found on the search path.
func WithUniformCanonicalization(enabled bool) Option {
	return func(r *Resolver) {
		r.uniform = enabled
	}
}

// New creates a Resolver searching dirs in order.
func New(dirs []string, opts ...Option) *Resolver {
	r := &Resolver{
		fs:           FsFactory(),
		dirs:         append([]string(nil), dirs...),
		canonicalize: Canonicalize,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Dirs returns a copy of the search directories.
func (r *Resolver) Dirs() []string {
	return append([]string(nil), r.dirs...)
}

// Resolve returns the location of input, or an error wrapping model.ErrNotFound.
func (r *Resolver) Resolve(ctx context.Context, input string) (model.Resolution, error) {
	res := model.Resolution{Input: input}
	logger := ctxlog.Logger(ctx).With("input", input)

	if input == "" {
		return res, fmt.Errorf("%w: empty input", model.ErrNotFound)
	}

	if r.exists(ctx, input) {
		path, err := r.canonicalize(input)
		if err != nil {
			return res, fmt.Errorf("canonicalize %s: %w", input, err)
		}

		logger.Debug("resolved directly", "path", path)

		res.Path = path
		res.Step = model.StepDirect

		return res, nil
	}

	for _, dir := range r.dirs {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		candidate := Join(dir, input)
		if !r.exists(ctx, candidate) {
			continue
		}

		if r.uniform {
			path, err := r.canonicalize(candidate)
			if err != nil {
				return res, fmt.Errorf("canonicalize %s: %w", candidate, err)
			}
			candidate = path
		}

		logger.Debug("resolved on search path", "dir", dir, "path", candidate)

		res.Path = candidate
		res.Dir = dir
		res.Step = model.StepSearchPath

		return res, nil
	}

	logger.Debug("not found", "dirs", len(r.dirs))

	return res, fmt.Errorf("%w: %s", model.ErrNotFound, input)
}

// Locate implements the locator contract used by the dispatchers.
func (r *Resolver) Locate(ctx context.Context, name string) (string, error) {
	res, err := r.Resolve(ctx, name)
	if err != nil {
		return "", err
	}

	return res.Path, nil
}

// Join builds a search candidate as literal "dir/name", without cleaning.
func Join(dir, name string) string {
	return dir + "/" + name
}

// exists follows symlinks: a dangling link does not exist.
func (r *Resolver) exists(ctx context.Context, path string) bool {
	_, err := r.fs.Stat(path)
	if err == nil {
		return true
	}

	if !errors.Is(err, os.ErrNotExist) {
		ctxlog.Debug(ctx, "stat failed", "path", path, "error", err)
	}

	return false
}
