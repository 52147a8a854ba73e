// Package scan implements the companion programs run by the dispatchers:
// a recursive content search and a recursive filtered listing.
package scan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// ErrInvalidExclude is returned when the exclusion pattern is not a valid regular expression.
var ErrInvalidExclude = errors.New("invalid exclude pattern")

// FsFactory returns the filesystem walks run against.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// MatchName reports whether a base name matches a shell-style file filter.
// A malformed filter only matches itself.
func MatchName(filter, name string) bool {
	ok, err := doublestar.Match(filter, name)
	if err != nil {
		return filter == name
	}

	return ok
}

// CompileExclude compiles expr so that it only matches at the start of a path.
func CompileExclude(expr string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(`^(?:` + expr + `)`)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidExclude, expr, err)
	}

	return re, nil
}

// joinEntry appends name to dir without cleaning dir, so results keep the
// caller's spelling of the root.
func joinEntry(dir, name string) string {
	if strings.HasSuffix(dir, "/") {
		return dir + name
	}

	return dir + "/" + name
}

func isSymlink(info os.FileInfo) bool {
	return info.Mode()&os.ModeSymlink != 0
}

// skippable errors are silently ignored while walking.
func skippable(err error) bool {
	return errors.Is(err, os.ErrPermission) || errors.Is(err, os.ErrNotExist)
}

func cancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
