package scan

import (
	"context"
	"fmt"
	"io"
	"regexp"

	"github.com/spf13/afero"

	"pathtools/internal/ctxlog"
)

// Lister prints entries selected by name, pruning paths that match an exclusion.
type Lister struct {
	Fs      afero.Fs
	Out     io.Writer
	Exclude *regexp.Regexp
}

// NewLister creates a Lister on FsFactory's filesystem.
func NewLister(out io.Writer, exclude *regexp.Regexp) *Lister {
	return &Lister{Fs: FsFactory(), Out: out, Exclude: exclude}
}

// List walks root. An entry whose path matches the exclusion is neither printed
// nor descended into. Symlinked directories are printed but not descended.
// Unreadable and vanished directories are skipped silently.
func (l *Lister) List(ctx context.Context, root, filter string) error {
	info, err := l.Fs.Stat(root)
	if err != nil {
		if skippable(err) {
			ctxlog.Debug(ctx, "root not readable", "path", root, "error", err)
			return nil
		}
		return fmt.Errorf("stat %s: %w", root, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", root)
	}

	return l.walk(ctx, root, filter)
}

func (l *Lister) walk(ctx context.Context, dir, filter string) error {
	entries, err := afero.ReadDir(l.Fs, dir)
	if err != nil {
		if skippable(err) {
			ctxlog.Debug(ctx, "skipping directory", "path", dir, "error", err)
			return nil
		}
		return fmt.Errorf("read %s: %w", dir, err)
	}

	for _, entry := range entries {
		if err := cancelled(ctx); err != nil {
			return err
		}

		path := joinEntry(dir, entry.Name())

		if l.Exclude != nil && l.Exclude.MatchString(path) {
			continue
		}

		if MatchName(filter, entry.Name()) {
			if _, err := fmt.Fprintln(l.Out, path); err != nil {
				return err
			}
		}

		if entry.IsDir() && !isSymlink(entry) {
			if err := l.walk(ctx, path, filter); err != nil {
				return err
			}
		}
	}

	return nil
}
