package scan

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/afero"

	"pathtools/internal/ctxlog"
)

// Searcher prints every line containing a term, across files selected by name.
type Searcher struct {
	Fs  afero.Fs
	Out io.Writer
}

// NewSearcher creates a Searcher on FsFactory's filesystem.
func NewSearcher(out io.Writer) *Searcher {
	return &Searcher{Fs: FsFactory(), Out: out}
}

// Search walks root and prints "path@N:line" for each matching line, N counting from zero.
func (s *Searcher) Search(ctx context.Context, root, filter, text string) error {
	entries, err := afero.ReadDir(s.Fs, root)
	if err != nil {
		return fmt.Errorf("read %s: %w", root, err)
	}

	return s.walk(ctx, root, entries, filter, text)
}

func (s *Searcher) walk(ctx context.Context, dir string, entries []os.FileInfo, filter, text string) error {
	for _, entry := range entries {
		if err := cancelled(ctx); err != nil {
			return err
		}

		path := joinEntry(dir, entry.Name())

		info := entry
		if isSymlink(entry) {
			target, err := s.Fs.Stat(path)
			if err != nil || target.IsDir() {
				// Dangling links and links to directories are not followed.
				continue
			}
			info = target
		}

		if info.IsDir() {
			children, err := afero.ReadDir(s.Fs, path)
			if err != nil {
				ctxlog.Warn(ctx, "skipping directory", "path", path, "error", err)
				continue
			}

			if err := s.walk(ctx, path, children, filter, text); err != nil {
				return err
			}

			continue
		}

		if !info.Mode().IsRegular() || !MatchName(filter, entry.Name()) {
			continue
		}

		if err := s.searchFile(ctx, path, text); err != nil {
			return err
		}
	}

	return nil
}

func (s *Searcher) searchFile(ctx context.Context, path, text string) error {
	f, err := s.Fs.Open(path)
	if err != nil {
		ctxlog.Warn(ctx, "skipping file", "path", path, "error", err)
		return nil
	}
	defer f.Close()

	r := bufio.NewReader(f)

	for n := 0; ; n++ {
		line, readErr := r.ReadString('\n')
		if line != "" {
			if !utf8.ValidString(line) {
				ctxlog.Debug(ctx, "stopping at undecodable line", "path", path, "line", n)
				return nil
			}

			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			if strings.Contains(line, text) {
				if _, err := fmt.Fprintf(s.Out, "%s@%d:%s\n", path, n, line); err != nil {
					return err
				}
			}
		}

		if errors.Is(readErr, io.EOF) {
			return nil
		}

		if readErr != nil {
			ctxlog.Warn(ctx, "read failed", "path", path, "error", readErr)
			return nil
		}
	}
}
