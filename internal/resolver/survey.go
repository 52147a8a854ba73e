package resolver

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"pathtools/internal/model"
)

// Survey inspects every search directory for name without stopping at the first
// match. Unlike Resolve it never looks at name relative to the working directory,
// except through an empty segment, which stands for it.
func (r *Resolver) Survey(ctx context.Context, name string) model.Lookup {
	lookup := model.Lookup{Name: name}
	seen := make(map[string]int) // value -> index

	for i, dir := range r.dirs {
		entry := model.SearchDir{
			Index: i,
			Value: dir,
		}

		if first, ok := seen[dir]; ok {
			entry.IsDuplicate = true
			entry.DuplicateOf = first
		} else {
			seen[dir] = i
		}

		probe := dir
		if probe == "" {
			probe = "."
		}

		entry.Exists = r.exists(ctx, probe)
		entry.IsSymlink = r.isSymlink(probe)

		if entry.Exists {
			if target, err := r.canonicalize(probe); err == nil {
				entry.Target = target
			}
		}

		if name != "" && entry.Exists {
			if candidate := surveyJoin(dir, name); r.exists(ctx, candidate) {
				entry.Match = candidate
				lookup.Matches = append(lookup.Matches, i)
			}
		}

		lookup.Dirs = append(lookup.Dirs, entry)
	}

	return lookup
}

// surveyJoin joins like a path join: an empty dir leaves name relative to the
// working directory and an absolute name replaces dir.
func surveyJoin(dir, name string) string {
	if dir == "" || filepath.IsAbs(name) {
		return name
	}

	return filepath.Join(dir, name)
}

func (r *Resolver) isSymlink(path string) bool {
	lstater, ok := r.fs.(afero.Lstater)
	if !ok {
		return false
	}

	info, lstatCalled, err := lstater.LstatIfPossible(path)
	if err != nil || !lstatCalled {
		return false
	}

	return info.Mode()&os.ModeSymlink != 0
}
