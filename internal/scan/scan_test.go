package scan

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dummyFsWithFiles(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}

	return fs
}

func TestMatchName(t *testing.T) {
	tests := []struct {
		filter, name string
		want         bool
	}{
		{"*.py", "main.py", true},
		{"*.py", "main.pyc", false},
		{"?.go", "a.go", true},
		{"[!a]*", "abc", false},
		{"[!a]*", "bcd", true},
		{"*", ".hidden", true},
		{"[oops", "[oops", true},
		{"[oops", "oops", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MatchName(tt.filter, tt.name), "%s ~ %s", tt.filter, tt.name)
	}
}

func TestCompileExclude(t *testing.T) {
	re, err := CompileExclude("###")
	require.NoError(t, err)
	assert.False(t, re.MatchString("/src/a#b"))

	re, err = CompileExclude(".*/vendor")
	require.NoError(t, err)
	assert.True(t, re.MatchString("/src/vendor/x"))

	re, err = CompileExclude("vendor")
	require.NoError(t, err)
	assert.False(t, re.MatchString("/src/vendor"), "matches are anchored at the start")

	_, err = CompileExclude("(")
	require.ErrorIs(t, err, ErrInvalidExclude)
}

func TestSearch(t *testing.T) {
	fs := dummyFsWithFiles(t, map[string]string{
		"/dsv/a.py":         "import os\nraise PermissionError\n",
		"/dsv/sub/b.py":     "PermissionError first\nnothing\nPermissionError last",
		"/dsv/sub/c.txt":    "PermissionError in a txt\n",
		"/dsv/bin.py":       "PermissionError\n\xff\xfe PermissionError\n",
		"/dsv/deep/er/d.py": "x = 1\n",
		"/elsewhere/e.py":   "PermissionError\n",
	})

	var out bytes.Buffer
	s := &Searcher{Fs: fs, Out: &out}

	require.NoError(t, s.Search(context.Background(), "/dsv", "*.py", "PermissionError"))

	assert.Equal(t,
		"/dsv/a.py@1:raise PermissionError\n"+
			"/dsv/bin.py@0:PermissionError\n"+
			"/dsv/sub/b.py@0:PermissionError first\n"+
			"/dsv/sub/b.py@2:PermissionError last\n",
		out.String())
}

func TestSearchCRLF(t *testing.T) {
	fs := dummyFsWithFiles(t, map[string]string{
		"/r/a.py": "first\r\nneedle here\r\nlast\r",
	})

	var out bytes.Buffer
	s := &Searcher{Fs: fs, Out: &out}

	require.NoError(t, s.Search(context.Background(), "/r", "*.py", "needle"))
	assert.Equal(t, "/r/a.py@1:needle here\n", out.String())

	out.Reset()
	require.NoError(t, s.Search(context.Background(), "/r", "*.py", "here\r"))
	assert.Empty(t, out.String())
}

func TestSearchMissingRoot(t *testing.T) {
	s := &Searcher{Fs: afero.NewMemMapFs(), Out: &bytes.Buffer{}}
	require.Error(t, s.Search(context.Background(), "/nope", "*", "x"))
}

func TestSearchCancelled(t *testing.T) {
	fs := dummyFsWithFiles(t, map[string]string{"/r/a": "x\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &Searcher{Fs: fs, Out: &bytes.Buffer{}}
	require.ErrorIs(t, s.Search(ctx, "/r", "*", "x"), context.Canceled)
}

func TestList(t *testing.T) {
	fs := dummyFsWithFiles(t, map[string]string{
		"/src/main.go":           "",
		"/src/README.md":         "",
		"/src/pkg/util.go":       "",
		"/src/vendor/lib/lib.go": "",
		"/src/vendor.go":         "",
	})

	tests := []struct {
		name    string
		root    string
		filter  string
		exclude string
		want    []string
	}{
		{
			name:    "default exclude lists everything matching",
			root:    "/src",
			filter:  "*.go",
			exclude: "###",
			want: []string{
				"/src/main.go",
				"/src/pkg/util.go",
				"/src/vendor/lib/lib.go",
				"/src/vendor.go",
			},
		},
		{
			name:    "excluded directory is pruned",
			root:    "/src",
			filter:  "*.go",
			exclude: "/src/vendor/",
			want: []string{
				"/src/main.go",
				"/src/pkg/util.go",
				"/src/vendor.go",
			},
		},
		{
			name:    "directories match the filter too",
			root:    "/src/",
			filter:  "v*",
			exclude: "###",
			want: []string{
				"/src/vendor",
				"/src/vendor.go",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re, err := CompileExclude(tt.exclude)
			require.NoError(t, err)

			var out bytes.Buffer
			l := &Lister{Fs: fs, Out: &out, Exclude: re}
			require.NoError(t, l.List(context.Background(), tt.root, tt.filter))

			assert.Equal(t, tt.want, splitLines(out.String()))
		})
	}
}

func TestListMissingRootIsSilent(t *testing.T) {
	var out bytes.Buffer
	l := &Lister{Fs: afero.NewMemMapFs(), Out: &out}

	require.NoError(t, l.List(context.Background(), "/nope", "*"))
	assert.Empty(t, out.String())
}

func TestListRootIsFile(t *testing.T) {
	fs := dummyFsWithFiles(t, map[string]string{"/file": ""})
	l := &Lister{Fs: fs, Out: &bytes.Buffer{}}

	require.Error(t, l.List(context.Background(), "/file", "*"))
}

func TestListDoesNotFollowSymlinkedDirs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "real", "inner"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "real", "inner", "f.txt"), nil, 0o644))
	require.NoError(t, os.Symlink(filepath.Join(dir, "real"), filepath.Join(dir, "alias")))

	var out bytes.Buffer
	l := &Lister{Fs: afero.NewOsFs(), Out: &out}
	require.NoError(t, l.List(context.Background(), dir, "*"))

	assert.Equal(t, []string{
		dir + "/alias",
		dir + "/real",
		dir + "/real/inner",
		dir + "/real/inner/f.txt",
	}, splitLines(out.String()))
}

func TestSearchFollowsFileSymlinksOnly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "real"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "real", "f.txt"), []byte("needle\n"), 0o644))
	require.NoError(t, os.Symlink(filepath.Join(dir, "real"), filepath.Join(dir, "alias")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "real", "f.txt"), filepath.Join(dir, "g.txt")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), filepath.Join(dir, "dangling.txt")))

	var out bytes.Buffer
	s := &Searcher{Fs: afero.NewOsFs(), Out: &out}
	require.NoError(t, s.Search(context.Background(), dir, "*.txt", "needle"))

	assert.Equal(t, []string{
		dir + "/g.txt@0:needle",
		dir + "/real/f.txt@0:needle",
	}, splitLines(out.String()))
}

func splitLines(s string) []string {
	var lines []string
	for _, l := range bytes.Split(bytes.TrimSuffix([]byte(s), []byte("\n")), []byte("\n")) {
		if len(l) > 0 {
			lines = append(lines, string(l))
		}
	}

	return lines
}
