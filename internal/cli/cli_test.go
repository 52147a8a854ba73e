package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathtools/internal/config"
)

// isolate keeps the tests away from any config file or PATHTOOLS_* variable of the host.
func isolate(t *testing.T) {
	t.Helper()

	for _, name := range []string{
		config.FileEnv,
		"PATHTOOLS_SEARCH_PATH_VAR",
		"PATHTOOLS_FINDSTR_PROGRAM",
		"PATHTOOLS_DIRSB_PROGRAM",
		"PATHTOOLS_CANONICALIZE_SEARCH_MATCHES",
	} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}

	stubs := gostub.Stub(&config.FsFactory, func() afero.Fs { return afero.NewMemMapFs() })
	t.Cleanup(stubs.Reset)
}

// tree creates dir/name files and returns dir with symlinks resolved.
func tree(t *testing.T, names ...string) string {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755))
	}

	return dir
}

type recordingRunner struct {
	program string
	args    []string
	code    int
}

func (r *recordingRunner) Run(_ context.Context, program string, args []string) (int, error) {
	r.program = program
	r.args = args

	return r.code, nil
}

func TestRealpathUsage(t *testing.T) {
	isolate(t)

	for _, args := range [][]string{nil, {"a", "b"}, {""}, {"-h"}, {"--help"}, {"--?"}, {"--version"}, {"-?"}, {"-help"}} {
		var out bytes.Buffer

		code := Realpath(context.Background(), args, &out)
		assert.Equal(t, 1, code, "%v", args)
		assert.Equal(t, RealpathUsage, out.String(), "%v", args)
	}
}

func TestRealpath(t *testing.T) {
	isolate(t)

	bin1 := tree(t, "tool", "only-in-1")
	bin2 := tree(t, "tool", "only-in-2")
	work := tree(t, "notes.txt")
	require.NoError(t, os.Symlink(filepath.Join(work, "notes.txt"), filepath.Join(work, "link")))

	t.Setenv("PATH", bin1+":"+bin2)
	t.Chdir(work)

	tests := []struct {
		name     string
		input    string
		wantCode int
		wantOut  string
	}{
		{name: "relative symlink is canonicalized", input: "link", wantOut: filepath.Join(work, "notes.txt") + "\n"},
		{name: "dot", input: ".", wantOut: work + "\n"},
		{name: "search path first wins", input: "tool", wantOut: bin1 + "/tool\n"},
		{name: "search path later dir", input: "only-in-2", wantOut: bin2 + "/only-in-2\n"},
		{name: "not found", input: "nowhere", wantCode: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			code := Realpath(context.Background(), []string{tt.input}, &out)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantOut, out.String())
		})
	}
}

func TestRealpathConfiguredSearchVar(t *testing.T) {
	isolate(t)

	bin := tree(t, "tool")
	t.Setenv("PATH", "")
	t.Setenv("TOOLPATH", bin)
	t.Setenv("PATHTOOLS_SEARCH_PATH_VAR", "TOOLPATH")
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	require.Equal(t, 0, Realpath(context.Background(), []string{"tool"}, &out))
	assert.Equal(t, bin+"/tool\n", out.String())
}

func TestFindstr(t *testing.T) {
	isolate(t)

	bin := tree(t, "findstr-search")
	root := tree(t, "dsv/a.py")
	t.Setenv("PATH", bin)
	t.Chdir(root)

	runner := &recordingRunner{code: 5}
	var out bytes.Buffer

	code := Findstr(context.Background(), []string{"dsv", "*.py", "PermissionError"}, runner, &out)
	assert.Equal(t, 5, code)
	assert.Empty(t, out.String())
	assert.Equal(t, bin+"/findstr-search", runner.program)
	assert.Equal(t, []string{filepath.Join(root, "dsv"), "*.py", "PermissionError"}, runner.args)
}

func TestFindstrUsage(t *testing.T) {
	isolate(t)

	runner := &recordingRunner{}
	var out bytes.Buffer

	code := Findstr(context.Background(), []string{"dsv", "*.py"}, runner, &out)
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "searchTerm='PermissionError'")
	assert.Empty(t, runner.program)
}

func TestFindstrCompanionMissing(t *testing.T) {
	isolate(t)

	t.Setenv("PATH", tree(t))
	t.Chdir(t.TempDir())

	runner := &recordingRunner{}
	code := Findstr(context.Background(), []string{".", "*", "x"}, runner, &bytes.Buffer{})
	assert.Equal(t, 1, code)
	assert.Empty(t, runner.program)
}

func TestDirsb(t *testing.T) {
	isolate(t)

	bin := tree(t, "my-lister")
	t.Setenv("PATH", bin)
	t.Setenv("PATHTOOLS_DIRSB_PROGRAM", "my-lister")
	t.Chdir(t.TempDir())

	runner := &recordingRunner{}

	require.Equal(t, 0, Dirsb(context.Background(), []string{"src", "*.go"}, runner, &bytes.Buffer{}))
	assert.Equal(t, bin+"/my-lister", runner.program)
	assert.Equal(t, []string{"src", "*.go", "###"}, runner.args)

	require.Equal(t, 0, Dirsb(context.Background(), []string{"src", "*.go", "vendor"}, runner, &bytes.Buffer{}))
	assert.Equal(t, []string{"src", "*.go", "vendor"}, runner.args)

	var out bytes.Buffer
	assert.Equal(t, 1, Dirsb(context.Background(), []string{"src"}, runner, &out))
	assert.Contains(t, out.String(), "Usage: dirsb")
}
