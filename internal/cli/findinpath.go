package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"

	"pathtools/internal/ctxlog"
	"pathtools/internal/model"
	"pathtools/internal/tui"
)

// exitNotFound is findinpath's exit code when the name is on no search directory.
const exitNotFound = 2

var (
	// checkLatest asks GitHub for the newest release tag.
	checkLatest = func(current string) (*latest.CheckResponse, error) {
		githubTag := &latest.GithubTag{
			Owner:      model.RepoOwner,
			Repository: model.RepoName,
		}

		return latest.Check(githubTag, current)
	}

	// isTerminal reports whether stdout is an interactive terminal.
	isTerminal = func() bool {
		fd := os.Stdout.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}

	runTUI = tui.Run
)

// Findinpath looks a name up on the search directories only.
func Findinpath(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("findinpath", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: findinpath [options] <name>\n\n")
		fmt.Fprintf(stderr, "findinpath looks for name in each directory of the search path\n")
		fmt.Fprintf(stderr, "(PATH unless configured otherwise) and prints the first match.\n")
		fmt.Fprintf(stderr, "The current directory is never searched.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		flags.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  findinpath python3        # First match, exit 2 if none\n")
		fmt.Fprintf(stderr, "  findinpath -a python3     # Every match in search order\n")
		fmt.Fprintf(stderr, "  findinpath -j python3     # Full survey as JSON\n")
		fmt.Fprintf(stderr, "  findinpath -i python3     # Browse interactively\n")
	}

	allFlag := flags.BoolP("all", "a", false, "Print every match, not only the first")
	jsonFlag := flags.BoolP("json", "j", false, "Output the survey of every search directory as JSON")
	interactiveFlag := flags.BoolP("interactive", "i", false, "Browse the search directories in a terminal UI")
	versionFlag := flags.BoolP("version", "V", false, "Print version information")
	updateFlag := flags.BoolP("update", "u", false, "Check for the latest version")
	helpFlag := flags.BoolP("help", "h", false, "Show this help message")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitFailure
	}

	if *helpFlag {
		flags.Usage()
		return exitOK
	}

	if *versionFlag {
		fmt.Fprintf(stdout, "findinpath version %s\n", model.Version)
		return exitOK
	}

	if *updateFlag {
		return checkUpdate(ctx, stdout, stderr)
	}

	if flags.NArg() != 1 || flags.Arg(0) == "" {
		flags.Usage()
		return exitFailure
	}

	name := flags.Arg(0)

	r, cfg, err := loadResolver(ctx)
	if err != nil {
		ctxlog.Error(ctx, "configuration", "error", err)
		return exitFailure
	}

	if *interactiveFlag {
		if !isTerminal() {
			ctxlog.Error(ctx, "interactive mode needs a terminal")
			return exitFailure
		}

		if err := runTUI(ctx, r, name); err != nil {
			fmt.Fprintf(stderr, "Alas, there's been an error: %v\n", err)
			return exitFailure
		}

		return exitOK
	}

	lookup := r.Survey(ctx, name)

	if *jsonFlag {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(lookup); err != nil {
			ctxlog.Error(ctx, "encode", "error", err)
			return exitFailure
		}
		if len(lookup.Matches) == 0 {
			return exitNotFound
		}
		return exitOK
	}

	if len(lookup.Matches) == 0 {
		fmt.Fprintf(stdout, "Could not find %s in %s\n", name, cfg.SearchPathVar)
		return exitNotFound
	}

	if !*allFlag {
		first, _ := lookup.First()
		fmt.Fprintln(stdout, first.Match)
		return exitOK
	}

	for _, i := range lookup.Matches {
		fmt.Fprintln(stdout, lookup.Dirs[i].Match)
	}

	return exitOK
}

func checkUpdate(ctx context.Context, stdout, stderr io.Writer) int {
	res, err := checkLatest(model.Version)
	if err != nil {
		ctxlog.Debug(ctx, "update check failed", "owner", model.RepoOwner, "repo", model.RepoName, "error", err)
		fmt.Fprintf(stderr, "Could not check github.com/%s/%s for updates: %v\n", model.RepoOwner, model.RepoName, err)
		return exitOK
	}

	if res.Outdated {
		fmt.Fprintf(stdout, "\n✨ A new version is available: %s (you have %s)\n", res.Current, model.Version)
		fmt.Fprintf(stdout, "👉 Download it from https://github.com/%s/%s/releases\n", model.RepoOwner, model.RepoName)
	} else {
		fmt.Fprintf(stdout, "✅ You are using the latest version: %s\n", model.Version)
	}

	return exitOK
}
