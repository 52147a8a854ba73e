package dispatch

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"os/signal"
	"sync"
	"syscall"

	"pathtools/internal/ctxlog"
)

const (
	// ExitCannotExecute mirrors the shell's code for a found but unrunnable program.
	ExitCannotExecute = 126
	// ExitCannotStart mirrors the shell's code for a program that could not be started.
	ExitCannotStart = 127
	// exitSignalBase is added to the signal number of a child killed by a signal.
	exitSignalBase = 128
)

// ErrStartProcess is returned when the companion could not be started.
var ErrStartProcess = errors.New("could not start process")

// forwardedSignals are relayed to the child instead of terminating the dispatcher.
var forwardedSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
	syscall.SIGQUIT,
}

var _ Runner = (*ExecRunner)(nil)

// ExecRunner runs a program as a child process sharing the caller's standard streams.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Env    []string // Environment of the child; nil inherits the current one.

	sigCh chan os.Signal // Channel to receive signals, allows mocking in test.
}

// NewExecRunner returns a runner wired to the process's own standard streams.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run starts program with args (no shell involved) and returns its exit code.
// Termination signals received meanwhile are passed on to the child.
func (e *ExecRunner) Run(ctx context.Context, program string, args []string) (int, error) {
	logger := ctxlog.Logger(ctx).With("path", program)

	cmd := exec.Command(program, args...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	cmd.Env = e.Env

	sigCh := e.sigCh
	if sigCh == nil {
		sigCh = make(chan os.Signal, 1)
		signal.Notify(sigCh, forwardedSignals...)
		defer signal.Stop(sigCh)
	}

	if err := cmd.Start(); err != nil {
		code := ExitCannotStart
		if errors.Is(err, fs.ErrPermission) {
			code = ExitCannotExecute
		}

		return code, errors.Join(ErrStartProcess, err)
	}

	logger.Debug("process started", "pid", cmd.Process.Pid)

	done := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		for {
			select {
			case s := <-sigCh:
				logger.Info("forwarding signal", "signal", s.String())

				if err := cmd.Process.Signal(s); err != nil {
					logger.Info("failed to send signal", "signal", s.String(), "error", err)
				}
			case <-ctx.Done():
				logger.Info("context done, killing process")
				_ = cmd.Process.Kill()

				return
			case <-done:
				return
			}
		}
	}()

	err := cmd.Wait()
	close(done)
	wg.Wait()

	return exitCode(err)
}

func exitCode(err error) (int, error) {
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return ExitUsage, err
	}

	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return exitSignalBase + int(status.Signal()), nil
	}

	return exitErr.ExitCode(), nil
}
