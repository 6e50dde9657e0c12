package chrome

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/porticus-lab/chromepdf"
)

//go:generate mockgen -source=./runner.go -destination=../internal/mocks/runner.mock.go -package=mocks Runner

// Runner runs a command to completion. argv[0] is the program, resolved
// through PATH when it has no path separator.
type Runner interface {
	Run(ctx context.Context, argv []string) error
}

// ExecRunner runs commands as local subprocesses.
type ExecRunner struct {
	Logger *zap.Logger
}

// Run executes argv and waits for it to exit. A non-zero exit, or a failure
// to start, is returned as a [*chromepdf.ProcessError] carrying the
// captured output.
func (r ExecRunner) Run(ctx context.Context, argv []string) error {
	_, err := r.Output(ctx, argv)
	return err
}

// Output is like Run but also returns what the command wrote to stdout.
func (r ExecRunner) Output(ctx context.Context, argv []string) ([]byte, error) {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("Starting renderer", zap.Strings("argv", argv))
	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), nil
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	logger.Error("Renderer failed",
		zap.String("command", argv[0]),
		zap.Int("exit_code", exitCode),
		zap.String("stderr", strings.TrimSpace(stderr.String())),
		zap.Error(err))

	return nil, &chromepdf.ProcessError{
		Command:  argv[0],
		ExitCode: exitCode,
		Stdout:   stdout.String(),
		Stderr:   strings.TrimSpace(stderr.String()),
		Err:      err,
	}
}
