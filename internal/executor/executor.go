// Package executor runs external commands for the fact collectors and the
// resource reader, and answers whether a command exists on the search path.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/voxpupuli/puppet-networkmanager/internal/logging"
	"github.com/voxpupuli/puppet-networkmanager/internal/metrics"
	"go.uber.org/zap"
)

const (
	// DefaultTimeout bounds a single command when the config does not say otherwise.
	DefaultTimeout = 30 * time.Second

	// MaxOutputSize is the maximum size of stdout/stderr to capture
	MaxOutputSize = 1024 * 1024 // 1MB

	// maxStderrInError limits how much stderr is carried in an ExecutionError.
	maxStderrInError = 512
)

// Runner executes a command and returns its captured standard output.
// Implementations return an *ExecutionError when the command cannot be
// spawned, exits non-zero, or times out.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
	LookPath(name string) (string, error)
}

// ExecutionError describes a failed command execution.
type ExecutionError struct {
	Command  string
	Args     []string
	ExitCode int // -1 when the process never produced an exit status
	Stderr   string
	Err      error
}

func (e *ExecutionError) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Command, strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// Exec runs commands with os/exec.
type Exec struct {
	timeout time.Duration
	logger  *zap.Logger
}

// New creates an Exec. A zero timeout disables the per-command deadline.
func New(timeout time.Duration, logger *zap.Logger) *Exec {
	if logger == nil {
		logger = logging.L("executor")
	}
	return &Exec{timeout: timeout, logger: logger}
}

// LookPath reports where name is found on PATH.
func (e *Exec) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Run executes name with args and blocks until it exits.
func (e *Exec) Run(ctx context.Context, name string, args ...string) (string, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &limitedWriter{buf: &stdout, limit: MaxOutputSize}
	cmd.Stderr = &limitedWriter{buf: &stderr, limit: MaxOutputSize}
	// Orphaned grandchildren can hold the output pipes open after a kill.
	cmd.WaitDelay = time.Second

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)
	metrics.RecordCommand(filepath.Base(name), elapsed.Seconds(), err)

	if err == nil {
		e.logger.Debug("command completed",
			zap.String(logging.KeyCommand, name),
			zap.Strings("args", args),
			zap.Int64(logging.KeyDurationMs, elapsed.Milliseconds()))
		return stdout.String(), nil
	}

	execErr := &ExecutionError{
		Command:  name,
		Args:     args,
		ExitCode: -1,
		Stderr:   truncate(strings.TrimSpace(stderr.String()), maxStderrInError),
		Err:      err,
	}

	var exitErr *exec.ExitError
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		execErr.Err = fmt.Errorf("timed out after %s: %w", e.timeout, ctx.Err())
	case errors.As(err, &exitErr):
		execErr.ExitCode = exitErr.ExitCode()
	}

	e.logger.Debug("command failed",
		zap.String(logging.KeyCommand, name),
		zap.Strings("args", args),
		zap.Int("exitCode", execErr.ExitCode),
		zap.Error(execErr.Err))

	return "", execErr
}

type limitedWriter struct {
	buf     *bytes.Buffer
	limit   int
	written int
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	if w.written >= w.limit {
		// Discard additional data but don't error
		return len(p), nil
	}

	chunk := p
	if remaining := w.limit - w.written; len(chunk) > remaining {
		chunk = chunk[:remaining]
	}

	n, err := w.buf.Write(chunk)
	w.written += n
	if err != nil {
		return n, err
	}
	return len(p), nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
