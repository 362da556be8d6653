// Package executortest provides a scripted executor.Runner for tests.
package executortest

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/voxpupuli/puppet-networkmanager/internal/executor"
)

type response struct {
	output string
	err    error
}

// Runner replays canned command outputs. Commands are matched on the
// full argument vector; unmatched commands fail with exit code 127.
type Runner struct {
	mu        sync.Mutex
	responses map[string]response
	paths     map[string]string
	calls     [][]string
}

// New returns an empty Runner.
func New() *Runner {
	return &Runner{
		responses: make(map[string]response),
		paths:     make(map[string]string),
	}
}

// Install marks name as present on the search path.
func (r *Runner) Install(names ...string) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, name := range names {
		r.paths[name] = "/usr/bin/" + name
	}
	return r
}

// On registers output for the command line name args...
func (r *Runner) On(output string, name string, args ...string) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[key(name, args)] = response{output: output}
	return r
}

// Fail registers a non-zero exit for the command line name args...
func (r *Runner) Fail(exitCode int, stderr string, name string, args ...string) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[key(name, args)] = response{err: &executor.ExecutionError{
		Command:  name,
		Args:     args,
		ExitCode: exitCode,
		Stderr:   stderr,
		Err:      fmt.Errorf("exit status %d", exitCode),
	}}
	return r
}

// Calls returns the argument vectors seen so far, in order.
func (r *Runner) Calls() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]string, len(r.calls))
	copy(out, r.calls)
	return out
}

// Run implements executor.Runner.
func (r *Runner) Run(_ context.Context, name string, args ...string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, append([]string{name}, args...))
	resp, ok := r.responses[key(name, args)]
	if !ok {
		return "", &executor.ExecutionError{
			Command:  name,
			Args:     args,
			ExitCode: 127,
			Err:      errors.New("no canned response"),
		}
	}
	return resp.output, resp.err
}

// LookPath implements executor.Runner.
func (r *Runner) LookPath(name string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if path, ok := r.paths[name]; ok {
		return path, nil
	}
	return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
}

func key(name string, args []string) string {
	return strings.Join(append([]string{name}, args...), "\x00")
}
