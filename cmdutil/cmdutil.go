// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package cmdutil provides command execution utilities for querying external tools,
// including a mockable Runner, per-call timeouts, and a circuit breaker.
package cmdutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout is the default timeout for a single tool query.
const DefaultTimeout = 10 * time.Second

// Runner is an interface for running external commands and capturing stdout.
// This allows for mocking in tests.
type Runner interface {
	Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, dir string, name string, args ...string) ([]byte, error)

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	return f(ctx, dir, name, args...)
}

// ExecRunner uses os/exec to run commands.
type ExecRunner struct {
	// Env overrides the inherited environment when non-nil.
	Env []string
}

// Run executes a command in dir and returns its stdout.
// On failure the error includes the command's stderr.
func (r *ExecRunner) Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	if r.Env != nil {
		cmd.Env = r.Env
	} else {
		cmd.Env = os.Environ()
	}

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				return output, fmt.Errorf("%s %s failed: %w: %s", name, strings.Join(args, " "), err, msg)
			}
		}
		return output, fmt.Errorf("%s %s failed: %w", name, strings.Join(args, " "), err)
	}

	return output, nil
}

// timeoutRunner bounds each call with a deadline.
type timeoutRunner struct {
	inner   Runner
	timeout time.Duration
}

// WithTimeout returns a Runner that cancels each call after timeout.
// A non-positive timeout returns runner unchanged.
func WithTimeout(runner Runner, timeout time.Duration) Runner {
	if timeout <= 0 {
		return runner
	}
	return &timeoutRunner{inner: runner, timeout: timeout}
}

func (r *timeoutRunner) Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	return r.inner.Run(ctx, dir, name, args...)
}

// FirstLine returns the first non-empty trimmed line of command output.
func FirstLine(output []byte) string {
	for _, line := range strings.Split(string(output), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
