// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package procutil

import (
	"context"
	"math"
	"os"

	"github.com/jongio/pyenv-activate/shellutil"
	"github.com/shirou/gopsutil/v4/process"
)

// maxAncestorDepth bounds the parent walk in ParentShell.
// Tool launchers (make, npm, go run) rarely nest deeper than this.
const maxAncestorDepth = 8

// IsProcessRunning checks if a process with the given PID is running.
// Works cross-platform, including stale PIDs on Windows.
func IsProcessRunning(pid int) bool {
	if pid <= 0 || pid > math.MaxInt32 {
		return false
	}

	exists, err := process.PidExists(int32(pid))
	if err != nil {
		return false
	}
	return exists
}

// ancestor is the slice of process information ParentShell needs.
type ancestor interface {
	Name(ctx context.Context) (string, error)
	Parent(ctx context.Context) (ancestor, error)
}

// gopsProcess adapts a gopsutil process to ancestor.
type gopsProcess struct {
	p *process.Process
}

func (g gopsProcess) Name(ctx context.Context) (string, error) {
	return g.p.NameWithContext(ctx)
}

func (g gopsProcess) Parent(ctx context.Context) (ancestor, error) {
	parent, err := g.p.ParentWithContext(ctx)
	if err != nil {
		return nil, err
	}
	return gopsProcess{p: parent}, nil
}

// ParentShell returns the shell the current process was started from, found by
// walking up the process tree to the nearest ancestor that is a known shell.
// Falls back to shellutil.DefaultShell when no ancestor is a shell.
func ParentShell(ctx context.Context) string {
	ppid := os.Getppid()
	if !IsProcessRunning(ppid) {
		return shellutil.DefaultShell()
	}

	parent, err := process.NewProcessWithContext(ctx, int32(ppid))
	if err != nil {
		return shellutil.DefaultShell()
	}

	if shell, ok := findShell(ctx, gopsProcess{p: parent}, maxAncestorDepth); ok {
		return shell
	}
	return shellutil.DefaultShell()
}

// findShell walks from start towards the root, at most depth processes.
func findShell(ctx context.Context, start ancestor, depth int) (string, bool) {
	current := start
	for i := 0; i < depth && current != nil; i++ {
		if ctx.Err() != nil {
			return "", false
		}

		if name, err := current.Name(ctx); err == nil {
			if shell := shellutil.IdentifyShell(name); shell != shellutil.ShellOther {
				return shell, true
			}
		}

		next, err := current.Parent(ctx)
		if err != nil {
			return "", false
		}
		current = next
	}
	return "", false
}
