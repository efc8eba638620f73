// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package terminal

import (
	"context"

	"github.com/jongio/pyenv-activate/interpreter"
	"github.com/jongio/pyenv-activate/logutil"
	"github.com/jongio/pyenv-activate/shellutil"
)

// PyenvProviderName is the name PyenvProvider reports.
const PyenvProviderName = "pyenv"

// pyenvShellCommand is the pyenv subcommand that selects a version for the current shell.
const pyenvShellCommand = "pyenv shell "

// PyenvProvider activates pyenv-managed interpreters with `pyenv shell <env>`.
// It holds no per-call state and is safe for concurrent use.
type PyenvProvider struct {
	interpreters interpreter.Service
	log          *logutil.ComponentLogger
}

// NewPyenvProvider creates a PyenvProvider that resolves interpreters through service.
func NewPyenvProvider(service interpreter.Service) *PyenvProvider {
	return &PyenvProvider{
		interpreters: service,
		log:          logutil.NewLogger("terminal").WithProvider(PyenvProviderName),
	}
}

// Name returns "pyenv".
func (p *PyenvProvider) Name() string {
	return PyenvProviderName
}

// IsShellSupported returns true for every shell: `pyenv shell` is the same in all of them.
func (p *PyenvProvider) IsShellSupported(shell string) bool {
	return true
}

// ActivationCommands returns `pyenv shell <env>` for the interpreter active in resource,
// or (nil, false) when that interpreter is missing, not pyenv-managed, or unnamed.
func (p *PyenvProvider) ActivationCommands(ctx context.Context, resource string, shell string) ([]string, bool) {
	info, err := p.interpreters.ActiveInterpreter(ctx, resource)
	if err != nil {
		p.log.Debug("active interpreter lookup failed", "resource", resource, "error", err)
		return nil, false
	}
	return activationCommands(info)
}

// ActivationCommandsForInterpreter returns `pyenv shell <env>` for the interpreter at
// pythonPath, or (nil, false) when it is missing, not pyenv-managed, or unnamed.
func (p *PyenvProvider) ActivationCommandsForInterpreter(ctx context.Context, pythonPath string, shell string) ([]string, bool) {
	info, err := p.interpreters.InterpreterDetails(ctx, pythonPath)
	if err != nil {
		p.log.Debug("interpreter lookup failed", "python", pythonPath, "error", err)
		return nil, false
	}
	return activationCommands(info)
}

func activationCommands(info *interpreter.Info) ([]string, bool) {
	if !info.IsPyenv() {
		return nil, false
	}
	return []string{pyenvShellCommand + shellutil.ToCommandArgument(info.EnvName)}, true
}
