// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package interpreter

import "context"

// Type identifies the tool that created or manages an interpreter.
type Type string

const (
	// TypeUnknown is an interpreter with no recognized manager (including system installs).
	TypeUnknown Type = "Unknown"
	// TypeConda is a conda environment.
	TypeConda Type = "Conda"
	// TypeVirtualEnv is a virtualenv environment.
	TypeVirtualEnv Type = "VirtualEnv"
	// TypePipEnv is a pipenv-managed environment.
	TypePipEnv Type = "PipEnv"
	// TypePyenv is a pyenv-managed version or pyenv-virtualenv environment.
	TypePyenv Type = "Pyenv"
	// TypeVenv is a stdlib venv environment.
	TypeVenv Type = "Venv"
	// TypeWindowsStore is a Microsoft Store install.
	TypeWindowsStore Type = "WindowsStore"
)

// Info describes one discovered Python interpreter.
type Info struct {
	Path    string `json:"path"`
	Type    Type   `json:"type"`
	EnvName string `json:"envName,omitempty"`
	EnvPath string `json:"envPath,omitempty"`
	Version string `json:"version,omitempty"`
}

// IsPyenv reports whether the interpreter is pyenv-managed with a named environment,
// the only case in which pyenv can activate it.
func (i *Info) IsPyenv() bool {
	return i != nil && i.Type == TypePyenv && i.EnvName != ""
}

// Service resolves interpreter records.
// A (nil, nil) result means no interpreter was found.
type Service interface {
	// ActiveInterpreter returns the interpreter selected for a workspace directory.
	// An empty resource means no workspace.
	ActiveInterpreter(ctx context.Context, resource string) (*Info, error)

	// InterpreterDetails returns the record for an explicit interpreter path.
	InterpreterDetails(ctx context.Context, pythonPath string) (*Info, error)
}
