// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package terminal

import "context"

// ActivationCommandProvider produces the shell commands that activate a Python
// environment in a terminal.
//
// A provider that does not apply returns (nil, false). That is the only
// failure signal: callers move on to the next provider.
type ActivationCommandProvider interface {
	// Name identifies the provider in logs and metrics.
	Name() string

	// IsShellSupported reports whether the provider can produce commands for shell,
	// one of the shellutil.Shell* identifiers.
	IsShellSupported(shell string) bool

	// ActivationCommands returns the commands for the interpreter active in the
	// resource directory. An empty resource means no workspace.
	ActivationCommands(ctx context.Context, resource string, shell string) ([]string, bool)

	// ActivationCommandsForInterpreter returns the commands for an explicit interpreter path.
	ActivationCommandsForInterpreter(ctx context.Context, pythonPath string, shell string) ([]string, bool)
}
