// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package terminal produces the commands that activate a Python environment in a
// terminal.
//
// Providers implement ActivationCommandProvider. PyenvProvider is the pyenv one:
// for a pyenv-managed interpreter with a named environment it yields exactly
//
//	pyenv shell <env>
//
// with the name passed through shellutil.ToCommandArgument, and for anything
// else it yields (nil, false).
//
// A Helper holds providers in registration order and returns the first
// applicable result:
//
//	svc := interpreter.NewPyenvService(interpreter.PyenvOptions{})
//	helper := terminal.NewHelper(terminal.NewPyenvProvider(svc))
//	if cmds, ok := helper.EnvironmentActivationCommands(ctx, shellutil.ShellZsh, workspace); ok {
//	    for _, c := range cmds {
//	        fmt.Println(c)
//	    }
//	}
package terminal
