// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"fmt"

	"github.com/jongio/pyenv-activate/cliout"
	"github.com/jongio/pyenv-activate/interpreter"
	"github.com/spf13/cobra"
)

type interpreterResult struct {
	Found       bool              `json:"found"`
	Interpreter *interpreter.Info `json:"interpreter,omitempty"`
}

func newInterpreterCmd(a *app) *cobra.Command {
	var pythonPath, dir string

	cmd := &cobra.Command{
		Use:   "interpreter",
		Short: "Show the interpreter pyenv resolves for a directory or path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			_, svc, err := a.helper()
			if err != nil {
				return err
			}

			var info *interpreter.Info
			if pythonPath != "" {
				info, err = svc.InterpreterDetails(ctx, pythonPath)
			} else {
				resource, rerr := resolveDir(dir)
				if rerr != nil {
					return rerr
				}
				info, err = svc.ActiveInterpreter(ctx, resource)
			}
			if err != nil {
				return fmt.Errorf("failed to resolve interpreter: %w", err)
			}

			result := interpreterResult{Found: info != nil, Interpreter: info}
			if err := cliout.Print(result, func() { printInterpreter(info) }); err != nil {
				return err
			}
			if info == nil && !cliout.IsJSON() {
				a.hintMissingPyenv()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&pythonPath, "python", "", "path of a Python interpreter")
	cmd.Flags().StringVar(&dir, "dir", "", "directory whose pyenv version to resolve (default: current directory)")
	cmd.MarkFlagsMutuallyExclusive("python", "dir")
	return cmd
}

func printInterpreter(info *interpreter.Info) {
	if info == nil {
		cliout.Warning("No interpreter found")
		return
	}

	cliout.Header("Interpreter")
	cliout.Label("Path", info.Path)
	cliout.Label("Type", string(info.Type))
	if info.EnvName != "" {
		cliout.Label("Environment", cliout.Highlight("%s", info.EnvName))
	}
	if info.EnvPath != "" {
		cliout.Label("Env Path", cliout.Muted("%s", info.EnvPath))
	}
	if info.Version != "" {
		cliout.Label("Version", info.Version)
	}
	if info.IsPyenv() {
		cliout.Success("Managed by pyenv")
	}
}
