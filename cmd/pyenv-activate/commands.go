// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jongio/pyenv-activate/cliout"
	"github.com/spf13/cobra"
)

// commandsResult is the JSON shape of the commands subcommand.
type commandsResult struct {
	Shell    string   `json:"shell"`
	Commands []string `json:"commands"`
	Applied  bool     `json:"applied"`
}

func newCommandsCmd(a *app) *cobra.Command {
	var pythonPath, dir string

	cmd := &cobra.Command{
		Use:   "commands",
		Short: "Print the activation commands for a directory or interpreter",
		Long: `Print the commands that activate the pyenv environment selected for DIR
(default: the current directory), or the environment that contains the
interpreter given with --python. Exits with status 1 when pyenv does not
manage the environment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			shell, _ := a.shell(ctx)

			helper, _, err := a.helper()
			if err != nil {
				return err
			}

			var (
				commands []string
				ok       bool
				target   string
			)
			if pythonPath != "" {
				target = pythonPath
				commands, ok = helper.EnvironmentActivationCommandsForInterpreter(ctx, shell, pythonPath)
			} else {
				resource, err := resolveDir(dir)
				if err != nil {
					return err
				}
				target = resource
				commands, ok = helper.EnvironmentActivationCommands(ctx, shell, resource)
			}

			result := commandsResult{Shell: shell, Commands: commands, Applied: ok}
			if result.Commands == nil {
				result.Commands = []string{}
			}

			if cliout.IsJSON() {
				if err := cliout.PrintJSON(result); err != nil {
					return err
				}
				if !ok {
					return errNotApplicable
				}
				return nil
			}

			if !ok {
				cliout.Warning("No pyenv environment applies to %s", target)
				a.hintMissingPyenv()
				return errNotApplicable
			}
			for _, command := range commands {
				cliout.Plain("%s", command)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&pythonPath, "python", "", "path of a Python interpreter")
	cmd.Flags().StringVar(&dir, "dir", "", "directory whose pyenv version to use (default: current directory)")
	cmd.MarkFlagsMutuallyExclusive("python", "dir")
	return cmd
}

// resolveDir returns dir as an absolute path, defaulting to the working directory.
func resolveDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("invalid directory %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("invalid directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("invalid directory %s: not a directory", dir)
	}
	return abs, nil
}
