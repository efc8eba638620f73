// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"github.com/jongio/pyenv-activate/cliout"
	"github.com/spf13/cobra"
)

type shellResult struct {
	Shell  string `json:"shell"`
	Source string `json:"source"`
}

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Print the shell activation commands are generated for",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			shell, source := a.shell(cmd.Context())
			result := shellResult{Shell: shell, Source: source}

			return cliout.Print(result, func() {
				cliout.Plain("%s", shell)
			})
		},
	}
}
