// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"fmt"
	"path/filepath"

	"github.com/jongio/pyenv-activate/cliout"
	"github.com/spf13/cobra"
)

type cacheClearResult struct {
	Cleared string `json:"cleared"`
}

func newCacheCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the cache of interpreter versions",
		Args:  cobra.NoArgs,
	}
	cmd.AddCommand(newCacheClearCmd(a))
	return cmd
}

func newCacheClearCmd(a *app) *cobra.Command {
	var pythonPath string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove cached interpreter versions",
		Long: `Remove every cached interpreter version, or only the entry of the
interpreter given with --python.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newInterpreterCache(a.cfg)
			if err != nil {
				return err
			}

			result := cacheClearResult{Cleared: "all"}
			if pythonPath != "" {
				python, err := filepath.Abs(pythonPath)
				if err != nil {
					return fmt.Errorf("invalid interpreter path %s: %w", pythonPath, err)
				}
				if err := store.Forget(python); err != nil {
					return err
				}
				result.Cleared = python
			} else if err := store.Clear(); err != nil {
				return err
			}

			return cliout.Print(result, func() {
				if pythonPath != "" {
					cliout.Success("Cleared cached version of %s", result.Cleared)
					return
				}
				cliout.Success("Cleared interpreter cache")
			})
		},
	}

	cmd.Flags().StringVar(&pythonPath, "python", "", "clear only the entry of this Python interpreter")
	return cmd
}
