// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jongio/pyenv-activate/cliout"
	"github.com/jongio/pyenv-activate/config"
	"github.com/jongio/pyenv-activate/logutil"
	"github.com/jongio/pyenv-activate/version"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

const metricsPrefix = "pyenv_activate_"

// Values of --color.
const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

// run executes the command line in args. Metrics requested with --metrics
// are written whether or not the command succeeded.
func run(ctx context.Context, a *app, args []string) error {
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)

	a.logCacheStats()
	if a.dumpMetrics {
		if werr := writeMetrics(prometheus.DefaultGatherer); werr != nil && err == nil {
			err = werr
		}
	}
	return err
}

func newRootCmd(a *app) *cobra.Command {
	var (
		configPath string
		output     string
		color      string
	)

	cmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Print shell commands that activate pyenv environments",
		Long: `pyenv-activate prints the commands that activate the pyenv version or
virtualenv selected for a directory or Python interpreter:

    eval "$(pyenv-activate commands)"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cliout.SetFormat(output); err != nil {
				return err
			}
			if err := applyColor(color); err != nil {
				return err
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := cfg.ApplyFlags(cmd.Flags()); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			a.cfg = cfg

			logutil.SetupLogger(cfg.Debug, cfg.StructuredLogs())
			logutil.Debug("configuration loaded",
				"shell", cfg.Shell,
				"pyenvRoot", cfg.PyenvRoot,
				"cacheDisabled", cfg.Cache.Disabled)
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default: <user config dir>/pyenv-activate/config.yaml)")
	flags.StringVarP(&output, "output", "o", "default", "output format: default or json")
	flags.StringVar(&color, "color", colorAuto, "colorize output: auto, always or never")
	flags.BoolVar(&a.dumpMetrics, "metrics", false, "write lookup metrics to stderr on exit")
	config.BindFlags(flags)

	cmd.AddCommand(
		newCommandsCmd(a),
		newShellCmd(a),
		newInterpreterCmd(a),
		newCacheCmd(a),
		version.NewCommand(version.New(config.AppName)),
	)
	return cmd
}

// applyColor overrides terminal detection for --color always and never.
func applyColor(mode string) error {
	switch mode {
	case colorAuto:
	case colorAlways:
		cliout.ForceColor()
	case colorNever:
		cliout.NoColor()
	default:
		return fmt.Errorf("invalid color mode %q: must be %s, %s or %s", mode, colorAuto, colorAlways, colorNever)
	}
	return nil
}

// writeMetrics writes this program's metrics in the Prometheus text format.
func writeMetrics(gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), metricsPrefix) {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(os.Stderr, mf); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}
