// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/jongio/pyenv-activate/cache"
	"github.com/jongio/pyenv-activate/cliout"
	"github.com/jongio/pyenv-activate/cmdutil"
	"github.com/jongio/pyenv-activate/config"
	"github.com/jongio/pyenv-activate/interpreter"
	"github.com/jongio/pyenv-activate/logutil"
	"github.com/jongio/pyenv-activate/pathutil"
	"github.com/jongio/pyenv-activate/procutil"
	"github.com/jongio/pyenv-activate/shellutil"
	"github.com/jongio/pyenv-activate/terminal"
	"github.com/jongio/pyenv-activate/version"
)

// pythonTool names the breaker that guards `python --version`.
const pythonTool = "python"

// errNotApplicable signals exit status 1 after the warning was already shown.
var errNotApplicable = errors.New("no activation commands apply")

// app carries the loaded configuration and the factories commands build on.
type app struct {
	cfg         *config.Config
	dumpMetrics bool

	// cache is the interpreter cache of the running command, nil when disabled.
	cache *cache.Store

	newService  func(cfg *config.Config, c *cache.Store) (interpreter.Service, error)
	detectShell func(ctx context.Context) string
	findPyenv   func() string
}

func newApp() *app {
	return &app{
		cfg:         config.Default(),
		newService:  newPyenvService,
		detectShell: procutil.ParentShell,
		findPyenv:   pathutil.FindPyenv,
	}
}

// newPyenvService wires the pyenv service. pyenv and the interpreters it
// manages run behind separate circuit breakers, so a broken interpreter does
// not stop pyenv lookups.
func newPyenvService(cfg *config.Config, c *cache.Store) (interpreter.Service, error) {
	return interpreter.NewPyenvService(interpreter.PyenvOptions{
		Root:         cfg.PyenvRoot,
		Command:      cfg.PyenvCommand,
		Runner:       guardedRunner(cfg, pathutil.PyenvTool),
		PythonRunner: guardedRunner(cfg, pythonTool),
		Cache:        c,
	}), nil
}

// guardedRunner returns a runner whose spawns are rate limited, bounded by
// the command timeout and guarded by a circuit breaker named tool.
func guardedRunner(cfg *config.Config, tool string) cmdutil.Runner {
	var runner cmdutil.Runner = &cmdutil.ExecRunner{}
	runner = cmdutil.WithTimeout(runner, cfg.CommandTimeout)
	runner = cmdutil.NewBreakerRunner(runner, cmdutil.BreakerOptions{
		Name:     tool,
		Failures: cfg.Breaker.Failures,
		Timeout:  cfg.Breaker.Timeout,
	})
	return cmdutil.WithRateLimit(runner, cfg.RateLimit)
}

// newInterpreterCache opens the interpreter cache under the configured cache directory.
func newInterpreterCache(cfg *config.Config) (*cache.Store, error) {
	dir, err := cfg.CacheDir()
	if err != nil {
		return nil, fmt.Errorf("failed to set up interpreter cache: %w", err)
	}
	return cache.New(cache.Options{
		Dir:     filepath.Join(dir, "interpreters"),
		TTL:     cfg.Cache.TTL,
		Version: version.Version,
	}), nil
}

// shell returns the configured shell or the one the CLI was launched from.
func (a *app) shell(ctx context.Context) (string, string) {
	if a.cfg.Shell != "" {
		shell := shellutil.IdentifyShell(a.cfg.Shell)
		if !shellutil.IsKnownShell(shell) {
			cliout.Warning("Unrecognized shell %s", a.cfg.Shell)
		}
		return shell, "config"
	}
	return a.detectShell(ctx), "detected"
}

func (a *app) helper() (*terminal.Helper, interpreter.Service, error) {
	if !a.cfg.Cache.Disabled {
		c, err := newInterpreterCache(a.cfg)
		if err != nil {
			return nil, nil, err
		}
		a.cache = c
	}

	svc, err := a.newService(a.cfg, a.cache)
	if err != nil {
		return nil, nil, err
	}
	return terminal.NewHelper(terminal.NewPyenvProvider(svc)), svc, nil
}

// logCacheStats reports how the interpreter cache served the command.
func (a *app) logCacheStats() {
	if a.cache == nil {
		return
	}
	stats := a.cache.Stats()
	logutil.Debug("interpreter cache",
		"hits", stats.Hits,
		"misses", stats.Misses,
		"errors", stats.Errors)
}

// hintMissingPyenv explains the most common reason nothing applies.
func (a *app) hintMissingPyenv() {
	command := a.cfg.PyenvCommand
	if command != "" && command != pathutil.PyenvTool {
		return
	}
	if a.findPyenv() != "" {
		return
	}
	logutil.Debug("pyenv executable not found")
	cliout.Hint("pyenv was not found on PATH", pathutil.GetInstallSuggestion(pathutil.PyenvTool))
}
