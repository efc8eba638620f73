// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package interpreter

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"sync"

	"github.com/jongio/pyenv-activate/cache"
	"github.com/jongio/pyenv-activate/cmdutil"
	"github.com/jongio/pyenv-activate/fileutil"
	"github.com/jongio/pyenv-activate/logutil"
	"github.com/jongio/pyenv-activate/pathutil"
)

const (
	// systemVersion is what pyenv reports when no pyenv version is selected.
	systemVersion = "system"

	versionsDir = "versions"
	envsDir     = "envs"
	shimsDir    = "shims"
	pyvenvCfg   = "pyvenv.cfg"
)

var pythonVersionPattern = regexp.MustCompile(`(\d+\.\d+(?:\.\d+)?(?:[a-z]+\d*)?)`)

// PyenvOptions configures a PyenvService.
type PyenvOptions struct {
	Root         string         // pyenv root; resolved from PYENV_ROOT, `pyenv root`, or ~/.pyenv when empty
	Command      string         // pyenv executable; defaults to "pyenv"
	Runner       cmdutil.Runner // runs pyenv; defaults to cmdutil.ExecRunner
	PythonRunner cmdutil.Runner // runs `python --version`; defaults to Runner
	Cache        *cache.Store // optional cache of interpreter versions
}

// PyenvService resolves interpreter records from a pyenv installation.
// It is safe for concurrent use.
type PyenvService struct {
	command      string
	runner       cmdutil.Runner
	pythonRunner cmdutil.Runner
	cache        *cache.Store
	log          *logutil.ComponentLogger

	mu   sync.Mutex
	root string
}

// NewPyenvService creates a PyenvService.
func NewPyenvService(opts PyenvOptions) *PyenvService {
	command := opts.Command
	if command == "" {
		command = pathutil.PyenvTool
	}
	runner := opts.Runner
	if runner == nil {
		runner = &cmdutil.ExecRunner{}
	}
	pythonRunner := opts.PythonRunner
	if pythonRunner == nil {
		pythonRunner = runner
	}

	root := opts.Root
	if root != "" {
		root = absPath(pathutil.ExpandHome(root))
	}

	return &PyenvService{
		command:      command,
		runner:       runner,
		pythonRunner: pythonRunner,
		cache:        opts.Cache,
		log:          logutil.NewLogger("interpreter").WithProvider("pyenv"),
		root:         root,
	}
}

// Root returns the pyenv root directory.
// The first successful resolution is remembered.
func (s *PyenvService) Root(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.root != "" {
		return s.root, nil
	}

	if env := os.Getenv(pathutil.EnvPyenvRoot); env != "" {
		s.root = absPath(pathutil.ExpandHome(env))
		return s.root, nil
	}

	output, err := s.runner.Run(ctx, "", s.command, "root")
	if err == nil {
		if root := cmdutil.FirstLine(output); root != "" {
			s.root = absPath(root)
			return s.root, nil
		}
	} else {
		s.log.Debug("pyenv root query failed", "error", err)
	}

	if root := pathutil.DefaultPyenvRoot(); root != "" && fileutil.DirExists(root) {
		s.root = root
		return s.root, nil
	}

	if err != nil {
		return "", fmt.Errorf("failed to resolve pyenv root: %w", err)
	}
	return "", fmt.Errorf("failed to resolve pyenv root: %s is not set and no pyenv installation was found", pathutil.EnvPyenvRoot)
}

// ActiveInterpreter returns the pyenv version selected for the resource directory.
// pyenv honours .python-version files in that directory and its parents.
// The "system" version yields an Unknown record; a version that is not
// installed under the pyenv root yields no record.
func (s *PyenvService) ActiveInterpreter(ctx context.Context, resource string) (*Info, error) {
	output, err := s.runner.Run(ctx, resource, s.command, "version-name")
	if err != nil {
		return nil, fmt.Errorf("failed to resolve active pyenv version: %w", err)
	}

	// Multiple selected versions are reported as "3.12.0:3.11.4"; the first wins.
	name := strings.TrimSpace(strings.SplitN(cmdutil.FirstLine(output), ":", 2)[0])
	if name == "" {
		return nil, nil
	}

	if name == systemVersion {
		info := &Info{Type: TypeUnknown, Version: systemVersion}
		if which, whichErr := s.runner.Run(ctx, resource, s.command, "which", "python"); whichErr == nil {
			info.Path = cmdutil.FirstLine(which)
		}
		return info, nil
	}

	root, err := s.Root(ctx)
	if err != nil {
		return nil, err
	}

	envPath := filepath.Join(root, versionsDir, name)
	if !fileutil.DirExists(envPath) {
		s.log.Debug("active pyenv version is not installed", "version", name, "root", root)
		return nil, nil
	}

	// pyenv-virtualenv links versions/<env> to versions/<python>/envs/<env>.
	resolved, err := filepath.EvalSymlinks(envPath)
	if err != nil {
		resolved = envPath
	}

	python := pythonExecutable(resolved)
	return &Info{
		Path:    python,
		Type:    TypePyenv,
		EnvName: name,
		EnvPath: envPath,
		Version: s.pythonVersion(ctx, resolved, python),
	}, nil
}

// InterpreterDetails returns the record for an explicit interpreter path.
// Paths under <root>/versions/<name> are pyenv-managed with environment <name>;
// paths under <root>/versions/<python>/envs/<name> are pyenv-virtualenv
// environments named <name>. A pyenv shim resolves to the active version.
// Any other path is reported as Unknown.
func (s *PyenvService) InterpreterDetails(ctx context.Context, pythonPath string) (*Info, error) {
	if strings.TrimSpace(pythonPath) == "" {
		return nil, nil
	}

	path := absPath(pathutil.ExpandHome(pythonPath))

	root, err := s.Root(ctx)
	if err != nil {
		return nil, err
	}

	if rel, ok := within(root, path); ok && firstSegment(rel) == shimsDir {
		return s.ActiveInterpreter(ctx, "")
	}

	rel, ok := within(filepath.Join(root, versionsDir), path)
	if !ok {
		return &Info{Path: path, Type: TypeUnknown}, nil
	}

	parts := strings.Split(rel, "/")
	name := parts[0]
	envPath := filepath.Join(root, versionsDir, name)
	if len(parts) >= 3 && parts[1] == envsDir && parts[2] != "" {
		name = parts[2]
		envPath = filepath.Join(root, versionsDir, parts[0], envsDir, parts[2])
	}

	return &Info{
		Path:    path,
		Type:    TypePyenv,
		EnvName: name,
		EnvPath: envPath,
		Version: s.pythonVersion(ctx, envPath, path),
	}, nil
}

// pythonVersion reports the interpreter version, preferring pyvenv.cfg over
// running the interpreter. Failures yield an empty version.
func (s *PyenvService) pythonVersion(ctx context.Context, envPath, python string) string {
	if version := readPyvenvVersion(filepath.Join(envPath, pyvenvCfg)); version != "" {
		return version
	}

	if s.cache != nil {
		cached, ok, err := s.cache.Lookup(python)
		if err != nil {
			s.log.Debug("cached python version unavailable", "python", python, "error", err)
		}
		if ok {
			return cached
		}
	}

	output, err := s.pythonRunner.Run(ctx, "", python, "--version")
	if err != nil {
		s.log.Debug("python version query failed", "python", python, "error", err)
		return ""
	}
	version := parsePythonVersion(cmdutil.FirstLine(output))

	if version != "" && s.cache != nil {
		if err := s.cache.Record(python, version); err != nil {
			s.log.Debug("failed to cache python version", "python", python, "error", err)
		}
	}
	return version
}

// readPyvenvVersion reads the Python version from a pyvenv.cfg file.
// venv writes "version = X.Y.Z"; virtualenv writes "version_info = X.Y.Z.final.0".
func readPyvenvVersion(path string) string {
	// #nosec G304 -- path is built from the pyenv root
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer func() { _ = f.Close() }()

	var versionInfo string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, found := strings.Cut(scanner.Text(), "=")
		if !found {
			continue
		}
		switch strings.TrimSpace(key) {
		case "version":
			return strings.TrimSpace(value)
		case "version_info":
			versionInfo = strings.TrimSpace(value)
		}
	}

	if versionInfo == "" {
		return ""
	}
	parts := strings.Split(versionInfo, ".")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return strings.Join(parts, ".")
}

// parsePythonVersion extracts the version from `python --version` output.
func parsePythonVersion(output string) string {
	return pythonVersionPattern.FindString(output)
}

// pythonExecutable returns the interpreter inside a pyenv version directory.
func pythonExecutable(envPath string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(envPath, "python.exe")
	}
	return filepath.Join(envPath, "bin", "python")
}

// within reports whether path is strictly inside dir and returns the
// slash-separated relative path.
func within(dir, path string) (string, bool) {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return rel, true
}

func firstSegment(rel string) string {
	first, _, _ := strings.Cut(rel, "/")
	return first
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
