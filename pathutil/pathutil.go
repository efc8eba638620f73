// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package pathutil

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// EnvPyenvRoot is the environment variable pyenv reads its installation root from.
const EnvPyenvRoot = "PYENV_ROOT"

// PyenvTool is the pyenv executable name.
const PyenvTool = "pyenv"

// FindToolInPath searches for a tool executable in the system PATH.
// Returns the full path to the executable if found, empty string otherwise.
func FindToolInPath(toolName string) string {
	path, err := exec.LookPath(executableName(toolName))
	if err != nil {
		return ""
	}

	return path
}

// SearchToolInSystemPath searches for a tool in the directories pyenv and its
// Windows port usually install into.
// This is useful for finding tools that are installed but not in the current PATH.
// Returns the full path to the executable if found, empty string otherwise.
func SearchToolInSystemPath(toolName string) string {
	exeName := executableName(toolName)

	for _, dir := range systemSearchPaths() {
		fullPath := filepath.Join(dir, exeName)
		if info, err := os.Stat(fullPath); err == nil && !info.IsDir() {
			return fullPath
		}
		// pyenv-win ships pyenv.bat rather than an .exe.
		if runtime.GOOS == "windows" {
			batPath := filepath.Join(dir, toolName+".bat")
			if _, err := os.Stat(batPath); err == nil {
				return batPath
			}
		}
	}

	return ""
}

// FindPyenv locates the pyenv executable, preferring PATH over well-known install locations.
func FindPyenv() string {
	if path := FindToolInPath(PyenvTool); path != "" {
		return path
	}
	return SearchToolInSystemPath(PyenvTool)
}

// DefaultPyenvRoot returns the pyenv root used when PYENV_ROOT is unset.
func DefaultPyenvRoot() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	if runtime.GOOS == "windows" {
		return filepath.Join(homeDir, ".pyenv", "pyenv-win")
	}
	return filepath.Join(homeDir, ".pyenv")
}

// ExpandHome replaces a leading "~" with the user's home directory.
// Paths without a leading "~" are returned unchanged.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return homeDir
	}
	return filepath.Join(homeDir, path[2:])
}

// GetInstallSuggestion returns a suggestion for how to install a missing tool.
func GetInstallSuggestion(toolName string) string {
	suggestions := map[string]string{
		"pyenv":            "Install from https://github.com/pyenv/pyenv#installation",
		"pyenv-win":        "Install from https://github.com/pyenv-win/pyenv-win#installation",
		"pyenv-virtualenv": "Install from https://github.com/pyenv/pyenv-virtualenv#installation",
		"python":           "Install with 'pyenv install <version>'",
	}

	if toolName == PyenvTool && runtime.GOOS == "windows" {
		return suggestions["pyenv-win"]
	}
	if suggestion, ok := suggestions[toolName]; ok {
		return suggestion
	}
	return fmt.Sprintf("Please install %s manually", toolName)
}

// executableName adds the .exe extension on Windows if not present.
func executableName(toolName string) string {
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(toolName), ".exe") {
		return toolName + ".exe"
	}
	return toolName
}

// systemSearchPaths returns the directories checked by SearchToolInSystemPath, in order.
func systemSearchPaths() []string {
	var searchPaths []string
	if root := os.Getenv(EnvPyenvRoot); root != "" {
		searchPaths = append(searchPaths, filepath.Join(root, "bin"))
	}

	homeDir, _ := os.UserHomeDir()
	if runtime.GOOS == "windows" {
		searchPaths = append(searchPaths,
			filepath.Join(homeDir, ".pyenv", "pyenv-win", "bin"),
			filepath.Join(os.Getenv("USERPROFILE"), ".pyenv", "pyenv-win", "bin"),
		)
		return searchPaths
	}

	return append(searchPaths,
		filepath.Join(homeDir, ".pyenv", "bin"),
		"/opt/homebrew/bin",
		"/usr/local/bin",
		"/usr/bin",
		"/bin",
	)
}
