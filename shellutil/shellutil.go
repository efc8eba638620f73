// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package shellutil

import (
	"os"
	"runtime"
	"strings"
)

// Shell identifiers used by terminal activation.
// These constants define the shell kinds an activation provider may be asked about.
const (
	// ShellBash is the Bourne Again Shell (default on most Unix systems).
	ShellBash = "bash"

	// ShellSh is the POSIX shell.
	ShellSh = "sh"

	// ShellZsh is the Z Shell.
	ShellZsh = "zsh"

	// ShellKsh is the Korn Shell.
	ShellKsh = "ksh"

	// ShellFish is the friendly interactive shell.
	ShellFish = "fish"

	// ShellCsh is the C Shell.
	ShellCsh = "csh"

	// ShellTcsh is the TENEX C Shell.
	ShellTcsh = "tcsh"

	// ShellXonsh is the Python-powered xonsh shell.
	ShellXonsh = "xonsh"

	// ShellGitBash is the bash that ships with Git for Windows.
	ShellGitBash = "gitbash"

	// ShellWSL is the Windows Subsystem for Linux launcher.
	ShellWSL = "wsl"

	// ShellPwsh is PowerShell Core (6.0+, cross-platform).
	ShellPwsh = "pwsh"

	// ShellPowerShell is Windows PowerShell (5.1 and earlier).
	ShellPowerShell = "powershell"

	// ShellCmd is the Windows Command Prompt.
	ShellCmd = "cmd"

	// ShellOther is any shell that is not recognized.
	ShellOther = "other"
)

// Operating system identifiers.
const (
	// osWindows identifies the Windows operating system.
	osWindows = "windows"
)

// Environment variable names.
const (
	// EnvVarShell is the login shell on Unix systems.
	EnvVarShell = "SHELL"
)

// knownShells maps lowercase executable base names to shell identifiers.
var knownShells = map[string]string{
	"bash":           ShellBash,
	"sh":             ShellSh,
	"dash":           ShellSh,
	"zsh":            ShellZsh,
	"ksh":            ShellKsh,
	"mksh":           ShellKsh,
	"fish":           ShellFish,
	"csh":            ShellCsh,
	"tcsh":           ShellTcsh,
	"xonsh":          ShellXonsh,
	"gitbash":        ShellGitBash,
	"git-bash":       ShellGitBash,
	"wsl":            ShellWSL,
	"pwsh":           ShellPwsh,
	"pwsh-preview":   ShellPwsh,
	"powershell":     ShellPowerShell,
	"powershell_ise": ShellPowerShell,
	"cmd":            ShellCmd,
}

// Shells returns every shell identifier, including ShellOther.
func Shells() []string {
	return []string{
		ShellBash, ShellSh, ShellZsh, ShellKsh, ShellFish, ShellCsh, ShellTcsh,
		ShellXonsh, ShellGitBash, ShellWSL, ShellPwsh, ShellPowerShell, ShellCmd,
		ShellOther,
	}
}

// IdentifyShell maps a shell executable path or bare name to a shell identifier.
// Matching is case-insensitive and ignores the directory and a trailing ".exe".
// Both "/" and "\" are treated as separators so Windows paths resolve on any OS.
//
// Returns ShellOther when the shell is not recognized.
func IdentifyShell(pathOrName string) string {
	normalized := strings.ToLower(strings.TrimSpace(pathOrName))
	if normalized == "" {
		return ShellOther
	}
	normalized = strings.ReplaceAll(normalized, "\\", "/")

	base := normalized
	if idx := strings.LastIndex(base, "/"); idx >= 0 {
		base = base[idx+1:]
	}
	base = strings.TrimSuffix(base, ".exe")
	// Login shells are reported as "-bash" by some process tables.
	base = strings.TrimPrefix(base, "-")

	shell, ok := knownShells[base]
	if !ok {
		return ShellOther
	}

	// Git for Windows installs bash.exe under its own tree.
	if shell == ShellBash && strings.Contains(normalized, "/git/") {
		return ShellGitBash
	}
	return shell
}

// IsKnownShell reports whether shell is one of the identifiers returned by Shells,
// excluding ShellOther.
func IsKnownShell(shell string) bool {
	if shell == ShellOther {
		return false
	}
	for _, s := range Shells() {
		if s == shell {
			return true
		}
	}
	return false
}

// DefaultShell returns the shell a new terminal is expected to run.
// On Windows this is cmd; elsewhere it is $SHELL, falling back to bash.
func DefaultShell() string {
	if runtime.GOOS == osWindows {
		return ShellCmd
	}
	if shell := IdentifyShell(os.Getenv(EnvVarShell)); shell != ShellOther {
		return shell
	}
	return ShellBash
}

// ToCommandArgument prepares a value for interpolation into a shell command line.
// A value containing whitespace is wrapped in double quotes unless it is already
// quoted. Double quotes group a single argument in POSIX shells, fish, PowerShell
// and cmd alike. Other values are returned unchanged.
//
// Only whitespace triggers quoting. Values are pyenv version and virtualenv
// names, which are directory names under the pyenv root; shell metacharacters
// such as $, backquote, ; or ' pass through as is and are expanded by the
// evaluating shell. Double quotes would not stop that expansion in POSIX
// shells either, and the quoting rules of fish, PowerShell and cmd differ.
func ToCommandArgument(value string) string {
	if value == "" {
		return value
	}
	if !strings.ContainsAny(value, " \t") {
		return value
	}
	if strings.HasPrefix(value, `"`) || strings.HasSuffix(value, `"`) {
		return value
	}
	return `"` + value + `"`
}
