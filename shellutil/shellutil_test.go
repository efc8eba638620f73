// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package shellutil

import (
	"runtime"
	"testing"
)

func TestIdentifyShell(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "Bare bash", path: "bash", want: ShellBash},
		{name: "Absolute bash", path: "/bin/bash", want: ShellBash},
		{name: "Login bash", path: "-bash", want: ShellBash},
		{name: "Dash is sh", path: "/usr/bin/dash", want: ShellSh},
		{name: "Zsh", path: "/usr/local/bin/zsh", want: ShellZsh},
		{name: "Fish", path: "/opt/homebrew/bin/fish", want: ShellFish},
		{name: "Ksh", path: "/bin/ksh", want: ShellKsh},
		{name: "Csh", path: "/bin/csh", want: ShellCsh},
		{name: "Tcsh", path: "/bin/tcsh", want: ShellTcsh},
		{name: "Xonsh", path: "/home/me/.local/bin/xonsh", want: ShellXonsh},
		{name: "Pwsh on Windows", path: `C:\Program Files\PowerShell\7\pwsh.exe`, want: ShellPwsh},
		{name: "Windows PowerShell", path: `C:\Windows\System32\WindowsPowerShell\v1.0\powershell.exe`, want: ShellPowerShell},
		{name: "Uppercase cmd", path: `C:\Windows\System32\CMD.EXE`, want: ShellCmd},
		{name: "Git bash", path: `C:\Program Files\Git\bin\bash.exe`, want: ShellGitBash},
		{name: "WSL", path: `C:\Windows\System32\wsl.exe`, want: ShellWSL},
		{name: "Unknown", path: "/usr/bin/nu", want: ShellOther},
		{name: "Empty", path: "", want: ShellOther},
		{name: "Whitespace", path: "   ", want: ShellOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IdentifyShell(tt.path)
			if got != tt.want {
				t.Errorf("IdentifyShell(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestIsKnownShell(t *testing.T) {
	for _, shell := range Shells() {
		want := shell != ShellOther
		if got := IsKnownShell(shell); got != want {
			t.Errorf("IsKnownShell(%q) = %v, want %v", shell, got, want)
		}
	}
	if IsKnownShell("nushell") {
		t.Error("IsKnownShell(nushell) = true, want false")
	}
}

func TestDefaultShell(t *testing.T) {
	if runtime.GOOS == osWindows {
		if got := DefaultShell(); got != ShellCmd {
			t.Errorf("DefaultShell() on Windows = %q, want %q", got, ShellCmd)
		}
		return
	}

	t.Setenv(EnvVarShell, "/usr/bin/fish")
	if got := DefaultShell(); got != ShellFish {
		t.Errorf("DefaultShell() with SHELL=fish = %q, want %q", got, ShellFish)
	}

	t.Setenv(EnvVarShell, "")
	if got := DefaultShell(); got != ShellBash {
		t.Errorf("DefaultShell() without SHELL = %q, want %q", got, ShellBash)
	}

	t.Setenv(EnvVarShell, "/usr/bin/unknown-shell")
	if got := DefaultShell(); got != ShellBash {
		t.Errorf("DefaultShell() with unknown SHELL = %q, want %q", got, ShellBash)
	}
}

func TestToCommandArgument(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "Empty", value: "", want: ""},
		{name: "Plain name", value: "myenv", want: "myenv"},
		{name: "Version", value: "3.11.4", want: "3.11.4"},
		{name: "Space", value: "my env", want: `"my env"`},
		{name: "Tab", value: "my\tenv", want: "\"my\tenv\""},
		{name: "Already quoted", value: `"my env"`, want: `"my env"`},
		{name: "Leading quote only", value: `"my env`, want: `"my env`},
		{name: "Path with spaces", value: "/home/me/my envs/py", want: `"/home/me/my envs/py"`},
		{name: "Dollar is not quoted", value: "a$b", want: "a$b"},
		{name: "Backquote is not quoted", value: "a`b`", want: "a`b`"},
		{name: "Semicolon is not quoted", value: "a;b", want: "a;b"},
		{name: "Single quote is not quoted", value: "it's", want: "it's"},
		{name: "Dollar with space", value: "my $env", want: `"my $env"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToCommandArgument(tt.value)
			if got != tt.want {
				t.Errorf("ToCommandArgument(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
