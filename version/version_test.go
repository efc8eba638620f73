// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package version

import (
	"encoding/json"
	"runtime"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/jongio/pyenv-activate/cliout"
	"github.com/jongio/pyenv-activate/testutil"
)

func TestNew(t *testing.T) {
	info := New("pyenv-activate")

	if info.Name != "pyenv-activate" {
		t.Errorf("expected Name 'pyenv-activate', got %q", info.Name)
	}
	if info.Version != Version {
		t.Errorf("expected Version %q, got %q", Version, info.Version)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("expected GoVersion %q, got %q", runtime.Version(), info.GoVersion)
	}
	if info.Platform != runtime.GOOS+"/"+runtime.GOARCH {
		t.Errorf("unexpected Platform %q", info.Platform)
	}
}

func TestApplyBuildSettings(t *testing.T) {
	info := &Info{GitCommit: "unknown", BuildDate: "unknown"}
	info.applyBuildSettings([]debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef0123"},
		{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		{Key: "GOOS", Value: "linux"},
	})

	if info.GitCommit != "0123456789ab" {
		t.Errorf("expected short revision, got %q", info.GitCommit)
	}
	if info.BuildDate != "2026-01-02T03:04:05Z" {
		t.Errorf("expected vcs.time, got %q", info.BuildDate)
	}
}

func TestInfo_String(t *testing.T) {
	info := &Info{
		Version:   "1.2.3",
		BuildDate: "2024-01-01",
		GitCommit: "abc123",
		Name:      "pyenv-activate",
	}
	got := info.String()
	expected := "pyenv-activate version 1.2.3 (commit: abc123, built: 2024-01-01)"
	if got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func setFormat(t *testing.T, format string) {
	t.Helper()
	if err := cliout.SetFormat(format); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = cliout.SetFormat("default") })
}

func TestNewCommand_HumanReadable(t *testing.T) {
	setFormat(t, "default")
	cmd := NewCommand(&Info{Name: "pyenv-activate", Version: "1.0.0"})

	output := testutil.CaptureOutput(t, func() error {
		cmd.SetArgs([]string{})
		return cmd.Execute()
	})
	for _, want := range []string{"Version", "Build Date", "Git Commit", "Platform", "1.0.0"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestNewCommand_Quiet(t *testing.T) {
	setFormat(t, "default")
	cmd := NewCommand(&Info{Name: "pyenv-activate", Version: "1.0.0"})

	output := testutil.CaptureOutput(t, func() error {
		cmd.SetArgs([]string{"--quiet"})
		return cmd.Execute()
	})
	if output != "1.0.0\n" {
		t.Errorf("expected only version, got %q", output)
	}
}

func TestNewCommand_JSON(t *testing.T) {
	setFormat(t, "json")
	cmd := NewCommand(&Info{Name: "pyenv-activate", Version: "1.0.0", GitCommit: "abc"})

	output := testutil.CaptureOutput(t, func() error {
		cmd.SetArgs([]string{})
		return cmd.Execute()
	})

	var got Info
	if err := json.Unmarshal([]byte(output), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", output, err)
	}
	if got.Version != "1.0.0" || got.GitCommit != "abc" {
		t.Errorf("unexpected info %+v", got)
	}
}
