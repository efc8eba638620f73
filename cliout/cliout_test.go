// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cliout

import (
	"strings"
	"testing"

	"github.com/jongio/pyenv-activate/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withFormat(t *testing.T, format string) {
	t.Helper()
	prev := GetFormat()
	require.NoError(t, SetFormat(format))
	t.Cleanup(func() { _ = SetFormat(string(prev)) })
}

func withoutColor(t *testing.T) {
	t.Helper()
	prev := ColorEnabled()
	NoColor()
	t.Cleanup(func() {
		if prev {
			ForceColor()
		}
	})
}

func TestSetFormat(t *testing.T) {
	withFormat(t, "default")

	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"default", FormatDefault, false},
		{"", FormatDefault, false},
		{"yaml", FormatDefault, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := SetFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, GetFormat())
			assert.Equal(t, tt.want == FormatJSON, IsJSON())
		})
	}
}

func TestPrintJSON(t *testing.T) {
	withFormat(t, "json")

	out := testutil.CaptureOutput(t, func() error {
		return Print(map[string]string{"shell": "bash"}, func() {
			t.Error("formatter must not run in JSON mode")
		})
	})

	assert.JSONEq(t, `{"shell":"bash"}`, out)
}

func TestPrintDefault(t *testing.T) {
	withFormat(t, "default")
	withoutColor(t)

	out := testutil.CaptureOutput(t, func() error {
		return Print(nil, func() {
			Label("Shell", "zsh")
		})
	})

	assert.Equal(t, "   Shell:       zsh\n", out)
}

func TestNoColorOutputIsPlain(t *testing.T) {
	withoutColor(t)

	out := testutil.CaptureOutput(t, func() error {
		Success("done")
		Info("note")
		Header("Title")
		return nil
	})

	assert.NotContains(t, out, "\033[")
	assert.Contains(t, out, "done")
	assert.Contains(t, out, "Title\n=====")
}

func TestForceColor(t *testing.T) {
	withoutColor(t)
	ForceColor()

	assert.True(t, ColorEnabled())
	assert.Equal(t, Dim+"x"+Reset, Muted("x"))
	assert.True(t, strings.HasPrefix(Highlight("x"), Bold+Cyan))
}

func TestDiagnosticsGoToStderr(t *testing.T) {
	withoutColor(t)

	var stderr string
	stdout := testutil.CaptureOutput(t, func() error {
		stderr = testutil.CaptureStderr(t, func() error {
			Warning("pyenv not found")
			Error("failed: %s", "boom")
			Hint("install pyenv", "set PYENV_ROOT")
			Hint()
			return nil
		})
		return nil
	})

	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "pyenv not found")
	assert.Contains(t, stderr, "failed: boom")
	assert.Contains(t, stderr, "install pyenv • set PYENV_ROOT")
}

func TestPlain(t *testing.T) {
	out := testutil.CaptureOutput(t, func() error {
		Plain("pyenv shell %s", "myenv")
		return nil
	})
	assert.Equal(t, "pyenv shell myenv\n", out)
}

func TestDetectNoColor(t *testing.T) {
	t.Setenv(EnvNoColor, "")
	assert.True(t, detectNoColor(), "NO_COLOR set to any value disables color")
}
