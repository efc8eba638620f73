// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package terminal

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jongio/pyenv-activate/interpreter"
	"github.com/jongio/pyenv-activate/logutil"
	"github.com/jongio/pyenv-activate/shellutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubService returns fixed records and errors.
type stubService struct {
	active    *interpreter.Info
	activeErr error
	byPath    map[string]*interpreter.Info
	pathErr   error

	mu        sync.Mutex
	resources []string
}

func (s *stubService) ActiveInterpreter(ctx context.Context, resource string) (*interpreter.Info, error) {
	s.mu.Lock()
	s.resources = append(s.resources, resource)
	s.mu.Unlock()
	return s.active, s.activeErr
}

func (s *stubService) InterpreterDetails(ctx context.Context, pythonPath string) (*interpreter.Info, error) {
	if s.pathErr != nil {
		return nil, s.pathErr
	}
	return s.byPath[pythonPath], nil
}

func TestPyenvProviderSupportsEveryShell(t *testing.T) {
	provider := NewPyenvProvider(&stubService{})

	for _, shell := range append(shellutil.Shells(), "", "nushell") {
		assert.True(t, provider.IsShellSupported(shell), "shell %q", shell)
	}
	assert.Equal(t, PyenvProviderName, provider.Name())
}

func TestPyenvProviderActivationCommands(t *testing.T) {
	tests := []struct {
		name   string
		info   *interpreter.Info
		want   []string
		wantOK bool
	}{
		{
			name:   "Pyenv environment",
			info:   &interpreter.Info{Type: interpreter.TypePyenv, EnvName: "myenv"},
			want:   []string{"pyenv shell myenv"},
			wantOK: true,
		},
		{
			name:   "Pyenv version",
			info:   &interpreter.Info{Type: interpreter.TypePyenv, EnvName: "3.11.4"},
			want:   []string{"pyenv shell 3.11.4"},
			wantOK: true,
		},
		{
			name:   "Name with space is quoted",
			info:   &interpreter.Info{Type: interpreter.TypePyenv, EnvName: "my env"},
			want:   []string{`pyenv shell "my env"`},
			wantOK: true,
		},
		{
			name: "Pyenv without environment name",
			info: &interpreter.Info{Type: interpreter.TypePyenv, Path: "/x/bin/python"},
		},
		{
			name: "Conda with environment name",
			info: &interpreter.Info{Type: interpreter.TypeConda, EnvName: "myenv"},
		},
		{
			name: "Venv with environment name",
			info: &interpreter.Info{Type: interpreter.TypeVenv, EnvName: "myenv"},
		},
		{
			name: "Unknown",
			info: &interpreter.Info{Type: interpreter.TypeUnknown},
		},
		{
			name: "No interpreter",
			info: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{
				active: tt.info,
				byPath: map[string]*interpreter.Info{"/py": tt.info},
			}
			provider := NewPyenvProvider(svc)

			for _, shell := range []string{shellutil.ShellBash, shellutil.ShellPwsh, shellutil.ShellOther} {
				got, ok := provider.ActivationCommands(context.Background(), "/work", shell)
				assert.Equal(t, tt.wantOK, ok, "ActivationCommands ok for %s", shell)
				assert.Equal(t, tt.want, got, "ActivationCommands for %s", shell)

				got, ok = provider.ActivationCommandsForInterpreter(context.Background(), "/py", shell)
				assert.Equal(t, tt.wantOK, ok, "ActivationCommandsForInterpreter ok for %s", shell)
				assert.Equal(t, tt.want, got, "ActivationCommandsForInterpreter for %s", shell)
			}
		})
	}
}

func TestPyenvProviderPassesResource(t *testing.T) {
	svc := &stubService{active: &interpreter.Info{Type: interpreter.TypePyenv, EnvName: "proj"}}
	provider := NewPyenvProvider(svc)

	_, ok := provider.ActivationCommands(context.Background(), "/workspaces/proj", shellutil.ShellZsh)
	require.True(t, ok)
	assert.Equal(t, []string{"/workspaces/proj"}, svc.resources)
}

func TestPyenvProviderLookupErrorsAreAbsent(t *testing.T) {
	svc := &stubService{
		activeErr: errors.New("pyenv: command not found"),
		pathErr:   errors.New("pyenv root unavailable"),
	}
	provider := NewPyenvProvider(svc)

	got, ok := provider.ActivationCommands(context.Background(), "", shellutil.ShellBash)
	assert.False(t, ok)
	assert.Nil(t, got)

	got, ok = provider.ActivationCommandsForInterpreter(context.Background(), "/py", shellutil.ShellBash)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestPyenvProviderLogsLookupErrors(t *testing.T) {
	var buf bytes.Buffer
	logutil.SetupLoggerWithWriter(&buf, true, false)
	t.Cleanup(func() { logutil.SetupLogger(false, false) })

	provider := NewPyenvProvider(&stubService{
		activeErr: errors.New("pyenv: command not found"),
		pathErr:   errors.New("pyenv root unavailable"),
	})

	_, ok := provider.ActivationCommands(context.Background(), "/work", shellutil.ShellBash)
	require.False(t, ok)
	_, ok = provider.ActivationCommandsForInterpreter(context.Background(), "/opt/py/bin/python", shellutil.ShellBash)
	require.False(t, ok)

	out := buf.String()
	assert.Contains(t, out, `msg="active interpreter lookup failed" component=terminal provider=pyenv resource=/work error="pyenv: command not found"`)
	assert.Contains(t, out, `msg="interpreter lookup failed" component=terminal provider=pyenv python=/opt/py/bin/python error="pyenv root unavailable"`)
}

func TestPyenvProviderUnknownPath(t *testing.T) {
	provider := NewPyenvProvider(&stubService{byPath: map[string]*interpreter.Info{}})

	got, ok := provider.ActivationCommandsForInterpreter(context.Background(), "/not/known", shellutil.ShellFish)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestPyenvProviderConcurrentCalls(t *testing.T) {
	svc := &stubService{active: &interpreter.Info{Type: interpreter.TypePyenv, EnvName: "myenv"}}
	provider := NewPyenvProvider(svc)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, ok := provider.ActivationCommands(context.Background(), "/work", shellutil.ShellBash)
			assert.True(t, ok)
			assert.Equal(t, []string{"pyenv shell myenv"}, got)
		}()
	}
	wg.Wait()
}
