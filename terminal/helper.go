// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package terminal

import (
	"context"
	"sync"
	"time"

	"github.com/jongio/pyenv-activate/logutil"
)

// Helper asks registered providers, in registration order, for activation commands.
// It is safe for concurrent use.
type Helper struct {
	mu        sync.RWMutex
	providers []ActivationCommandProvider
	log       *logutil.ComponentLogger
}

// NewHelper creates a Helper with providers registered in priority order.
func NewHelper(providers ...ActivationCommandProvider) *Helper {
	h := &Helper{
		log: logutil.NewLogger("terminal").WithOperation("activation"),
	}
	for _, p := range providers {
		h.Register(p)
	}
	return h
}

// Register appends a provider; earlier registrations take precedence. Nil providers are ignored.
func (h *Helper) Register(provider ActivationCommandProvider) {
	if provider == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.providers = append(h.providers, provider)
}

// Providers returns a copy of the registered providers.
func (h *Helper) Providers() []ActivationCommandProvider {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]ActivationCommandProvider(nil), h.providers...)
}

// EnvironmentActivationCommands returns the first applicable provider's commands
// for the interpreter active in resource.
func (h *Helper) EnvironmentActivationCommands(ctx context.Context, shell string, resource string) ([]string, bool) {
	return h.firstApplicable(ctx, shell, modeActive, func(p ActivationCommandProvider) ([]string, bool) {
		return p.ActivationCommands(ctx, resource, shell)
	})
}

// EnvironmentActivationCommandsForInterpreter returns the first applicable provider's
// commands for the interpreter at pythonPath.
func (h *Helper) EnvironmentActivationCommandsForInterpreter(ctx context.Context, shell string, pythonPath string) ([]string, bool) {
	return h.firstApplicable(ctx, shell, modePath, func(p ActivationCommandProvider) ([]string, bool) {
		return p.ActivationCommandsForInterpreter(ctx, pythonPath, shell)
	})
}

func (h *Helper) firstApplicable(ctx context.Context, shell, mode string, lookup func(ActivationCommandProvider) ([]string, bool)) ([]string, bool) {
	for _, p := range h.Providers() {
		if ctx.Err() != nil {
			return nil, false
		}

		if !p.IsShellSupported(shell) {
			recordLookup(p.Name(), mode, outcomeUnsupported, 0)
			continue
		}

		start := time.Now()
		commands, ok := lookup(p)
		if ok && len(commands) > 0 {
			recordLookup(p.Name(), mode, outcomeApplied, time.Since(start))
			h.log.Debug("activation commands resolved", "provider", p.Name(), "shell", shell, "mode", mode)
			return commands, true
		}
		recordLookup(p.Name(), mode, outcomeSkipped, time.Since(start))
	}

	return nil, false
}
