// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package security checks files whose contents decide which programs
// pyenv-activate executes.
package security

import (
	"errors"
	"fmt"
	"os"
	"runtime"
)

// ErrInsecureFilePermissions indicates a file has insecure (group or world writable) permissions.
var ErrInsecureFilePermissions = errors.New("insecure file permissions")

// IsContainerEnvironment detects if the code is running in a containerized environment.
// It checks for:
// - GitHub Codespaces (CODESPACES=true)
// - VS Code Dev Containers (REMOTE_CONTAINERS=true)
// - Docker containers (/.dockerenv file exists)
// - Kubernetes pods (KUBERNETES_SERVICE_HOST set)
func IsContainerEnvironment() bool {
	if os.Getenv("CODESPACES") == "true" {
		return true
	}
	if os.Getenv("REMOTE_CONTAINERS") == "true" {
		return true
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}
	return false
}

// ValidateFilePermissions checks that a file cannot be modified by other users.
// On Windows the check is skipped as Windows uses ACLs.
// Returns ErrInsecureFilePermissions for group or world writable files.
// Callers may downgrade that to a warning inside container environments,
// where bind mounts commonly carry loose permissions.
func ValidateFilePermissions(path string) error {
	if runtime.GOOS == "windows" {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}

	if info.Mode().Perm()&0o022 != 0 {
		return fmt.Errorf("%w: %s is writable by other users (mode %s)", ErrInsecureFilePermissions, path, info.Mode().Perm())
	}
	return nil
}
