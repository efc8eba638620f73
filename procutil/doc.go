// Package procutil provides cross-platform process utilities for detecting the
// shell a command was launched from.
//
// It uses github.com/shirou/gopsutil for process inspection, which reads
// /proc on Linux, sysctl on macOS and BSD, and the native process APIs on
// Windows. This avoids the stale PID issues of os.FindProcess + Signal(0) on
// Windows.
//
// # Key Features
//
//   - Cross-platform process running check
//   - Shell detection by walking the parent process chain
//
// # Example Usage
//
//	shell := procutil.ParentShell(ctx)
//	// "zsh" when run from zsh, even through `make` or `go run`;
//	// shellutil.DefaultShell() when no ancestor is a known shell.
package procutil
