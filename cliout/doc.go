// Package cliout provides structured output formatting for CLI commands.
//
// Output is either human-readable text or JSON, selected with SetFormat.
// Human-readable output uses ANSI colors and Unicode symbols when stdout is a
// terminal; color is dropped when output is redirected or NO_COLOR is set, and
// symbols fall back to ASCII on legacy Windows consoles.
//
// Success, Info, Label, Header and Plain write to stdout. Warning, Error and
// Hint write to stderr so that command output can be passed to eval.
//
// # Basic Usage
//
//	cliout.Success("Activated %s", name)
//	cliout.Warning("pyenv was not found on PATH")
//
//	_ = cliout.Print(result, func() {
//		cliout.Label("Shell", result.Shell)
//	})
package cliout
