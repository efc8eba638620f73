// Package shellutil provides shell identification and command-line quoting utilities.
//
// This package names the shell kinds that terminal activation distinguishes,
// maps shell executables to those names, and quotes arguments so they can be
// interpolated into a one-line activation command.
//
// # Key Features
//
// - Shell identifier constants (ShellBash, ShellZsh, ShellFish, ShellPwsh, ShellCmd, ...)
// - Identify a shell from an executable path (/usr/bin/zsh → zsh, C:\...\pwsh.exe → pwsh)
// - OS-specific default shell (Windows → cmd, Unix → $SHELL or bash)
// - Whitespace-safe argument quoting (my env → "my env")
//
// # Shell Identification
//
// IdentifyShell accepts a path or a bare name. Matching is case-insensitive,
// ignores the directory and a trailing ".exe", and treats both separators
// alike so Windows paths resolve on any OS:
//
//	shellutil.IdentifyShell("/bin/zsh")                                   // "zsh"
//	shellutil.IdentifyShell(`C:\Program Files\PowerShell\7\pwsh.exe`)     // "pwsh"
//	shellutil.IdentifyShell(`C:\Program Files\Git\bin\bash.exe`)          // "gitbash"
//	shellutil.IdentifyShell("nu")                                         // "other"
//
// # Quoting
//
// ToCommandArgument wraps values containing whitespace in double quotes,
// leaving already-quoted values and values without whitespace untouched:
//
//	shellutil.ToCommandArgument("myenv")    // myenv
//	shellutil.ToCommandArgument("my env")   // "my env"
//	shellutil.ToCommandArgument(`"my env"`) // "my env"
//
// # Error Handling
//
// No function in this package returns an error. Unknown shells map to
// ShellOther and empty values pass through unchanged.
package shellutil
