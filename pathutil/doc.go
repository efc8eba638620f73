// Package pathutil locates pyenv and resolves paths that pyenv tooling uses.
//
// # Key Features
//
//   - Find executables in PATH with cross-platform executable detection
//   - Search pyenv's usual install directories for a pyenv not on PATH
//   - Resolve the default pyenv root (~/.pyenv, or ~/.pyenv/pyenv-win on Windows)
//   - Expand a leading "~" in user-supplied paths
//   - Installation suggestions for pyenv and its plugins
//
// # Search Order
//
// FindPyenv checks PATH first and then, in order:
//
//   - $PYENV_ROOT/bin
//   - ~/.pyenv/bin (~/.pyenv/pyenv-win/bin on Windows)
//   - /opt/homebrew/bin, /usr/local/bin, /usr/bin, /bin (Unix only)
//
// On Windows the .exe extension is appended automatically, and pyenv-win's
// pyenv.bat is accepted as well.
//
// # Example
//
//	pyenv := pathutil.FindPyenv()
//	if pyenv == "" {
//	    fmt.Println(pathutil.GetInstallSuggestion(pathutil.PyenvTool))
//	}
package pathutil
