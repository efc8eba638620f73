// Package interpreter defines Python interpreter records and the lookup capability
// terminal activation consumes, plus a pyenv-backed implementation.
//
// A Service answers two questions: which interpreter is active for a workspace
// directory, and what is known about an interpreter at a given path. A
// (nil, nil) result means "no interpreter", which callers treat the same as
// "not applicable".
//
// PyenvService answers both from a pyenv installation:
//
//	svc := interpreter.NewPyenvService(interpreter.PyenvOptions{})
//	info, err := svc.ActiveInterpreter(ctx, "/path/to/project")
//	if err == nil && info.IsPyenv() {
//	    fmt.Println(info.EnvName) // e.g. "3.11.4" or "myenv"
//	}
//
// Layouts under the pyenv root map to environment names as follows:
//
//	<root>/versions/3.11.4/bin/python             → Pyenv, EnvName "3.11.4"
//	<root>/versions/3.11.4/envs/myenv/bin/python  → Pyenv, EnvName "myenv"
//	<root>/shims/python                           → the active version
//	/usr/bin/python3                              → Unknown
package interpreter
