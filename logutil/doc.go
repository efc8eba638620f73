// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package logutil holds the process-wide slog logger of pyenv-activate.
//
// Diagnostics always go to stderr so that stdout stays safe to eval:
//
//	eval "$(pyenv-activate commands)"
//
// The CLI calls SetupLogger once the configuration is loaded. Until then,
// debug records are enabled by PYENV_ACTIVATE_DEBUG=true.
//
// Packages that resolve interpreters or activation commands log through a
// ComponentLogger, which tags every record with the component and the
// environment provider:
//
//	time=... level=DEBUG msg="active interpreter lookup failed" component=terminal provider=pyenv resource=/work error="pyenv: exit status 1"
//
// Structured (JSON) records are selected with --log-format json.
package logutil
