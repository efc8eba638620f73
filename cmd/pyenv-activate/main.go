// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Command pyenv-activate prints the shell commands that activate the pyenv
// environment selected for a directory or interpreter.
//
//	eval "$(pyenv-activate commands)"
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/jongio/pyenv-activate/cliout"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, newApp(), os.Args[1:])
	stop()

	if err != nil {
		if !errors.Is(err, errNotApplicable) {
			cliout.Error("%v", err)
		}
		os.Exit(1)
	}
}
