// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cmdutil

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// rateLimitRunner spaces out process spawns for callers that look up many
// interpreters at once.
type rateLimitRunner struct {
	inner   Runner
	limiter *rate.Limiter
}

// WithRateLimit returns a Runner that starts at most perSecond commands per
// second, with bursts of up to twice that. A non-positive perSecond returns
// runner unchanged.
func WithRateLimit(runner Runner, perSecond int) Runner {
	if perSecond <= 0 {
		return runner
	}
	return &rateLimitRunner{
		inner:   runner,
		limiter: rate.NewLimiter(rate.Limit(perSecond), perSecond*2),
	}
}

func (r *rateLimitRunner) Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s not started: %w", name, err)
	}
	return r.inner.Run(ctx, dir, name, args...)
}
