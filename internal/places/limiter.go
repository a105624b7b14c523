// KidsEvents - Toronto Kids Events Aggregation Pipeline
// Copyright 2026 jopolko
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jopolko/kidsevents

package places

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter gates external place search calls. Wait blocks until a call
// is permitted or the context is cancelled. Implementations may use any
// pacing strategy; the cache only requires that Wait is honored before
// every external request.
type Limiter interface {
	Wait(ctx context.Context) error
}

// rateLimiter enforces a fixed minimum gap between calls using a token
// bucket with burst 1, which degenerates to exactly one call per
// 1/perSecond interval.
type rateLimiter struct {
	l *rate.Limiter
}

// NewRateLimiter returns a Limiter permitting at most perSecond calls
// per second, evenly spaced.
func NewRateLimiter(perSecond float64) Limiter {
	return &rateLimiter{l: rate.NewLimiter(rate.Limit(perSecond), 1)}
}

func (r *rateLimiter) Wait(ctx context.Context) error {
	return r.l.Wait(ctx)
}
