// KidsEvents - Toronto Kids Events Aggregation Pipeline
// Copyright 2026 jopolko
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jopolko/kidsevents

package places

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiterEnforcesMinimumGap(t *testing.T) {
	// 20 req/s = 50ms minimum gap. Three sequential waits must span at
	// least two gaps.
	l := NewRateLimiter(20)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := l.Wait(ctx); err != nil {
			t.Fatalf("Wait() error: %v", err)
		}
	}
	elapsed := time.Since(start)

	if elapsed < 100*time.Millisecond {
		t.Errorf("three calls at 20/s finished in %v, want >= 100ms", elapsed)
	}
}

func TestRateLimiterFirstCallImmediate(t *testing.T) {
	l := NewRateLimiter(1)

	start := time.Now()
	if err := l.Wait(context.Background()); err != nil {
		t.Fatalf("Wait() error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("first call should not block, took %v", elapsed)
	}
}

func TestRateLimiterHonorsCancellation(t *testing.T) {
	l := NewRateLimiter(0.1) // 10s gap

	// Burn the initial token.
	if err := l.Wait(context.Background()); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx); err == nil {
		t.Error("expected context error while waiting for next token")
	}
}
