// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIPLimiter_BucketsArePerIP(t *testing.T) {
	limiter := &ipLimiter{visitors: map[string]*visitor{}, options: RateLimitOptions{RequestsPerSecond: 1, Burst: 1}}
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, limiter.allow("10.0.0.1", now))
	assert.False(t, limiter.allow("10.0.0.1", now))
	assert.True(t, limiter.allow("10.0.0.2", now))

	// One token refills after a second.
	assert.True(t, limiter.allow("10.0.0.1", now.Add(time.Second)))
}

func TestIPLimiter_Sweep(t *testing.T) {
	limiter := &ipLimiter{visitors: map[string]*visitor{}, options: RateLimitOptions{RequestsPerSecond: 1, Burst: 1}}
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	limiter.allow("idle", now)
	limiter.allow("active", now.Add(2*time.Minute))

	limiter.sweep(now.Add(4*time.Minute), 3*time.Minute)

	assert.NotContains(t, limiter.visitors, "idle")
	assert.Contains(t, limiter.visitors, "active")
}
