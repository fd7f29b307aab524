// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/lotmarket/internal/platform/apperr"
	"github.com/taibuivan/lotmarket/internal/platform/constants"
	"github.com/taibuivan/lotmarket/internal/platform/respond"
)

// RateLimitOptions sizes the per-IP token bucket.
type RateLimitOptions struct {
	RequestsPerSecond float64
	Burst             int
}

// DefaultRateLimit is the bucket the API server installs.
var DefaultRateLimit = RateLimitOptions{
	RequestsPerSecond: constants.DefaultRateLimitRPS,
	Burst:             constants.DefaultRateLimitBurst,
}

var errRateLimited = apperr.TooManyRequests("Rate limit exceeded")

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiter keeps one token bucket per client IP.
type ipLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	options  RateLimitOptions
}

func (l *ipLimiter) allow(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(l.options.RequestsPerSecond), l.options.Burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// sweep forgets clients idle for longer than ttl.
func (l *ipLimiter) sweep(now time.Time, ttl time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for ip, v := range l.visitors {
		if now.Sub(v.lastSeen) > ttl {
			delete(l.visitors, ip)
		}
	}
}

// RateLimit rejects clients that exceed options with 429. Idle buckets are
// swept every [constants.RateLimitCleanupInterval] until context is done.
func RateLimit(context context.Context, options RateLimitOptions) func(http.Handler) http.Handler {
	limiter := &ipLimiter{visitors: make(map[string]*visitor), options: options}

	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case now := <-ticker.C:
				limiter.sweep(now, constants.RateLimitClientTTL)
			case <-context.Done():
				return
			}
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if !limiter.allow(RealIP(request), time.Now()) {
				respond.Error(writer, request, errRateLimited)
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}
