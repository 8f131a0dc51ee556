// Copyright (c) 2026 Staffdesk. All rights reserved.
// Author: quang.nguyendinh.dev@gmail.com

package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/ndquang/staffdesk/internal/platform/constants"
)

// visitorRegistry tracks one token bucket per client IP.
//
// Entries for idle clients are reaped by a background sweep so the map stays
// bounded by the set of recently active IPs.
type visitorRegistry struct {
	mu       sync.Mutex
	visitors map[string]*visitor
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// take returns whether the client may proceed, creating a bucket on first
// contact.
func (registry *visitorRegistry) take(ip string) bool {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	entry, ok := registry.visitors[ip]
	if !ok {
		entry = &visitor{
			limiter: rate.NewLimiter(rate.Limit(constants.DefaultRateLimitRPS), constants.DefaultRateLimitBurst),
		}
		registry.visitors[ip] = entry
	}
	entry.lastSeen = time.Now()

	return entry.limiter.Allow()
}

// sweep removes buckets for clients that have been idle past the TTL. It
// runs until ctx is cancelled.
func (registry *visitorRegistry) sweep(ctx context.Context) {
	ticker := time.NewTicker(constants.RateLimitCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			registry.mu.Lock()
			for ip, entry := range registry.visitors {
				if time.Since(entry.lastSeen) > constants.RateLimitClientTTL {
					delete(registry.visitors, ip)
				}
			}
			registry.mu.Unlock()
		case <-ctx.Done():
			return
		}
	}
}

// RateLimit enforces a per-IP request budget using token buckets.
//
// ctx bounds the lifetime of the background sweep goroutine; pass the
// application's root context so the goroutine dies with the server.
func RateLimit(ctx context.Context) func(http.Handler) http.Handler {
	registry := &visitorRegistry{visitors: make(map[string]*visitor)}
	go registry.sweep(ctx)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if !registry.take(RealIP(request)) {
				writeError(writer, http.StatusTooManyRequests, "TOO_MANY_REQUESTS", "Rate limit exceeded")
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}
