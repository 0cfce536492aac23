// Package ratelimit paces page loads so a batch run does not hammer the
// platform. One token bucket per host, one token per navigation.
package ratelimit

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// HostLimiter applies a token-bucket limit per host.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	perHost  rate.Limit
	burst    int
}

// NewHostLimiter creates a limiter allowing requestsPerSecond sustained
// navigations per host with the given burst capacity.
func NewHostLimiter(requestsPerSecond float64, burst int) *HostLimiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 0.5
	}
	if burst <= 0 {
		burst = 1
	}
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		perHost:  rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

// Wait blocks until a navigation to urlStr may proceed, or the context ends.
// Unparseable URLs pass through; they will fail at navigation anyway.
func (hl *HostLimiter) Wait(ctx context.Context, urlStr string) error {
	host := extractHost(urlStr)
	if host == "" {
		return nil
	}
	return hl.limiter(host).Wait(ctx)
}

// Allow reports whether a navigation to urlStr could proceed immediately.
func (hl *HostLimiter) Allow(urlStr string) bool {
	host := extractHost(urlStr)
	if host == "" {
		return true
	}
	return hl.limiter(host).Allow()
}

func (hl *HostLimiter) limiter(host string) *rate.Limiter {
	hl.mu.Lock()
	defer hl.mu.Unlock()
	lim, ok := hl.limiters[host]
	if !ok {
		lim = rate.NewLimiter(hl.perHost, hl.burst)
		hl.limiters[host] = lim
	}
	return lim
}

func extractHost(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return u.Host
}
