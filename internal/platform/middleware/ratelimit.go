// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/techblog/internal/platform/apperr"
	"github.com/taibuivan/techblog/internal/platform/constants"
	"github.com/taibuivan/techblog/internal/platform/respond"
)

// # Rate Limiting

// RateLimitOptions configures [RateLimit]. Zero values use the constants defaults.
type RateLimitOptions struct {
	RPS   float64
	Burst int
	// Exempt lists path prefixes that are never limited, such as health probes
	// and the CMS webhook, which fires in bursts on bulk publishes.
	Exempt []string
}

type rateLimitClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type clientLimiters struct {
	mu      sync.Mutex
	clients map[string]*rateLimitClient
	rps     rate.Limit
	burst   int
}

// reserve takes a token for ip and reports how long the caller must wait when none is left.
func (set *clientLimiters) reserve(ip string, now time.Time) (time.Duration, bool) {
	set.mu.Lock()
	defer set.mu.Unlock()

	client, found := set.clients[ip]
	if !found {
		client = &rateLimitClient{limiter: rate.NewLimiter(set.rps, set.burst)}
		set.clients[ip] = client
	}
	client.lastSeen = now

	reservation := client.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return time.Second, false
	}
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return delay, false
	}
	return 0, true
}

func (set *clientLimiters) sweep(now time.Time) {
	set.mu.Lock()
	defer set.mu.Unlock()

	for ip, client := range set.clients {
		if now.Sub(client.lastSeen) > constants.RateLimitClientTTL {
			delete(set.clients, ip)
		}
	}
}

// RateLimit limits requests per client IP with a token bucket. Idle clients
// are swept until ctx is cancelled. Rejected requests get a 429 with Retry-After.
func RateLimit(ctx context.Context, opts RateLimitOptions) func(http.Handler) http.Handler {
	set := &clientLimiters{
		clients: make(map[string]*rateLimitClient),
		rps:     rate.Limit(constants.DefaultRateLimitRPS),
		burst:   constants.DefaultRateLimitBurst,
	}
	if opts.RPS > 0 {
		set.rps = rate.Limit(opts.RPS)
	}
	if opts.Burst > 0 {
		set.burst = opts.Burst
	}

	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case now := <-ticker.C:
				set.sweep(now)
			case <-ctx.Done():
				return
			}
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			for _, prefix := range opts.Exempt {
				if strings.HasPrefix(request.URL.Path, prefix) {
					next.ServeHTTP(writer, request)
					return
				}
			}

			wait, ok := set.reserve(RealIP(request), time.Now())
			if !ok {
				seconds := max(1, int(math.Ceil(wait.Seconds())))
				writer.Header().Set(constants.HeaderRetryAfter, strconv.Itoa(seconds))
				respond.Error(writer, request, apperr.RateLimited(seconds))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
