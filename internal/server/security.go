package server

import (
	"math"
	"net"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"github.com/osse101/armory/internal/logger"
)

// RequestSizeLimitMiddleware limits request body size
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// ClientRateLimiter hands each client IP its own token bucket. Buckets of
// clients that go quiet are evicted, so the map stays bounded.
type ClientRateLimiter struct {
	limit          rate.Limit
	burst          int
	trustedProxies []string
	limiters       *expirable.LRU[string, *rate.Limiter]
}

// NewClientRateLimiter allows perSecond requests per client with the given burst
func NewClientRateLimiter(perSecond float64, burst int, trustedProxies []string) *ClientRateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &ClientRateLimiter{
		limit:          rate.Limit(perSecond),
		burst:          burst,
		trustedProxies: trustedProxies,
		limiters:       expirable.NewLRU[string, *rate.Limiter](ClientLimiterCacheSize, nil, ClientLimiterIdleTTL),
	}
}

// Allow reports whether the client may make a request now
func (l *ClientRateLimiter) Allow(ip string) bool {
	return l.limiter(ip).Allow()
}

func (l *ClientRateLimiter) limiter(ip string) *rate.Limiter {
	if lim, ok := l.limiters.Get(ip); ok {
		return lim
	}
	lim := rate.NewLimiter(l.limit, l.burst)
	// A concurrent first request may also add one; either bucket is fine
	l.limiters.Add(ip, lim)
	return lim
}

// Middleware rejects requests over the client's rate with 429
func (l *ClientRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := extractIP(r, l.trustedProxies)

		if !l.Allow(ip) {
			logger.FromContext(r.Context()).Warn(LogMsgRateLimited, "ip", ip, "path", r.URL.Path)
			w.Header().Set(HeaderRetryAfter, strconv.Itoa(l.retryAfterSeconds()))
			http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (l *ClientRateLimiter) retryAfterSeconds() int {
	if l.limit <= 0 {
		return 1
	}
	return max(1, int(math.Ceil(1/float64(l.limit))))
}

// extractIP gets the client IP address from request.
// It only trusts X-Forwarded-For if the request comes from a trusted proxy.
func extractIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	if slices.Contains(trustedProxies, remoteIP) {
		if forwarded := r.Header.Get(HeaderForwardedFor); forwarded != "" {
			// For X-Forwarded-For: client, proxy1, proxy2
			// the rightmost entry is the hop our trusted proxy saw
			ips := strings.Split(forwarded, ",")
			return strings.TrimSpace(ips[len(ips)-1])
		}
	}

	return remoteIP
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(HeaderContentType, HeaderValueNoSniff)
			w.Header().Set(HeaderFrameOptions, HeaderValueSameOrigin)
			w.Header().Set(HeaderXSSProtection, HeaderValueXSSBlock)
			w.Header().Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)
			// Character sheets change on every action
			w.Header().Set(HeaderCacheControl, HeaderValueNoStore)

			next.ServeHTTP(w, r)
		})
	}
}
