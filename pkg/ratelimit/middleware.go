package ratelimit

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"
)

// EndpointLimit defines rate limits for a specific endpoint
type EndpointLimit struct {
	Capacity   int
	RefillRate float64
}

// Config holds rate limiting configuration. The lifecycle endpoints are
// unauthenticated, so limiting is keyed per client IP.
type Config struct {
	PerIPEnabled    bool
	PerIPCapacity   int
	PerIPRefillRate float64

	// EndpointLimits is keyed by "METHOD /path"
	EndpointLimits map[string]EndpointLimit

	BucketTTL      time.Duration
	IncludeHeaders bool
}

// DefaultConfig returns a sensible default configuration. Endpoint limits
// should be added by the caller based on its route configuration.
func DefaultConfig() *Config {
	return &Config{
		PerIPEnabled:    true,
		PerIPCapacity:   100,
		PerIPRefillRate: 100.0 / 60.0,
		EndpointLimits:  make(map[string]EndpointLimit),
		BucketTTL:       1 * time.Hour,
		IncludeHeaders:  true,
	}
}

// Middleware holds the rate limiting middleware state
type Middleware struct {
	config           *Config
	ipLimiter        *RateLimiter
	endpointLimiters map[string]*RateLimiter
}

// NewMiddleware creates a new rate limiting middleware
func NewMiddleware(config *Config) *Middleware {
	if config == nil {
		config = DefaultConfig()
	}

	m := &Middleware{
		config:           config,
		endpointLimiters: make(map[string]*RateLimiter),
	}

	if config.PerIPEnabled {
		m.ipLimiter = NewRateLimiter(config.PerIPCapacity, config.PerIPRefillRate, config.BucketTTL)
	}

	for endpoint, limit := range config.EndpointLimits {
		m.endpointLimiters[endpoint] = NewRateLimiter(limit.Capacity, limit.RefillRate, config.BucketTTL)
	}

	return m
}

// Handler returns the rate limiting middleware handler
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)

		if m.config.PerIPEnabled && ip != "" && !m.ipLimiter.Allow(ip) {
			m.rateLimitExceeded(w, r, "ip")
			return
		}

		endpointKey := r.Method + " " + r.URL.Path
		if limiter, exists := m.endpointLimiters[endpointKey]; exists {
			if !limiter.Allow(ip + ":" + endpointKey) {
				m.rateLimitExceeded(w, r, "endpoint")
				return
			}
		}

		if m.config.IncludeHeaders && m.config.PerIPEnabled && ip != "" {
			w.Header().Set("X-RateLimit-Limit-IP", fmt.Sprintf("%d", m.config.PerIPCapacity))
		}

		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) rateLimitExceeded(w http.ResponseWriter, r *http.Request, limitType string) {
	slog.Warn("Rate limit exceeded",
		"type", limitType,
		"ip", clientIP(r),
		"path", r.URL.Path,
		"method", r.Method,
	)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", "60")
	w.WriteHeader(http.StatusTooManyRequests)
	fmt.Fprintf(w, `{"error":"rate_limit_exceeded","message":"Too many requests. Please try again later.","type":%q}`, limitType)
}

// clientIP extracts the client IP, preferring forwarding headers set by
// the reverse proxy.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
