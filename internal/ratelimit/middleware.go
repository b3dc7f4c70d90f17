package ratelimit

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/brightlane/sitesearch/internal/logger"
	"github.com/brightlane/sitesearch/internal/metrics"
)

// Middleware enforces per-route request budgets. The caller identity is the
// client IP (first X-Forwarded-For hop when present, else RemoteAddr host);
// the limiter key is "ip:pattern" so each caller has an independent budget
// per protected route pattern.
func Middleware(limiter *Limiter, rules *Rules) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rule := rules.Match(r.URL.Path)
			key := clientIP(r) + ":" + rule.Pattern

			dec := limiter.Allow(key, rule.Limit, rule.Window)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rule.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(dec.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(dec.ResetTime.UnixMilli(), 10))

			if !dec.Allowed {
				metrics.RateLimitDecisionsTotal.WithLabelValues(rule.Pattern, "denied").Inc()
				logger.FromContext(r.Context()).Warn("rate limit exceeded",
					zap.String("key", key),
					zap.Int("count", dec.Count),
					zap.Time("reset", dec.ResetTime),
				)

				retryAfter := int(time.Until(dec.ResetTime).Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"code":    "rate_limited",
					"message": "too many requests",
				})
				return
			}

			metrics.RateLimitDecisionsTotal.WithLabelValues(rule.Pattern, "allowed").Inc()
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP extracts the original client address. X-Forwarded-For is trusted
// because the service runs behind the site's reverse proxy.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
