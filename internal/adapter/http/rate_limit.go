package http

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sentinel/sentinel/internal/infra/logger"
	"github.com/sentinel/sentinel/internal/infra/metrics"
	"github.com/sentinel/sentinel/internal/infra/ratelimit"
)

// RateLimitMiddleware limits attempts per client IP on one route group
type RateLimitMiddleware struct {
	service ratelimit.Service
	logger  logger.Logger
}

// NewRateLimitMiddleware creates a rate limit middleware
func NewRateLimitMiddleware(service ratelimit.Service, log logger.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		service: service,
		logger:  log,
	}
}

// Limit allows limit requests per client IP within window for scope.
// Storage errors let the request through.
func (m *RateLimitMiddleware) Limit(scope string, limit int, window, block time.Duration) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if m.service == nil || limit <= 0 {
				next(w, r)
				return
			}

			ctx := r.Context()
			clientIP := getClientIP(r)
			key := fmt.Sprintf("%s:ip:%s", scope, clientIP)
			fields := map[string]interface{}{
				"ip":    clientIP,
				"key":   key,
				"scope": scope,
			}

			blocked, err := m.service.IsBlocked(ctx, key)
			if err != nil {
				m.logger.Error(ctx, "Failed to check block status", err, fields)
			}
			if blocked {
				m.reject(w, r, scope, block, fields)
				return
			}

			allowed, err := m.service.CheckLimit(ctx, key, limit)
			if err != nil {
				m.logger.Error(ctx, "Failed to check rate limit", err, fields)
				allowed = true
			}
			if !allowed {
				if err := m.service.Block(ctx, key, block, "Rate limit exceeded"); err != nil {
					m.logger.Error(ctx, "Failed to block key", err, fields)
				}
				m.reject(w, r, scope, block, fields)
				return
			}

			if _, err := m.service.Increment(ctx, key, window); err != nil {
				m.logger.Error(ctx, "Failed to increment rate limit", err, fields)
			}

			next(w, r)
		}
	}
}

func (m *RateLimitMiddleware) reject(w http.ResponseWriter, r *http.Request, scope string, block time.Duration, fields map[string]interface{}) {
	metrics.RecordRateLimited(scope)
	fields["path"] = r.URL.Path
	fields["user_agent"] = r.UserAgent()
	m.logger.Warn(r.Context(), "Request rejected by rate limiter", fields)

	w.Header().Set("Retry-After", fmt.Sprintf("%d", int(block.Seconds())))
	writeErrorResponse(w, http.StatusTooManyRequests, "rate_limited", "Too many requests. Please try again later.")
}

// getClientIP extracts client IP from request
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
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
