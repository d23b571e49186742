package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopcartlabs/shopcart-backend/api/responses"
	"github.com/shopcartlabs/shopcart-backend/pkg/config"
	pkgerrors "github.com/shopcartlabs/shopcart-backend/pkg/errors"
	"github.com/shopcartlabs/shopcart-backend/pkg/logger"
	"github.com/shopcartlabs/shopcart-backend/pkg/redis"
)

// RateLimit applies a per-client fixed window using a redis counter.
// When redis is down the request passes; throttling is not worth an
// outage.
func RateLimit(cfg config.RateLimitConfig, client *redis.Client, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled || client == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			key := redis.RateLimitKey("api", clientIP(r), cfg.Window)

			allowed, remaining, err := client.FixedWindowAllow(ctx, key, cfg.MaxRequests, cfg.Window)
			if err != nil {
				if logg != nil {
					logg.Warn(logg.WithField(ctx, "error", err.Error()), "rate limit check skipped")
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.MaxRequests))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if !allowed {
				responses.WriteError(ctx, logg, w,
					pkgerrors.New(pkgerrors.CodeRateLimit, "too many requests, please try again later"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
