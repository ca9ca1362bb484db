package middleware

import (
	"fmt"
	"math"
	"net"
	"net/http"

	"github.com/rogerio-castellano/appointment-tracker/internal/http/ban"
	rl "github.com/rogerio-castellano/appointment-tracker/internal/http/rate_limiter"
)

// RateLimit throttles clients by IP. A client that keeps hitting the limit
// collects strikes and is banned by the guard; banned clients get 403 until
// the ban expires.
func RateLimit(limiter *rl.Limiter, guard *ban.Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			if d := guard.BannedFor(r.Context(), ip); d > 0 {
				w.Header().Set("Retry-After", retryAfter(d.Seconds()))
				http.Error(w, "too many requests, you are temporarily banned", http.StatusForbidden)
				return
			}

			if !limiter.Allow(ip) {
				banned := guard.Strike(r.Context(), ip, r.URL.Path)
				if banned {
					http.Error(w, "too many requests, you are temporarily banned", http.StatusForbidden)
					return
				}
				w.Header().Set("Retry-After", "1")
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func retryAfter(seconds float64) string {
	return fmt.Sprintf("%d", int(math.Ceil(seconds)))
}
