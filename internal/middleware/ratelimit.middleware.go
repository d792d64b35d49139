package middleware

import (
	"net"
	"net/http"
	"time"

	"github.com/tanmay-mevada/DStrA-sub001/pkg/cache"
	"github.com/tanmay-mevada/DStrA-sub001/pkg/response"
)

// RateLimit caps requests per client IP over a sliding window, backed by a
// redis counter so the limit holds across replicas. Intended for the
// unauthenticated auth endpoints where credential stuffing lands.
func RateLimit(c *cache.Cache, max int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			cnt, err := c.IncrWithExpire(r.Context(), "http_rate", ip+":"+r.URL.Path, window)
			if err != nil {
				// Redis being down must not take auth down with it.
				next.ServeHTTP(w, r)
				return
			}
			if int(cnt) > max {
				response.Error(w, http.StatusTooManyRequests, "too many requests, slow down")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		// First hop is the client when the proxy chain is trusted.
		for i := 0; i < len(fwd); i++ {
			if fwd[i] == ',' {
				return fwd[:i]
			}
		}
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
