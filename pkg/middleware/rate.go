// Package middleware provides the HTTP middleware used by automart's kernel.
package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shashiranjanraj/automart/pkg/response"
)

// window is a fixed-window request count for one client IP.
type window struct {
	count   int
	resetAt time.Time
}

// Limiter counts requests per client IP in fixed windows.
type Limiter struct {
	max    int
	period time.Duration

	mu      sync.Mutex
	windows map[string]*window
}

func NewLimiter(max int, period time.Duration) *Limiter {
	return &Limiter{max: max, period: period, windows: map[string]*window{}}
}

// Allow records one request from ip and reports whether it fits the window.
func (l *Limiter) Allow(ip string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.windows[ip]
	if !ok || now.After(w.resetAt) {
		w = &window{resetAt: now.Add(l.period)}
		l.windows[ip] = w
	}

	w.count++
	return w.count <= l.max, w.resetAt.Sub(now)
}

// Sweep drops expired windows until ctx is cancelled.
func (l *Limiter) Sweep(ctx context.Context) {
	ticker := time.NewTicker(l.period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			l.mu.Lock()
			for ip, w := range l.windows {
				if now.After(w.resetAt) {
					delete(l.windows, ip)
				}
			}
			l.mu.Unlock()
		}
	}
}

// Middleware rejects requests beyond the limit with 429 and Retry-After.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, retry := l.Allow(clientIP(r))
		if !ok {
			w.Header().Set("Retry-After", strconv.Itoa(int(retry.Seconds())+1))
			response.Error(w, http.StatusTooManyRequests, "Too Many Requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
