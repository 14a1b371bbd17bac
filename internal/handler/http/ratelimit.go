package http

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"article-summarizer/internal/observability/logging"
)

// DefaultMaxClients bounds the number of per-client limiters kept in memory.
const DefaultMaxClients = 10000

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientRateLimiter throttles requests per client IP with a token bucket each.
// Clients are keyed by the host part of RemoteAddr; proxy headers are not trusted.
type ClientRateLimiter struct {
	limit      rate.Limit
	burst      int
	maxClients int
	idleTTL    time.Duration
	now        func() time.Time

	mu      sync.Mutex
	clients map[string]*clientLimiter
}

// NewClientRateLimiter allows rps requests per second per client with the given burst.
func NewClientRateLimiter(rps float64, burst int) *ClientRateLimiter {
	if burst < 1 {
		burst = 1
	}
	idle := time.Minute
	if rps > 0 {
		// Long enough for a drained bucket to refill completely.
		idle = max(idle, time.Duration(float64(burst)/rps*float64(time.Second)))
	}
	return &ClientRateLimiter{
		limit:      rate.Limit(rps),
		burst:      burst,
		maxClients: DefaultMaxClients,
		idleTTL:    idle,
		now:        time.Now,
		clients:    make(map[string]*clientLimiter),
	}
}

// Allow reports whether a request from client may proceed. When it may not, the
// returned duration is how long until a token is available.
func (l *ClientRateLimiter) Allow(client string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	c, ok := l.clients[client]
	if !ok {
		if len(l.clients) >= l.maxClients {
			l.evictIdle(now)
		}
		c = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[client] = c
	}
	c.lastSeen = now

	r := c.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, 0
	}
	if d := r.DelayFrom(now); d > 0 {
		r.CancelAt(now)
		return false, d
	}
	return true, 0
}

// evictIdle drops idle clients. If none are idle the oldest one goes, so the map
// never grows past maxClients.
func (l *ClientRateLimiter) evictIdle(now time.Time) {
	var oldestKey string
	var oldest time.Time
	for k, c := range l.clients {
		if now.Sub(c.lastSeen) > l.idleTTL {
			delete(l.clients, k)
			continue
		}
		if oldestKey == "" || c.lastSeen.Before(oldest) {
			oldestKey, oldest = k, c.lastSeen
		}
	}
	if len(l.clients) >= l.maxClients && oldestKey != "" {
		delete(l.clients, oldestKey)
	}
}

// Len returns the number of tracked clients.
func (l *ClientRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// Middleware rejects throttled clients with 429 and a Retry-After header.
func (l *ClientRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientIP(r.RemoteAddr)
		ok, wait := l.Allow(client)
		if ok {
			next.ServeHTTP(w, r)
			return
		}

		logging.FromContext(r.Context()).Warn("client rate limited",
			slog.String("client_ip", client),
			slog.String("path", r.URL.Path),
			slog.Duration("retry_after", wait))

		if wait > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		}
		http.Error(w, "Too many requests. Please wait a moment and try again.", http.StatusTooManyRequests)
	})
}

// clientIP strips the port from RemoteAddr ("192.168.1.1:54321", "[2001:db8::1]:8080").
func clientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
