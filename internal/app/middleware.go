package app

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// ContextRequestID is the gin context key under which the per-request ID is
// stored.
const ContextRequestID = "request_id"

// RequestID tags every request with a short unique ID, exposed to the client
// via the X-Request-ID header and to handlers via the gin context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := "req_" + uuid.New().String()[:8]
		c.Set(ContextRequestID, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// Logging logs request start and completion with timing.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetString(ContextRequestID)

		log.WithFields(log.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"event":      "started",
		}).Info("Request started")

		c.Next()

		log.WithFields(log.Fields{
			"request_id": requestID,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"event":      "completed",
		}).Info("Request completed")
	}
}

// ipLimiter tracks one token bucket per client IP.
type ipLimiter struct {
	mu      sync.Mutex
	buckets map[string]*ipBucket
	limit   rate.Limit
	burst   int
}

type ipBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// sweepThreshold is the bucket count past which stale entries are evicted.
const sweepThreshold = 1024

func newIPLimiter(rpm int) *ipLimiter {
	if rpm <= 0 {
		rpm = 20
	}
	return &ipLimiter{
		buckets: make(map[string]*ipBucket),
		limit:   rate.Limit(float64(rpm) / 60.0),
		burst:   rpm,
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	b, ok := l.buckets[ip]
	if !ok {
		if len(l.buckets) >= sweepThreshold {
			l.sweep(now)
		}
		b = &ipBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[ip] = b
	}
	b.lastSeen = now
	return b.limiter.Allow()
}

// sweep drops buckets idle long enough to have fully refilled. Caller holds
// the lock.
func (l *ipLimiter) sweep(now time.Time) {
	for ip, b := range l.buckets {
		if now.Sub(b.lastSeen) > 10*time.Minute {
			delete(l.buckets, ip)
		}
	}
}

// RateLimit enforces a per-IP request budget on the routes it is attached
// to. Excess requests get a 429 without reaching any backend.
func RateLimit(rpm int) gin.HandlerFunc {
	limiter := newIPLimiter(rpm)
	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
