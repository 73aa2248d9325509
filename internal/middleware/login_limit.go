package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/pageza/nutrilens/backend/internal/slogx"
)

// LoginLimitConfig bounds credential attempts per client IP.
type LoginLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	Burst             int
}

// DefaultLoginLimit allows 5 attempts per minute per IP.
var DefaultLoginLimit = LoginLimitConfig{
	RequestsPerWindow: 5,
	Window:            time.Minute,
	Burst:             5,
}

type ipLimiter struct {
	limiters    sync.Map // map[string]*rate.Limiter
	rate        rate.Limit
	burst       int
	mu          sync.Mutex
	lastCleanup time.Time
}

func (l *ipLimiter) get(key string) *rate.Limiter {
	if limiter, ok := l.limiters.Load(key); ok {
		return limiter.(*rate.Limiter)
	}
	actual, _ := l.limiters.LoadOrStore(key, rate.NewLimiter(l.rate, l.burst))
	l.maybeCleanup()
	return actual.(*rate.Limiter)
}

// maybeCleanup drops limiters whose bucket has refilled, at most every five
// minutes.
func (l *ipLimiter) maybeCleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if time.Since(l.lastCleanup) < 5*time.Minute {
		return
	}
	l.lastCleanup = time.Now()
	l.limiters.Range(func(key, value any) bool {
		if value.(*rate.Limiter).Tokens() >= float64(l.burst) {
			l.limiters.Delete(key)
		}
		return true
	})
}

// LoginRateLimit throttles credential endpoints per client IP in process.
// The IP is gin's ClientIP, so forwarding headers only count when the engine
// trusts the proxy that set them.
func LoginRateLimit(cfg LoginLimitConfig) gin.HandlerFunc {
	l := &ipLimiter{
		rate:        rate.Limit(float64(cfg.RequestsPerWindow) / cfg.Window.Seconds()),
		burst:       cfg.Burst,
		lastCleanup: time.Now(),
	}

	return func(c *gin.Context) {
		key := c.ClientIP()
		limiter := l.get(key)
		if limiter.Allow() {
			c.Next()
			return
		}

		reservation := limiter.Reserve()
		retryAfter := max(int(reservation.Delay().Seconds()), 1)
		reservation.Cancel()

		slogx.FromContext(c.Request.Context()).Warn("login rate limit exceeded",
			"ip", key,
			"path", c.FullPath(),
			"retry_after", retryAfter,
		)
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error": "Too many attempts. Please try again later.",
		})
	}
}
