package middlewares

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"opsagent/internal/infrastructure/metrics"
	"opsagent/internal/interfaces/httpserver/responses"
	"opsagent/internal/utils/platformerrors"
)

// QuotaLimiter enforces a fixed-window hourly request budget per API key.
// Unauthenticated traffic is budgeted per client IP instead.
type QuotaLimiter struct {
	mu      sync.Mutex
	limit   int
	windows map[string]*quotaWindow
}

type quotaWindow struct {
	count   int
	resetAt time.Time
}

// NewQuotaLimiter creates a limiter allowing limit requests per key per
// hour. A non-positive limit disables enforcement.
func NewQuotaLimiter(limit int) *QuotaLimiter {
	return &QuotaLimiter{
		limit:   limit,
		windows: make(map[string]*quotaWindow),
	}
}

// Allow consumes one request from key's current window and reports whether
// it fit, plus how long until the window resets when it did not.
func (q *QuotaLimiter) Allow(key string, now time.Time) (bool, time.Duration) {
	q.mu.Lock()
	defer q.mu.Unlock()

	w, ok := q.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &quotaWindow{resetAt: now.Add(time.Hour)}
		q.windows[key] = w
	}
	if w.count >= q.limit {
		return false, w.resetAt.Sub(now)
	}
	w.count++
	return true, 0
}

// Middleware returns the gin handler enforcing the quota. It must run after
// the auth middleware so authenticated requests are budgeted by key name.
func (q *QuotaLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if q.limit <= 0 {
			c.Next()
			return
		}

		ok, retryIn := q.Allow(quotaKey(c), time.Now())
		if !ok {
			metrics.RecordAuthRequest("throttled")
			c.Header("Retry-After", strconv.Itoa(int(retryIn.Seconds())+1))
			responses.HandleNewError(c, platformerrors.ErrorTypeTooManyRequests, "hourly request quota exhausted")
			return
		}

		c.Next()
	}
}

func quotaKey(c *gin.Context) string {
	if name, ok := PrincipalFromContext(c); ok {
		return "key:" + name
	}
	if ip := c.ClientIP(); ip != "" {
		return "ip:" + ip
	}
	return "anonymous"
}
