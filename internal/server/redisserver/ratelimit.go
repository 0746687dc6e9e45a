package redisserver

import (
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/yndnr/respkv/pkg/cmap"
)

// clientIdleTTL is how long an unused per-client limiter is kept.
const clientIdleTTL = 5 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

// rateLimiter is a token bucket per client IP. The burst equals the
// per-second rate.
type rateLimiter struct {
	limit   rate.Limit
	burst   int
	clients *cmap.Map[string, *clientLimiter]
	now     func() time.Time
}

func newRateLimiter(perSecond int) *rateLimiter {
	return &rateLimiter{
		limit:   rate.Limit(perSecond),
		burst:   perSecond,
		clients: cmap.New[string, *clientLimiter](),
		now:     time.Now,
	}
}

// allow reports whether one more command from ip may run now.
func (rl *rateLimiter) allow(ip string) bool {
	c := rl.clients.GetOrCreate(ip, func() *clientLimiter {
		return &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
	})
	now := rl.now()
	c.lastSeen.Store(now.UnixNano())
	return c.limiter.AllowN(now, 1)
}

// prune drops limiters idle for longer than ttl.
func (rl *rateLimiter) prune(ttl time.Duration) int {
	cutoff := rl.now().Add(-ttl).UnixNano()
	return rl.clients.DeleteIf(func(_ string, c *clientLimiter) bool {
		return c.lastSeen.Load() < cutoff
	})
}
