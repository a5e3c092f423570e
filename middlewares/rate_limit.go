package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/appdotbuilder/food-catalog/utils"
)

// limiterIdleTTL must exceed the time a limiter needs to refill its burst,
// so dropping an idle client never hands it extra tokens.
const limiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterSet holds one limiter per client IP and sweeps out the ones idle
// for longer than ttl.
type limiterSet struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	ttl       time.Duration
	now       func() time.Time
	clients   map[string]*clientLimiter
	lastSweep time.Time
}

func newLimiterSet(r rate.Limit, burst int, ttl time.Duration, now func() time.Time) *limiterSet {
	return &limiterSet{
		limit:     r,
		burst:     burst,
		ttl:       ttl,
		now:       now,
		clients:   map[string]*clientLimiter{},
		lastSweep: now(),
	}
}

func (s *limiterSet) allow(ip string) bool {
	now := s.now()

	s.mu.Lock()
	if now.Sub(s.lastSweep) >= s.ttl {
		for key, cl := range s.clients {
			if now.Sub(cl.lastSeen) >= s.ttl {
				delete(s.clients, key)
			}
		}
		s.lastSweep = now
	}
	cl, ok := s.clients[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.clients[ip] = cl
	}
	cl.lastSeen = now
	s.mu.Unlock()

	return cl.limiter.AllowN(now, 1)
}

func (s *limiterSet) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// RateLimit throttles each client IP to r requests per second with the given
// burst.
func RateLimit(r rate.Limit, burst int) gin.HandlerFunc {
	return rateLimit(newLimiterSet(r, burst, limiterIdleTTL, time.Now))
}

func rateLimit(set *limiterSet) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !set.allow(c.ClientIP()) {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "Too many login attempts. Please try again later.", nil)
			return
		}
		c.Next()
	}
}
