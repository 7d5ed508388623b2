package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"roomly/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	limiterMu sync.Mutex
	limiters  = make(map[string]*clientLimiter)
)

// RateLimitMiddleware enforces a per-client request budget keyed by IP.
// Idle client entries are evicted by a background sweep.
func RateLimitMiddleware() gin.HandlerFunc {
	perMinute := config.AppConfig.MaxRequestsPerMin
	if perMinute <= 0 {
		perMinute = 100
	}
	limit := rate.Every(time.Minute / time.Duration(perMinute))
	burst := perMinute / 10
	if burst < 5 {
		burst = 5
	}

	go cleanupLimiters()

	return func(c *gin.Context) {
		ip := ClientIP(c)

		limiterMu.Lock()
		entry, ok := limiters[ip]
		if !ok {
			entry = &clientLimiter{limiter: rate.NewLimiter(limit, burst)}
			limiters[ip] = entry
		}
		entry.lastSeen = time.Now()
		limiterMu.Unlock()

		if !entry.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}

func cleanupLimiters() {
	for {
		time.Sleep(5 * time.Minute)
		limiterMu.Lock()
		for ip, entry := range limiters {
			if time.Since(entry.lastSeen) > 10*time.Minute {
				delete(limiters, ip)
			}
		}
		limiterMu.Unlock()
	}
}

// ClientIP resolves the originating client address, preferring proxy headers.
func ClientIP(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
		return realIP
	}
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return host
}
