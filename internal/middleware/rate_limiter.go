package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/satch9/app-caisse-compta-sub000/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// fenetre counts requests of one client IP within a fixed window.
type fenetre struct {
	count int
	fin   time.Time
}

// limiteur is a fixed-window limiter per client IP. Expired windows are
// purged inline, at most once per window.
type limiteur struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu        sync.Mutex
	ips       map[string]*fenetre
	prochaine time.Time
}

func newLimiteur(limit int, window time.Duration) *limiteur {
	return &limiteur{limit: limit, window: window, now: time.Now, ips: make(map[string]*fenetre)}
}

// autoriser returns false and the window end when ip is over the limit.
func (l *limiteur) autoriser(ip string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.After(l.prochaine) {
		l.purger(now)
		l.prochaine = now.Add(l.window)
	}

	f, ok := l.ips[ip]
	if !ok || now.After(f.fin) {
		f = &fenetre{fin: now.Add(l.window)}
		l.ips[ip] = f
	}
	f.count++
	return f.count <= l.limit, f.fin
}

func (l *limiteur) purger(now time.Time) {
	purged := 0
	for ip, f := range l.ips {
		if now.After(f.fin) {
			delete(l.ips, ip)
			purged++
		}
	}
	if purged > 0 {
		log.Debug().Int("purged", purged).Int("remaining", len(l.ips)).Msg("rate limiter purged")
	}
}

func (l *limiteur) handler(msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, fin := l.autoriser(c.ClientIP())
		if !ok {
			secondes := int(time.Until(fin).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(secondes))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(msg))
			return
		}
		c.Next()
	}
}

// RateLimiter allows limit requests per window per client IP. A non-positive
// limit disables it.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	if limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return newLimiteur(limit, window).handler("Trop de requêtes, réessayez dans un instant")
}

// LoginRateLimiter caps login attempts at 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return newLimiteur(20, time.Minute).handler("Trop de tentatives de connexion, réessayez dans une minute")
}
