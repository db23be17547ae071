package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"bdshop/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	sessionHeader  = "X-Session-ID"
	sessionCookie  = "sid"
	sessionMaxAge  = 7 * 24 * 60 * 60
	ctxSessionID   = "sessionID"
	ctxCustomer    = "customer"
	ctxAccessToken = "accessToken"
)

// sessionMiddleware resolves the visitor's session id from the header or
// cookie and issues a fresh one when neither carries a valid UUID.
func sessionMiddleware(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := c.GetHeader(sessionHeader)
		if _, err := uuid.Parse(sid); err != nil {
			sid, _ = c.Cookie(sessionCookie)
		}
		if _, err := uuid.Parse(sid); err != nil {
			sid = uuid.NewString()
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, sid, sessionMaxAge, "/", "", secure, true)
		c.Header(sessionHeader, sid)
		c.Set(ctxSessionID, sid)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(ctxSessionID)
}

func bearerToken(c *gin.Context) string {
	auth := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(auth) < 7 || !strings.EqualFold(auth[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(auth[7:])
}

// optionalCustomer attaches the logged-in customer when a bearer token is
// sent. A token that does not resolve is rejected rather than ignored.
func optionalCustomer(svc customerAuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}
		customer, err := svc.LookupByToken(c.Request.Context(), token)
		if err != nil {
			writeError(c, err)
			c.Abort()
			return
		}
		c.Set(ctxCustomer, customer)
		c.Set(ctxAccessToken, token)
		c.Next()
	}
}

func requireCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentCustomer(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		c.Next()
	}
}

func currentCustomer(c *gin.Context) *domain.Customer {
	v, ok := c.Get(ctxCustomer)
	if !ok {
		return nil
	}
	customer, _ := v.(*domain.Customer)
	return customer
}

// requireAdmin accepts the admin JWT from the Authorization header or, for
// websocket upgrades, the access_token query parameter.
func requireAdmin(svc adminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			token = c.Query("access_token")
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin token required"})
			return
		}
		if _, err := svc.Verify(token); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired admin token"})
			return
		}
		c.Next()
	}
}

func perMinute(n int) rate.Limit {
	if n <= 0 {
		return rate.Inf
	}
	return rate.Every(time.Minute / time.Duration(n))
}

type ipLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	visitors map[string]*visitor
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func (l *ipLimiter) allow(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	if len(l.visitors) > 1024 {
		for key, other := range l.visitors {
			if now.Sub(other.lastSeen) > 10*time.Minute {
				delete(l.visitors, key)
			}
		}
	}
	return v.limiter.AllowN(now, 1)
}

// rateLimit applies a token bucket per client IP.
func rateLimit(limit rate.Limit, burst int) gin.HandlerFunc {
	if limit == rate.Inf {
		return func(c *gin.Context) { c.Next() }
	}
	l := &ipLimiter{limit: limit, burst: burst, visitors: map[string]*visitor{}}
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP(), time.Now()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

// requestLogger writes one structured line per request.
func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := c.Writer.Status()
		evt := logger.Info()
		if status >= http.StatusInternalServerError {
			evt = logger.Error()
		} else if status >= http.StatusBadRequest {
			evt = logger.Warn()
		}
		if len(c.Errors) > 0 {
			evt = evt.Err(errors.New(c.Errors.String()))
		}
		evt.Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.ClientIP()).
			Msg("request")
	}
}
