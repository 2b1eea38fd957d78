package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

const (
	authorizationHeaderKey  = "authorization"
	authorizationTypeBearer = "bearer"
)

// authentication checks the bearer API key against the configured bcrypt
// hash. Without a hash every request passes.
func (server *Server) authentication(c *gin.Context) {
	hash := server.config.Server.APIKeyHash
	if hash == "" {
		c.Next()
		return
	}

	authorizationHeader := c.GetHeader(authorizationHeaderKey)
	if len(authorizationHeader) == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse(errors.New("authorization header is not provided")))
		return
	}

	fields := strings.Fields(authorizationHeader)
	if len(fields) < 2 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse(errors.New("invalid authorization header format")))
		return
	}

	authorizationType := strings.ToLower(fields[0])
	if authorizationType != authorizationTypeBearer {
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse(fmt.Errorf("unsupported authorization type: %s", authorizationType)))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(fields[1])); err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse(errors.New("please input a valid API Key")))
		return
	}

	c.Next()
}

func (server *Server) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()
	server.logger.Info("request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"latency", time.Since(start),
		"client", c.ClientIP(),
	)
}

// limiters hands out one token bucket per client.
type limiters struct {
	mu      sync.Mutex
	every   rate.Limit
	burst   int
	clients map[string]*rate.Limiter
}

func newLimiters(perSecond float64, burst int) *limiters {
	return &limiters{
		every:   rate.Limit(perSecond),
		burst:   burst,
		clients: make(map[string]*rate.Limiter),
	}
}

func (l *limiters) get(client string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	limiter, ok := l.clients[client]
	if !ok {
		limiter = rate.NewLimiter(l.every, l.burst)
		l.clients[client] = limiter
	}
	return limiter
}

// rateLimit throttles calibrations per client IP.
func (server *Server) rateLimit(c *gin.Context) {
	if !server.limiters.get(c.ClientIP()).Allow() {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"status": http.StatusTooManyRequests, "msg": "Too Many Requests"})
		return
	}
	c.Next()
}
