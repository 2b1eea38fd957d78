package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/banachtech/volsurf/config"
	db "github.com/banachtech/volsurf/db/sqlc"
	"github.com/banachtech/volsurf/surface"
	"github.com/gin-gonic/gin"
)

// Server serves HTTP requests for the volatility surface service.
type Server struct {
	config   config.Config
	store    db.Store
	logger   *slog.Logger
	limiters *limiters
	router   *gin.Engine
}

// NewServer creates a new HTTP server and set up routing. store may be nil,
// in which case persistence routes answer 503.
func NewServer(cfg config.Config, store db.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	server := &Server{
		config:   cfg,
		store:    store,
		logger:   logger,
		limiters: newLimiters(cfg.Server.RateLimit, cfg.Server.Burst),
	}

	server.setupRouter()
	return server
}

func (server *Server) setupRouter() {
	router := gin.New()
	router.Use(gin.Recovery(), server.requestLogger)

	routes := router.Group("/v1").Use(server.authentication)
	routes.POST("/sabr/calibrate", server.rateLimit, server.calibrate)
	routes.GET("/sabr", server.listSurfaces)
	routes.GET("/sabr/:name/latest", server.latestParameters)
	routes.POST("/volatility", server.volatility)
	server.router = router
}

// Handler exposes the router for embedding in an http.Server.
func (server *Server) Handler() http.Handler {
	return server.router
}

func errorResponse(err error) gin.H {
	return gin.H{"error": err.Error()}
}

// statusFor maps surface and store errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, surface.ErrCalibration):
		return http.StatusUnprocessableEntity
	case errors.Is(err, surface.ErrDomain),
		errors.Is(err, surface.ErrValidation),
		errors.Is(err, surface.ErrConstruction),
		errors.Is(err, surface.ErrNotSupported):
		return http.StatusBadRequest
	case errors.Is(err, sql.ErrNoRows):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (server *Server) abort(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		server.logger.Error("request failed", "path", c.FullPath(), "err", err)
	}
	c.AbortWithStatusJSON(status, errorResponse(err))
}
