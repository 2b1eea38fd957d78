package api

import (
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/banachtech/volsurf/config"
	db "github.com/banachtech/volsurf/db/sqlc"
	"github.com/gin-gonic/gin"
)

func newTestServer(t *testing.T, store db.Store, tweak ...func(*config.Config)) *Server {
	cfg := config.Default()
	// no refill during a test run
	cfg.Server.RateLimit = 1e-3
	cfg.Server.Burst = 2
	for _, f := range tweak {
		f(&cfg)
	}
	return NewServer(cfg, store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}
