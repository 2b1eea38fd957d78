package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/banachtech/volsurf/api"
	db "github.com/banachtech/volsurf/db/sqlc"
	"github.com/spf13/cobra"
	_ "go.uber.org/automaxprocs"
)

func newServeCmd() *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			if address != "" {
				cfg.Server.Address = address
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var store db.Store
			if cfg.Database.Source != "" {
				conn, err := db.Connect(ctx, cfg.Database.Driver, cfg.Database.Source)
				if err != nil {
					return err
				}
				defer conn.Close()
				store = db.NewStore(conn)
			} else {
				logger.Warn("no database configured, persistence routes disabled")
			}

			srv := &http.Server{
				Addr:              cfg.Server.Address,
				Handler:           api.NewServer(cfg, store, logger).Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			errc := make(chan error, 1)
			go func() {
				logger.Info("start server", "address", srv.Addr)
				errc <- srv.ListenAndServe()
			}()

			select {
			case err := <-errc:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			case <-ctx.Done():
			}

			shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdown); err != nil {
				return err
			}
			logger.Info("server stopped")
			return nil
		},
	}

	cmd.Flags().StringVarP(&address, "address", "a", "", "listen address, overrides server.address")

	return cmd
}
