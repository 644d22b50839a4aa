package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/maxviazov/product-catalog-service/internal/handler"
)

func newServeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API until SIGINT or SIGTERM",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.serve(cmd.Context())
		},
	}
}

func ginMode(appEnv string) string {
	if appEnv == "dev" {
		return gin.DebugMode
	}
	return gin.ReleaseMode
}

func (e *env) serve(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := e.openApp(ctx, e.cfg, e.logger)
	if err != nil {
		e.logger.Error().Err(err).Str("driver", e.cfg.Store.Driver).Msg("store initialization failed")
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			e.logger.Warn().Err(err).Msg("store close failed")
		}
	}()

	h := e.cfg.HTTP
	engine := handler.NewEngine(h, ginMode(e.cfg.App.Env), e.logger, handler.Services{
		Store:           a.Store.Pinger,
		Products:        a.Products,
		Categories:      a.Categories,
		Locations:       a.Locations,
		DefaultPageSize: a.Paging.DefaultPageSize,
	})
	srv := &http.Server{
		Addr:              h.Addr,
		Handler:           engine,
		ReadTimeout:       h.ReadTimeout,
		ReadHeaderTimeout: h.ReadTimeout,
		WriteTimeout:      h.WriteTimeout,
		IdleTimeout:       h.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		e.logger.Info().Str("addr", h.Addr).Str("driver", e.cfg.Store.Driver).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		e.logger.Info().Dur("timeout", h.ShutdownTimeout).Msg("shutting down HTTP server")
		sctx, cancel := context.WithTimeout(context.Background(), h.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil {
		e.logger.Error().Err(err).Msg("HTTP server stopped with error")
		return err
	}
	e.logger.Info().Msg("HTTP server stopped")
	return nil
}
