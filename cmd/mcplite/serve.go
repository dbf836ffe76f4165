package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/skosovsky/mcplite/internal/config"
	"github.com/skosovsky/mcplite/internal/transport"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	var addr, token string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.loadConfig(cmd)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTP.Addr = addr
			}
			if token != "" {
				cfg.HTTP.Token = token
			}
			ln, err := net.Listen("tcp", cfg.HTTP.Addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", cfg.HTTP.Addr, err)
			}
			return runHTTP(cmd.Context(), cmd, cfg, ln)
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (overrides config)")
	cmd.Flags().StringVar(&token, "token", "", "Bearer token required on the JSON-RPC route (overrides config)")
	return cmd
}

// runHTTP serves on ln until ctx is done, then shuts the server down gracefully.
func runHTTP(ctx context.Context, cmd *cobra.Command, cfg *config.Config, ln net.Listener) error {
	d, logger, err := newDispatcher(cfg, cmd.ErrOrStderr())
	if err != nil {
		_ = ln.Close()
		return err
	}
	if cfg.HTTP.Token == "" {
		logger.Warn("no bearer token configured; the JSON-RPC route is open")
	}
	srv := &http.Server{
		Handler: transport.HTTPHandler(d, transport.HTTPOptions{
			Path:         cfg.HTTP.Path,
			Token:        cfg.HTTP.Token,
			MaxBodyBytes: cfg.HTTP.MaxBodyBytes,
			Logger:       logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("serving MCP over HTTP", "addr", ln.Addr().String(), "path", cfg.HTTP.Path, "tools", d.Registry().Len())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down HTTP server")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
