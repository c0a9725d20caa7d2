package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/net/netutil"

	"evalpoint.ai/web/internal/config"
	"evalpoint.ai/web/internal/httpserver"
	"evalpoint.ai/web/internal/observability"
	"evalpoint.ai/web/internal/render"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return err
	}
	cfg, err = applyFlags(cfg, args, stderr)
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	if cfg.Debug {
		level = "debug"
	}
	logger, err := observability.NewLogger(level)
	if err != nil {
		fmt.Fprintf(stderr, "init logger: %v\n", err)
		return err
	}
	defer func() { _ = logger.Sync() }()

	srv, err := httpserver.New(ctx, serverConfig(cfg, logger))
	if err != nil {
		// misconfigured templates or content: never start serving
		logger.Error("server misconfigured", zap.Error(err))
		return err
	}

	ln, err := listen(srv.Addr, cfg.Server.MaxConnections)
	if err != nil {
		logger.Error("listen failed", zap.String("addr", srv.Addr), zap.Error(err))
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("web listening",
			zap.String("addr", ln.Addr().String()),
			zap.Bool("debug", cfg.Debug),
			zap.String("base_url", cfg.Site.BaseURL),
			zap.Int("max_connections", cfg.Server.MaxConnections),
		)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			logger.Error("http server failed", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		return err
	}
	return nil
}

// listen binds addr, capping concurrent connections when limit > 0.
func listen(addr string, limit int) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	if limit > 0 {
		ln = netutil.LimitListener(ln, limit)
	}
	return ln, nil
}

// applyFlags overlays -host, -port and -debug onto the loaded configuration.
func applyFlags(cfg config.Config, args []string, stderr io.Writer) (config.Config, error) {
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	fs.SetOutput(stderr)
	host := fs.String("host", cfg.Server.Host, "HTTP bind address")
	port := fs.String("port", cfg.Server.Port, "HTTP port")
	debug := fs.Bool("debug", cfg.Debug, "enable debug logging, uncached assets and /debug profiler")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}
	cfg.Server.Host = *host
	cfg.Server.Port = *port
	cfg.Debug = *debug
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(stderr, "invalid flags: %v\n", err)
		return config.Config{}, err
	}
	return cfg, nil
}

func serverConfig(cfg config.Config, logger *zap.Logger) httpserver.Config {
	return httpserver.Config{
		Address: cfg.Server.Address(),
		Debug:   cfg.Debug,
		Logger:  logger,
		Site: render.Site{
			Name:      cfg.Site.Name,
			BaseURL:   cfg.Site.BaseURL,
			Analytics: render.Analytics{GA4MeasurementID: cfg.Analytics.GA4MeasurementID},
		},
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		RequestTimeout: cfg.Server.RequestTimeout,
	}
}
