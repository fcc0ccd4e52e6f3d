package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"dqx0.com/go/minihttp/httpd"
	"dqx0.com/go/minihttp/internal/config"
	"dqx0.com/go/minihttp/internal/obs"
	"dqx0.com/go/minihttp/routes"
)

func main() {
	directory := flag.String("directory", "", "base directory for /files (overrides FILES_DIR)")
	flag.Parse()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel()); err == nil {
		logger = logger.Level(lvl)
	}

	dir := cfg.Directory()
	if *directory != "" {
		dir = *directory
	}

	var meter obs.Meter = obs.NopMeter{}
	if cfg.MetricsEnabled() {
		meter = obs.NewPromMeter(prometheus.NewRegistry())
	}

	router := httpd.NewRouter()
	routes.Register(router, dir)

	s := &httpd.Server{
		Addr:              cfg.Addr(),
		Router:            router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout(),
		IdleTimeout:       cfg.IdleTimeout(),
		WriteTimeout:      cfg.WriteTimeout(),
		MaxHeaderBytes:    cfg.MaxHeaderBytes(),
		MaxBodyBytes:      cfg.MaxBodyBytes(),
		Logger:            obs.ZerologLogger{L: logger},
		Meter:             meter,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr()).Str("directory", dir).Msg("listening")
		errCh <- s.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		// Bind failures land here; nothing to retry.
		logger.Fatal().Err(err).Msg("server stopped")
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(ctx); err != nil {
			logger.Warn().Err(err).Msg("shutdown incomplete")
		}
	}
}
