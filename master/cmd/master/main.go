package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/automoto/sixgun/master"
	"github.com/automoto/sixgun/server/logging"
)

func main() {
	port := flag.Int("port", 8080, "HTTP listen port")
	ttl := flag.Duration("ttl", 90*time.Second, "Server TTL before expiry")
	logLevel := flag.String("log-level", "info", "Log level")
	pretty := flag.Bool("pretty", false, "Human-readable logs")
	flag.Parse()

	logger := logging.New(os.Stdout, *logLevel, *pretty)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := master.NewRegistry(*ttl, logger)
	go reg.RunCleanup(ctx, 30*time.Second)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", *port),
		Handler:           master.NewMux(reg, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("shutdown")
		}
	}()

	logger.Info().Str("addr", srv.Addr).Dur("ttl", *ttl).Msg("starting master server")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("master server failed")
	}
}
