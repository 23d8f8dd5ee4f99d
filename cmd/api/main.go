package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/faizp/tweets/backend/go-graphql/internal/config"
	platformlogger "github.com/faizp/tweets/backend/go-graphql/internal/platform/logger"
	"github.com/faizp/tweets/backend/go-graphql/internal/platform/metrics"
	"github.com/faizp/tweets/backend/go-graphql/internal/server"
	"github.com/faizp/tweets/backend/go-graphql/internal/service"
	"github.com/faizp/tweets/backend/go-graphql/internal/store"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log, err := platformlogger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	st := store.NewSeeded()
	svc := service.New(st, log)

	httpServer := &http.Server{
		Addr: ":" + strings.TrimSpace(cfg.HTTPPort),
		Handler: server.NewHandler(server.Deps{
			Config:  cfg,
			Log:     log,
			Service: svc,
			Metrics: metrics.New(),
			Health:  st,
		}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 2*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server_starting", "addr", httpServer.Addr, "url", fmt.Sprintf("http://localhost:%s/", cfg.HTTPPort))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server_failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("server_shutdown_failed", "error", err)
	}
	log.Info("server_stopped")
}
