package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"projecthub/internal/auth"
	"projecthub/internal/server"
	"projecthub/internal/storage/sqlite"
	"projecthub/internal/util"
)

func main() {
	addrFlag := flag.String("addr", util.EnvOrDefault("PROJECTHUB_ADDR", ":8080"), "HTTP listen address")
	dbFlag := flag.String("db", util.EnvOrDefault("PROJECTHUB_DB_PATH", "data/projecthub.db"), "Path to sqlite database file")
	staticFlag := flag.String("static", util.EnvOrDefault("PROJECTHUB_STATIC_DIR", "web/dist"), "Directory with built frontend")
	uploadsFlag := flag.String("uploads", util.EnvOrDefault("PROJECTHUB_UPLOAD_DIR", "data/uploads"), "Directory for task attachments")
	secretFlag := flag.String("jwt-secret", util.EnvOrDefault("PROJECTHUB_JWT_SECRET", ""), "Secret used to sign access tokens")
	ttlFlag := flag.Duration("token-ttl", util.EnvDuration("PROJECTHUB_TOKEN_TTL", 24*time.Hour), "Access token lifetime")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	logger.Info("ProjectHub backend starting")

	tokens, err := auth.NewTokenIssuer(*secretFlag, *ttlFlag)
	if err != nil {
		logger.Error("invalid token configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	store, err := sqlite.Open(*dbFlag, logger)
	if err != nil {
		logger.Error("unable to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	srv := server.New(store, tokens, logger, *staticFlag, *uploadsFlag)

	httpServer := &http.Server{
		Addr:    *addrFlag,
		Handler: srv.Engine(),
	}

	go func() {
		logger.Info("starting server", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("failed to shutdown server", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}
