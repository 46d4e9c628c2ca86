package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/lmittmann/tint"

	"github.com/kulinarya/backend/internal/repositories"
	"github.com/kulinarya/backend/internal/router"
	"github.com/kulinarya/backend/pkg/config"
	"github.com/kulinarya/backend/pkg/mail"
	"github.com/kulinarya/backend/pkg/storage"
	"github.com/kulinarya/backend/validators"
)

func main() {
	cfg := config.Load()

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting server", "env", cfg.Env, "port", cfg.Port)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Error("mongo connect failed", "err", err)
		os.Exit(1)
	}
	defer db.CloseDB()
	log.Info("mongo connected", "database", cfg.MongoDB)

	indexCtx, indexCancel := context.WithTimeout(rootCtx, 30*time.Second)
	err = repositories.EnsureIndexes(indexCtx, db.Database())
	indexCancel()
	if err != nil {
		log.Error("index creation failed", "err", err)
		os.Exit(1)
	}

	storageCtx, storageCancel := context.WithTimeout(rootCtx, 10*time.Second)
	media, err := storage.New(storageCtx, cfg)
	storageCancel()
	if err != nil {
		log.Error("object storage init failed", "err", err)
		os.Exit(1)
	}

	mailer := mail.New(cfg)

	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	router.SetupMiddleware(e, cfg)
	router.SetupRoutes(e, db.Database(), cfg, media, mailer)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "err", err)
			rootCancel()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", "err", err)
	}
}

// setupLogger picks the slog handler for the environment: colorized text
// for development, JSON elsewhere.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "development":
		return slog.New(tint.NewHandler(os.Stdout, &tint.Options{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
}
