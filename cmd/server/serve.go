package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/fyyur/internal/config"
	"github.com/iliyamo/fyyur/internal/database"
	"github.com/iliyamo/fyyur/internal/handler"
	"github.com/iliyamo/fyyur/internal/middleware"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/router"
	"github.com/iliyamo/fyyur/internal/service"
	"github.com/iliyamo/fyyur/internal/view"
)

func runSchema(ctx context.Context) error {
	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := database.CreateSchema(ctx, db, cfg.DBDriver); err != nil {
		return err
	}
	logger.Info("schema ready", zap.String("driver", cfg.DBDriver))
	return nil
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	// The sqlite store is a local file; make sure the tables exist.
	if cfg.DBDriver == config.DriverSQLite {
		if err := database.CreateSchema(ctx, db, cfg.DBDriver); err != nil {
			return err
		}
	}

	renderer, err := view.New(cfg.Location)
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	rdb := config.NewRedisClient()
	if rdb != nil {
		defer rdb.Close()
	}
	cacheCfg := config.LoadCacheConfig()

	if cfg.ActivityConsumer && cfg.RabbitURL != "" {
		go func() {
			err := queue.StartActivityConsumer(ctx, queue.ConsumerConfig{
				URL:     cfg.RabbitURL,
				Queue:   cfg.ActivityQueue,
				LogPath: cfg.ActivityLog,
			}, logger.Named("activity"))
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("activity consumer stopped", zap.Error(err))
			}
		}()
	}

	h := handler.New(db, cfg.FlashSecret, handler.Options{
		Events:   service.NewPublisher(cfg.RabbitURL, cfg.ActivityQueue, logger.Named("publisher")),
		Cache:    middleware.NewPageCache(cacheCfg, rdb),
		Log:      logger,
		Location: cfg.Location,
	})

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.HTTPErrorHandler = h.HTTPErrorHandler
	e.Use(middleware.RequestLogger(logger))
	router.RegisterRoutes(e, h, router.Middlewares{
		Cache:     middleware.NewRedisCache(cacheCfg, rdb, handler.HasFlash),
		RateLimit: middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, logger.Named("ratelimit")),
	})

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env), zap.String("driver", cfg.DBDriver))
		errCh <- e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
