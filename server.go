package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"productivity/handler"
	"productivity/middleware"
	"productivity/services"
	"productivity/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxRequestBody = 1 << 20

func setupRouter(a *app) *gin.Engine {
	if a.cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.RequestTracingMiddleware(),
		middleware.EnhancedRecoveryMiddleware(a.log),
		middleware.RequestLogger(a.log),
		middleware.MetricsMiddleware(),
		middleware.CORSMiddleware(),
		middleware.SecurityHeaders(),
	)

	health := handler.NewHealthHandler(a.cfg.StorageDriver, a.ping, a.log)
	router.GET("/health", health.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.Use(
		middleware.AuthMiddleware(a.cfg.JWTSecretKey),
		middleware.RequestSizeLimiter(maxRequestBody),
		middleware.RequireJSON(),
		middleware.CacheControlMiddleware("no-store"),
	)
	handler.NewTasksHandler(a.service, a.log).Register(api)

	return router
}

// serve runs the HTTP server until SIGINT or SIGTERM, then drains in-flight
// requests for up to ten seconds.
func serve(a *app, seed bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := utils.InitValidator(); err != nil {
		return fmt.Errorf("register validators: %w", err)
	}

	if seed {
		if err := seedIfEmpty(ctx, a); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           setupRouter(a),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server starting", "addr", srv.Addr, "storage", a.cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	a.log.Info("server shutdown complete")
	return nil
}

func seedIfEmpty(ctx context.Context, a *app) error {
	summary, err := a.service.Summary(ctx)
	if err != nil {
		return err
	}
	if summary.Total > 0 {
		a.log.Info("seed skipped, store not empty", "tasks", summary.Total)
		return nil
	}
	_, err = applySeed(ctx, a, a.cfg.SeedFile)
	return err
}

func applySeed(ctx context.Context, a *app, path string) (int, error) {
	seed, err := services.LoadSeed(path)
	if err != nil {
		return 0, err
	}
	created, err := services.ApplySeed(ctx, a.service, seed)
	if err != nil {
		return created, fmt.Errorf("apply seed: %w", err)
	}
	a.log.Info("seed applied", "tasks", created)
	return created, nil
}
