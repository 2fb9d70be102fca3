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

	"crm-gateway/bridge"
	"crm-gateway/controller"
	"crm-gateway/middelware"
	"crm-gateway/utils"
	"crm-gateway/utils/logger"
	"crm-gateway/worker"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := utils.GetConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.LogLevel, cfg.LogFormat)
	log.Infof("starting %s v%s (%s)", cfg.AppName, cfg.AppVersion, cfg.AppEnv)

	middelware.InitSentry(cfg, log)

	registry := bridge.NewRegistry(cfg, log)

	monitor := worker.NewMonitor(registry, cfg, log)
	if err := monitor.Start(); err != nil {
		log.Fatalf("cannot start health monitor: %v", err)
	}
	defer monitor.Stop()

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	logging := middelware.NewLoggingMiddleware(log)
	router.Use(middelware.RequestID())
	router.Use(logging.StructuredLogger())
	router.Use(logging.Recovery())
	router.Use(middelware.NewCORSMiddleware(cfg).CORS())
	router.Use(middelware.Metrics())

	if limiter := middelware.NewRateLimiter(cfg, log); limiter != nil {
		router.Use(limiter.Limit())
		log.Infof("rate limiting enabled: %d requests per minute per client", cfg.RateLimitRequestsPerMinute)
	}

	ct := controller.NewController(cfg, log, registry, monitor)
	ct.RegisterRoutes(router)

	srv := &http.Server{
		Addr:         cfg.AppHost + ":" + cfg.AppPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Infof("gateway listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("forced shutdown: %v", err)
	}

	sentry.Flush(2 * time.Second)
	log.Info("gateway stopped")
}
