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

	"steam-roi/internal/api"
	"steam-roi/internal/config"
	"steam-roi/internal/evaluation"
	"steam-roi/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	srv := config.LoadServer()
	if err := logger.Init(srv.Env); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	ctx := context.Background()

	cfg, err := config.Load(srv.ConfigFile)
	if err != nil {
		logger.Fatal(ctx, fmt.Errorf("load config: %w", err))
	}
	components, err := evaluation.Build(cfg)
	if err != nil {
		logger.Fatal(ctx, fmt.Errorf("build components: %w", err))
	}

	// Log dataset locations for debugging
	for name, path := range map[string]string{
		"regions":       cfg.Datasets.RegionsPath,
		"postal codes":  cfg.Datasets.PostalCodesDir,
		"price history": cfg.Datasets.PriceHistoryPath,
	} {
		if _, err := os.Stat(path); err != nil {
			logger.Warnf(ctx, "%s dataset not found at %s: %v", name, path, err)
		} else {
			logger.Infof(ctx, "%s dataset: %s", name, path)
		}
	}

	if srv.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(components, srv)

	server := &http.Server{
		Addr:         ":" + srv.Port,
		Handler:      router,
		ReadTimeout:  srv.ReadTimeout,
		WriteTimeout: srv.WriteTimeout,
	}

	go func() {
		logger.Infof(ctx, "Starting API server on %s (yield source %s)", server.Addr, cfg.Yield.Source)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(ctx, fmt.Errorf("failed to start server: %w", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	logger.Infof(ctx, "Shutting down")
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "shutdown: %v", err)
	}
}
