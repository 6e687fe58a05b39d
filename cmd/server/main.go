package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"radagast/internal/cache"
	"radagast/internal/category"
	"radagast/internal/config"
	"radagast/internal/food"
	"radagast/internal/infrastructure/logger"
	"radagast/internal/infrastructure/mysql"
	"radagast/internal/infrastructure/redis"
	"radagast/internal/order"
	"radagast/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	// The cache is an accelerator, not a dependency: when redis is down or
	// disabled the service runs against the database alone.
	var store cache.Store
	redisClient, err := redis.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Warn("redis unavailable, caching disabled", zap.Error(err))
	} else if redisClient != nil {
		defer redisClient.Close()
		store = cache.NewRedisStore(redisClient)
		zapLogger.Info("redis connected")
	}
	httpCache := cache.New(store, cfg.Redis.TTL, cfg.Redis.Timeout, zapLogger)

	images, err := food.NewDiskImageStore(cfg.Uploads.Dir)
	if err != nil {
		zapLogger.Fatal("preparing uploads dir", zap.Error(err))
	}

	categoryCtrl, categoryRepo := category.NewModule(db, httpCache, zapLogger)
	foodCtrl := food.NewModule(db, categoryRepo, httpCache, images, zapLogger)
	orderCtrl := order.NewModule(db, httpCache, zapLogger)

	router := server.NewRouter(foodCtrl, categoryCtrl, orderCtrl, httpCache, cfg.Uploads.Dir, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
