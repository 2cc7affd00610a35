package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"blog-service/handlers"
	"blog-service/internal/blog/handler"
	"blog-service/internal/blog/repository"
	"blog-service/internal/blog/service"
	"blog-service/internal/config"
	"blog-service/internal/database"
	"blog-service/pkg/logger"
	"blog-service/pkg/metrics"
	"blog-service/pkg/middleware"
)

func main() {
	// initialize logging early (LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	// re-init once .env values are visible
	logger.Init(cfg.Log.Level)
	logger.Debugf("startup: log level=%s", logger.LevelString())

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple; production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length, X-Request-ID")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	})

	// Global middlewares. Recovery sits innermost so the metrics and logging
	// wrappers still see the 500 a recovered panic produces.
	r.Use(
		middleware.RequestIDMiddleware(),
		middleware.RequestLoggerMiddleware(),
		middleware.MetricsMiddleware(),
		middleware.RecoveryMiddleware(),
	)

	// Connect to Redis early so the rate limiter can use it when configured
	var redisClient *redis.Client
	if cfg.RateLimit.Enabled && cfg.RateLimit.UseRedis {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr(), Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s): %v, falling back to in-memory rate limiting", cfg.Redis.Addr(), err)
			redisClient = nil
		} else {
			logger.Infof("connected to Redis at %s for rate limiting", cfg.Redis.Addr())
		}
	}
	if cfg.RateLimit.Enabled {
		if redisClient != nil {
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.Window))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	ctx := context.Background()

	// Prefer the Mongo-backed repository when MONGODB_URI is provided.
	var repo repository.Repository
	var mongoClient *mongo.Client
	if cfg.MongoDB.URI != "" {
		client, err := database.ConnectMongoWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 5)
		if err != nil {
			logger.Fatalf("could not connect to MongoDB: %v", err)
		}
		mongoClient = client
		col := client.Database(cfg.MongoDB.Database).Collection("blogs")
		repo = repository.NewMongoRepository(col)
		logger.Infof("using MongoDB store (database=%s, collection=blogs)", cfg.MongoDB.Database)
	} else {
		repo = repository.NewMemoryRepository()
		logger.Warnf("MONGODB_URI not set, using in-memory store; data is lost on restart")
	}

	svc := service.New(repo)
	handler.NewBlogHandler(svc).Register(r)
	handlers.RegisterRoot(r)
	handlers.RegisterReady(r, mongoClient)
	handlers.RegisterSwagger(r)

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("blog service listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("forced shutdown: %v", err)
	}
	if mongoClient != nil {
		if err := mongoClient.Disconnect(shutdownCtx); err != nil {
			logger.Errorf("mongo disconnect: %v", err)
		}
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	logger.Info("server stopped")
}
