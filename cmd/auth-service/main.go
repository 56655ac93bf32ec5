package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	redisClient "github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/webstack-labs/user-auth-services/internal/adapter/argon2"
	handlers "github.com/webstack-labs/user-auth-services/internal/adapter/handler/http"
	"github.com/webstack-labs/user-auth-services/internal/adapter/logger"
	"github.com/webstack-labs/user-auth-services/internal/adapter/postgres/repository"
	"github.com/webstack-labs/user-auth-services/internal/adapter/prometheus"
	redisAdapter "github.com/webstack-labs/user-auth-services/internal/adapter/redis"
	"github.com/webstack-labs/user-auth-services/internal/config"
	"github.com/webstack-labs/user-auth-services/internal/core/services"
)

func main() {
	// Loading environment
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Set logger
	loggerAdapter := logger.NewLoggerAdapter(cfg.App.Env)
	loggerAdapter.Info("Starting the auth service", map[string]interface{}{
		"app": cfg.App.Name,
		"env": cfg.App.Env,
	})

	// Set redis
	redisConn := redisClient.NewClient(&redisClient.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx := context.Background()
	if _, err := redisConn.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Connect DB. The auth service only reads the users table; migrations
	// are owned by the user service.
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: ", err)
	}

	// Cache
	cacheAdapter := redisAdapter.NewRedisAdapter(redisConn)

	// Observability
	metrics := prometheus.NewPrometheusAdapter("auth_service")

	// Auth
	userRepo := repository.NewUserRepository(db)
	hasher := argon2.NewHasher()
	tokenService := handlers.NewJWTTokenService(cfg.Token.Secret, cfg.Token.TTL, loggerAdapter)
	authService := services.NewAuthService(userRepo, hasher, tokenService, loggerAdapter, cacheAdapter)
	authHandler := handlers.NewAuthHandler(authService, loggerAdapter, metrics)

	// One bucket for the whole process: limits total login throughput, not
	// per-client.
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)

	// Init router
	router, err := handlers.NewAuthRouter(
		cfg.HTTP,
		limiter,
		authHandler,
	)
	if err != nil {
		log.Fatal("Error initializing router:", err)
	}

	go func() {
		listenAddr := fmt.Sprintf("%s:%s", cfg.HTTP.URL, cfg.HTTP.Port)
		loggerAdapter.Info("Starting the HTTP server", map[string]interface{}{
			"addr": listenAddr,
		})

		if err := router.Serve(listenAddr); err != nil {
			log.Fatal("Error starting the HTTP server:", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

	loggerAdapter.Info("Auth service is running", nil)

	<-stop

	loggerAdapter.Info("Auth service stopped", nil)
}
