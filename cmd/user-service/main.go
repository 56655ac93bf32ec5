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
	"github.com/pressly/goose"
	redisClient "github.com/redis/go-redis/v9"

	"github.com/webstack-labs/user-auth-services/internal/adapter/argon2"
	handlers "github.com/webstack-labs/user-auth-services/internal/adapter/handler/http"
	"github.com/webstack-labs/user-auth-services/internal/adapter/kafka"
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
	loggerAdapter.Info("Starting the user service", map[string]interface{}{
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

	// Connect DB
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

	// Migrate DB
	if err := goose.Up(db, "./internal/adapter/postgres/migrations"); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	// Cache
	cacheAdapter := redisAdapter.NewRedisAdapter(redisConn)

	// Events
	producer := kafka.NewProducer(cfg.Kafka.Brokers, loggerAdapter)
	defer producer.Close()

	// Validate
	validate := services.NewValidator()

	// Observability
	metrics := prometheus.NewPrometheusAdapter("user_service")

	// User
	userRepo := repository.NewUserRepository(db)
	hasher := argon2.NewHasher()
	tokenService := handlers.NewJWTTokenService(cfg.Token.Secret, cfg.Token.TTL, loggerAdapter)
	userService := services.NewUserService(userRepo, hasher, loggerAdapter, validate, cacheAdapter, producer)
	userHandler := handlers.NewUserHandler(userService, loggerAdapter, metrics)

	// Init router
	router, err := handlers.NewUserRouter(
		cfg.HTTP,
		tokenService,
		userHandler,
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

	loggerAdapter.Info("User service is running", nil)

	<-stop

	loggerAdapter.Info("User service stopped", nil)
}
