package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type (
	Container struct {
		App       *App
		Token     *Token
		DB        *DB
		HTTP      *HTTP
		Redis     *Redis
		Kafka     *Kafka
		RateLimit *RateLimit
	}

	App struct {
		Name string
		Env  string
	}

	Token struct {
		Secret string
		TTL    time.Duration
	}

	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
	}

	HTTP struct {
		Env            string
		Port           string
		AllowedOrigins string
		URL            string
	}

	Redis struct {
		Address  string
		Password string
	}

	Kafka struct {
		Brokers []string
	}

	RateLimit struct {
		RequestsPerSecond float64
		Burst             int
	}
)

func New() (*Container, error) {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return nil, err
		}
	}

	app := &App{
		Name: os.Getenv("APP_NAME"),
		Env:  os.Getenv("APP_ENV"),
	}

	// An empty signing secret must never silently default: every token
	// signed with it would be forgeable.
	secret := os.Getenv("SECRET")
	if secret == "" {
		return nil, errors.New("SECRET is not set")
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "1h"))
	if err != nil {
		return nil, err
	}

	token := &Token{
		Secret: secret,
		TTL:    ttl,
	}

	db := &DB{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
	}

	http := &HTTP{
		Port:           os.Getenv("HTTP_PORT"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),
		URL:            os.Getenv("HTTP_URL"),
		Env:            os.Getenv("APP_ENV"),
	}

	redis := &Redis{
		Address:  os.Getenv("REDIS_ADDRESS"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}

	kafka := &Kafka{
		Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
	}

	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "10"), 64)
	if err != nil {
		return nil, err
	}
	burst, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "10"))
	if err != nil {
		return nil, err
	}

	rateLimit := &RateLimit{
		RequestsPerSecond: rps,
		Burst:             burst,
	}

	return &Container{
		App:       app,
		Token:     token,
		DB:        db,
		HTTP:      http,
		Redis:     redis,
		Kafka:     kafka,
		RateLimit: rateLimit,
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
