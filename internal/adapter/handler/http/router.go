package http

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/webstack-labs/user-auth-services/internal/config"
	"github.com/webstack-labs/user-auth-services/internal/core/ports"
)

type Router struct {
	*gin.Engine
}

// NewAuthRouter wires the auth service: the login endpoint behind the global
// rate limiter, plus metrics and health.
func NewAuthRouter(
	config *config.HTTP,
	limiter *rate.Limiter,
	authHandler *AuthHandler,
) (*Router, error) {
	router := newBaseRouter(config)

	auth := router.Group("/auth")
	auth.Use(RateLimitMiddleware(limiter))
	{
		auth.POST("/login", authHandler.Login)
	}

	return &Router{
		Engine: router,
	}, nil
}

// NewUserRouter wires the user service: open registration and JWT-protected
// user management.
func NewUserRouter(
	config *config.HTTP,
	tokenService ports.TokenService,
	userHandler *UserHandler,
) (*Router, error) {
	router := newBaseRouter(config)

	users := router.Group("/users")
	{
		users.POST("/create", userHandler.CreateUser)

		protected := users.Group("")
		protected.Use(AuthMiddleware(tokenService))
		{
			protected.GET("/:id", userHandler.GetUser)
			protected.PUT("/:id", userHandler.UpdateUser)
			protected.DELETE("/:id", userHandler.DeleteUser)
		}
	}

	return &Router{
		Engine: router,
	}, nil
}

func newBaseRouter(config *config.HTTP) *gin.Engine {
	if config.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	ginConfig := cors.DefaultConfig()
	ginConfig.AllowOrigins = strings.Split(config.AllowedOrigins, ",")

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), cors.New(ginConfig))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}

// Serve starts the HTTP server.
func (r *Router) Serve(listenAddr string) error {
	return r.Run(listenAddr)
}
