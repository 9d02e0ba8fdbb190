// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"log/slog"

	"bookmarks/config"
	"bookmarks/internal/delivery/api/middleware"
	"bookmarks/internal/delivery/api/router/handler"
	"bookmarks/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	UserHandler     *handler.UserHandler
	BookmarkHandler *handler.BookmarkHandler
	HealthHandler   *handler.HealthHandler
	AuthMiddleware  *middleware.AuthMiddleware
	Gatherer        prometheus.Gatherer `optional:"true"`
	Config          *config.Config
	Logger          *slog.Logger
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler     *handler.AuthHandler
	userHandler     *handler.UserHandler
	bookmarkHandler *handler.BookmarkHandler
	healthHandler   *handler.HealthHandler
	authMiddleware  *middleware.AuthMiddleware
	gatherer        prometheus.Gatherer
	config          *config.Config
	logger          *slog.Logger
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:     params.AuthHandler,
		userHandler:     params.UserHandler,
		bookmarkHandler: params.BookmarkHandler,
		healthHandler:   params.HealthHandler,
		authMiddleware:  params.AuthMiddleware,
		gatherer:        params.Gatherer,
		config:          params.Config,
		logger:          params.Logger,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", r.healthHandler.HealthCheck)

	if r.config.Metrics != nil && r.config.Metrics.Enabled && r.gatherer != nil {
		e.GET(r.config.Metrics.Path, echo.WrapHandler(metrics.Handler(r.gatherer)))
	}

	// Auth routes are public and rate limited per client.
	authGroup := e.Group("/auth", middleware.NewRateLimiter(r.config.RateLimit, r.logger))
	{
		authGroup.POST("/signup", r.authHandler.Signup)
		authGroup.POST("/signin", r.authHandler.Signin)
	}

	userGroup := e.Group("/users", r.authMiddleware.Authenticate)
	{
		userGroup.GET("/me", r.userHandler.GetMe)
		userGroup.GET("/email", r.userHandler.GetEmail)
		userGroup.PATCH("", r.userHandler.EditUser)
	}

	bookmarksGroup := e.Group("/bookmarks", r.authMiddleware.Authenticate)
	{
		bookmarksGroup.GET("", r.bookmarkHandler.ListBookmarks)
		bookmarksGroup.POST("", r.bookmarkHandler.CreateBookmark)
		bookmarksGroup.GET("/:id", r.bookmarkHandler.GetBookmark)
		bookmarksGroup.PATCH("/:id", r.bookmarkHandler.EditBookmark)
		bookmarksGroup.DELETE("/:id", r.bookmarkHandler.DeleteBookmark)
	}
}
