package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"bookmarks/internal/delivery/api/response"
	deliverycontext "bookmarks/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const healthPingTimeout = 2 * time.Second

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandlerParams struct {
	fx.In

	Database Pinger `optional:"true"`
	Logger   *slog.Logger
}

type HealthHandler struct {
	database Pinger
	logger   *slog.Logger
}

func NewHealthHandler(params HealthHandlerParams) *HealthHandler {
	return &HealthHandler{
		database: params.Database,
		logger:   params.Logger,
	}
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

// HealthCheck answers 200 while the database answers pings, 503 otherwise.
func (h *HealthHandler) HealthCheck(c echo.Context) error {
	if h.database == nil {
		return response.Success(c, http.StatusOK, HealthResponse{Status: "ok"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), healthPingTimeout)
	defer cancel()

	if err := h.database.PingContext(ctx); err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, h.logger).Warn("Health check failed", slog.Any("error", err))

		return response.Success(c, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Database: "down"})
	}

	return response.Success(c, http.StatusOK, HealthResponse{Status: "ok", Database: "up"})
}
