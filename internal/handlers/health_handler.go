package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandler exposes the liveness probe.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) RegisterHealthRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
}

func (h *HealthHandler) Health(c echo.Context) error {
	return respond(c, http.StatusOK, "ok", nil)
}
