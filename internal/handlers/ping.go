package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

const livenessReply = "✅ Bot de WhatsApp con Gemini activo"

// PingHandler serves the liveness endpoint used by the hosting platform.
type PingHandler struct {
	logger *slog.Logger
}

// NewPingHandler creates a PingHandler.
func NewPingHandler(log *slog.Logger) *PingHandler {
	return &PingHandler{logger: log.With(slog.String("handler", "ping"))}
}

// Register registers the liveness routes.
func (h *PingHandler) Register(e *echo.Echo) {
	e.GET("/", h.Ping)
	e.HEAD("/health", h.PingHead)
}

// Ping returns a static liveness string.
func (h *PingHandler) Ping(c echo.Context) error {
	return c.String(http.StatusOK, livenessReply)
}

// PingHead answers HEAD health probes without a body.
func (h *PingHandler) PingHead(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}
