package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// actorID identifies who performed a mutating call; the idempotency
// middleware enforces its presence on those routes.
func actorID(c echo.Context) string {
	return c.Request().Header.Get("X-Actor-Id")
}
