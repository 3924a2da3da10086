package handlers

import (
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC(),
	})
}

func ReadinessCheck(c echo.Context, pool *pgxpool.Pool) error {
	if err := pool.Ping(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
			"status": "unavailable",
			"error":  "database unreachable",
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "ready",
	})
}
