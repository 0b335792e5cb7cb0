package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"productivity/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness, the storage driver in use and host CPU load.
type HealthHandler struct {
	driver string
	ping   func(ctx context.Context) error
	log    *slog.Logger
}

// NewHealthHandler takes an optional ping that checks the storage backend.
func NewHealthHandler(driver string, ping func(ctx context.Context) error, log *slog.Logger) *HealthHandler {
	if log == nil {
		log = slog.Default()
	}
	return &HealthHandler{driver: driver, ping: ping, log: log}
}

func (h *HealthHandler) Health(c *gin.Context) {
	body := gin.H{
		"status":      "ok",
		"storage":     h.driver,
		"cpu_percent": utils.GetCPUUsage(),
		"time":        time.Now().UTC(),
	}

	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			h.log.Warn("storage ping failed", "driver", h.driver, "error", err)
			body["status"] = "degraded"
			body["error"] = err.Error()
			c.JSON(http.StatusServiceUnavailable, &utils.Response{Status: http.StatusServiceUnavailable, Data: body})
			return
		}
	}
	utils.Success(c, body)
}
