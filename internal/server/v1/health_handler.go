package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/veldt-labs/switchboard/internal/clientpool"
)

// HealthHandler answers liveness probes. Unauthenticated on purpose.
type HealthHandler struct {
	pool    *clientpool.Pool
	version string
	started time.Time
}

func NewHealthHandler(pool *clientpool.Pool, version string) *HealthHandler {
	return &HealthHandler{pool: pool, version: version, started: time.Now()}
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"version":   h.version,
		"uptime":    time.Since(h.started).Round(time.Second).String(),
		"providers": h.pool.Keys(),
	})
}
