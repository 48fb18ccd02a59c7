package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zaoknom/docbox-backend/internal/infrastructure/persistence"
)

// HealthStore reports reachability and pool usage of the backing
// database
type HealthStore interface {
	Ping() error
	Stats() (persistence.ConnectionStats, error)
}

// SystemHandler serves liveness and readiness probes
type SystemHandler struct {
	db      HealthStore
	started time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db HealthStore) *SystemHandler {
	return &SystemHandler{db: db, started: time.Now()}
}

// RegisterRoutes mounts the health endpoint on the engine root rather
// than the versioned API group
func (h *SystemHandler) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/health", h.Health)
}

// Health reports service status and checks the database connection
func (h *SystemHandler) Health(c *gin.Context) {
	code := http.StatusOK
	status := "ok"
	dbStatus := "ok"

	body := gin.H{
		"uptime": time.Since(h.started).Round(time.Second).String(),
	}

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			code = http.StatusServiceUnavailable
			status = "degraded"
			dbStatus = "unreachable"
		} else if stats, err := h.db.Stats(); err == nil {
			body["db_pool"] = gin.H{
				"open":   stats.OpenConnections,
				"in_use": stats.InUse,
				"idle":   stats.Idle,
			}
		}
	}

	body["status"] = status
	body["database"] = dbStatus
	c.JSON(code, body)
}
