package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mastrovia/devxtra-team/internal/services"
)

// HealthHandler reports the state of the backing services.
type HealthHandler struct {
	db        *gorm.DB
	taskQueue services.TaskQueue
	cache     services.Cache
	storage   bool
	admin     bool
}

func NewHealthHandler(db *gorm.DB, taskQueue services.TaskQueue, cache services.Cache, storage, admin bool) *HealthHandler {
	return &HealthHandler{db: db, taskQueue: taskQueue, cache: cache, storage: storage, admin: admin}
}

// CheckHealth returns the health status of all subsystems.
// GET /health
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	overall := "healthy"
	status := http.StatusOK

	dbStatus := "ok"
	sqlDB, err := h.db.DB()
	if err != nil {
		dbStatus = "error: " + err.Error()
	} else if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		dbStatus = "error: " + err.Error()
	}
	if dbStatus != "ok" {
		overall = "unhealthy"
		status = http.StatusServiceUnavailable
	}

	queueMode := "sync"
	if h.taskQueue != nil && h.taskQueue.IsAsync() {
		queueMode = "async (Redis)"
	}

	cacheMode := "memory"
	if _, ok := h.cache.(*services.RedisCache); ok {
		cacheMode = "redis"
	}

	c.JSON(status, gin.H{
		"status":  overall,
		"service": "devxtra-team",
		"components": gin.H{
			"database":    dbStatus,
			"queue_mode":  queueMode,
			"cache":       cacheMode,
			"storage":     h.storage,
			"admin_users": h.admin,
		},
	})
}
