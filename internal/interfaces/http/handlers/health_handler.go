package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/quantgov/mrm/pkg/logger"
)

// HealthHandler provides the health check endpoints.
type HealthHandler struct {
	db    *gorm.DB
	redis redis.UniversalClient
	log   logger.Logger
}

// NewHealthHandler creates a HealthHandler. The redis client may be nil
// when the deployment runs on the local cache.
func NewHealthHandler(db *gorm.DB, redisClient redis.UniversalClient, log logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:    db,
		redis: redisClient,
		log:   log,
	}
}

// HealthCheck reports the health of the service and its dependencies.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	status := "healthy"
	checks := h.performChecks(c)

	httpStatus := http.StatusOK
	for _, checkStatus := range checks {
		if checkStatus != "ok" {
			status = "unhealthy"
			httpStatus = http.StatusServiceUnavailable
			break
		}
	}

	c.JSON(httpStatus, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC(),
		"checks":    checks,
	})
}

// ReadinessCheck reports whether the service is ready to accept traffic.
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	h.HealthCheck(c)
}

// LivenessCheck reports that the process is alive.
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"timestamp": time.Now().UTC(),
	})
}

func (h *HealthHandler) performChecks(c *gin.Context) map[string]string {
	var wg sync.WaitGroup
	checks := make(map[string]string)
	mu := &sync.Mutex{}

	checkers := map[string]func() string{
		"database": func() string { return h.checkDatabase(c) },
	}
	if h.redis != nil {
		checkers["redis"] = func() string { return h.checkRedis(c) }
	}

	wg.Add(len(checkers))
	for name, check := range checkers {
		go func(name string, check func() string) {
			defer wg.Done()
			status := check()
			mu.Lock()
			checks[name] = status
			mu.Unlock()
		}(name, check)
	}
	wg.Wait()
	return checks
}

func (h *HealthHandler) checkDatabase(c *gin.Context) string {
	sqlDB, err := h.db.DB()
	if err != nil {
		return "error: " + err.Error()
	}
	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}

func (h *HealthHandler) checkRedis(c *gin.Context) string {
	if err := h.redis.Ping(c.Request.Context()).Err(); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}
