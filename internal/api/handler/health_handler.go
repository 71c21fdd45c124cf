package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker 依赖探活，返回 nil 表示可用
type HealthChecker func(ctx context.Context) error

// HealthHandler 健康检查
type HealthHandler struct {
	checker HealthChecker
}

// NewHealthHandler 创建 HealthHandler，checker 为 nil 时只报告进程存活
func NewHealthHandler(checker HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Health GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	if h.checker != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.checker(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
