package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"sports-program/backend/pkg/metrics"
)

// Metrics 记录请求数与耗时，route 取路由模板避免路径参数导致标签基数膨胀
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.InFlightInc()
		defer metrics.InFlightDec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveHTTP(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}
