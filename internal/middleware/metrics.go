package middleware

import (
	"strconv"
	"time"

	"github.com/ashwinyue/next-nlp/internal/metrics"
	"github.com/gin-gonic/gin"
)

// MetricsMiddleware 记录 HTTP 请求指标
// 使用路由模板作为 path 标签，未匹配的路由统一记为 unmatched
func MetricsMiddleware(collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		collector.RecordHTTPRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
