package router

import (
	"time"

	"github.com/ashwinyue/next-nlp/internal/handler"
	"github.com/ashwinyue/next-nlp/internal/metrics"
	"github.com/ashwinyue/next-nlp/internal/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter 设置路由
// collector 为 nil 时不暴露 /metrics；requestTimeout <= 0 时不限制请求耗时
func SetupRouter(h *handler.Handlers, logger *zap.Logger, collector *metrics.Collector, requestTimeout time.Duration) *gin.Engine {
	r := gin.New()

	// 中间件，Recovery 放在最内层，panic 转成的 500 仍会被记录日志和指标
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware(logger))
	if collector != nil {
		r.Use(middleware.MetricsMiddleware(collector))
	}
	r.Use(middleware.RecoveryMiddleware(logger))
	r.Use(middleware.TimeoutMiddleware(requestTimeout))

	if collector != nil {
		r.GET("/metrics", gin.WrapH(collector.Handler()))
	}

	// 健康检查
	r.GET("/health", h.System.Health)

	// NLP 接口
	r.POST("/extract_keywords", h.Keyword.ExtractKeywords)
	r.POST("/rerank", h.Rerank.Rerank)

	return r
}
