package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/ashwinyue/next-nlp/internal/service/types"
	"github.com/gin-gonic/gin"
)

// ErrorResponse 错误响应
type ErrorResponse struct {
	Error string `json:"error"`
}

// BadRequest 400 错误响应
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

// Error 根据错误类型返回相应的错误响应
func Error(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.JSON(StatusFor(err), ErrorResponse{Error: err.Error()})
}

// StatusFor 错误到 HTTP 状态码的映射
func StatusFor(err error) int {
	switch {
	// 请求截止时间优先于上游错误分类
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, types.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, types.ErrUpstreamRejected), errors.Is(err, types.ErrUpstreamMalformed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
