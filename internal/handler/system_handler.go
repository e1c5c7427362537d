package handler

import (
	"net/http"

	"github.com/ashwinyue/next-nlp/internal/config"
	"github.com/gin-gonic/gin"
)

// SystemHandler 系统处理器
type SystemHandler struct {
	cfg *config.Config
}

// NewSystemHandler 创建系统处理器
func NewSystemHandler(cfg *config.Config) *SystemHandler {
	return &SystemHandler{cfg: cfg}
}

// Health 健康检查
// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	resp := gin.H{"status": "ok"}
	if h.cfg != nil {
		resp["name"] = h.cfg.App.Name
		resp["version"] = h.cfg.App.Version
		resp["segmenter"] = h.cfg.Segment.Provider
		resp["rerank_model"] = h.cfg.Voyage.Model
	}
	c.JSON(http.StatusOK, resp)
}
