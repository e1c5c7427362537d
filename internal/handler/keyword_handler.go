package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// MsgMissingText 缺少 text 字段
const MsgMissingText = "Missing 'text' in request body."

// KeywordExtractor 关键词提取接口
type KeywordExtractor interface {
	Extract(ctx context.Context, text string) ([]string, error)
}

// KeywordHandler 关键词提取处理器
type KeywordHandler struct {
	extractor KeywordExtractor
}

// NewKeywordHandler 创建关键词提取处理器
func NewKeywordHandler(extractor KeywordExtractor) *KeywordHandler {
	return &KeywordHandler{extractor: extractor}
}

// ExtractKeywordsRequest 关键词提取请求
type ExtractKeywordsRequest struct {
	Text *string `json:"text"`
}

// ExtractKeywordsResponse 关键词提取响应
type ExtractKeywordsResponse struct {
	Keywords []string `json:"keywords"`
}

// ExtractKeywords 提取关键词
// POST /extract_keywords
func (h *KeywordHandler) ExtractKeywords(c *gin.Context) {
	var req ExtractKeywordsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == nil {
		BadRequest(c, MsgMissingText)
		return
	}

	keywords, err := h.extractor.Extract(c.Request.Context(), *req.Text)
	if err != nil {
		Error(c, err)
		return
	}
	if keywords == nil {
		keywords = []string{}
	}

	c.JSON(http.StatusOK, ExtractKeywordsResponse{Keywords: keywords})
}
