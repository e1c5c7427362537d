package handler

import (
	"context"
	"net/http"

	"github.com/ashwinyue/next-nlp/internal/service/rerank"
	"github.com/gin-gonic/gin"
)

// MsgMissingQueryOrDocuments 缺少 query 或 documents 字段
const MsgMissingQueryOrDocuments = "Missing 'query' or 'documents' in request body."

// DocumentRanker 文档重排接口
type DocumentRanker interface {
	Rank(ctx context.Context, query string, documents []string) ([]rerank.RankedDocument, error)
}

// RerankHandler 重排处理器
type RerankHandler struct {
	ranker DocumentRanker
}

// NewRerankHandler 创建重排处理器
func NewRerankHandler(ranker DocumentRanker) *RerankHandler {
	return &RerankHandler{ranker: ranker}
}

// RerankRequest 重排请求
type RerankRequest struct {
	Query     *string   `json:"query"`
	Documents *[]string `json:"documents"`
}

// RerankResponse 重排响应
type RerankResponse struct {
	RankedDocuments []rerank.RankedDocument `json:"ranked_documents"`
}

// Rerank 按相关度重排文档
// POST /rerank
func (h *RerankHandler) Rerank(c *gin.Context) {
	var req RerankRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Query == nil || req.Documents == nil {
		BadRequest(c, MsgMissingQueryOrDocuments)
		return
	}

	ranked, err := h.ranker.Rank(c.Request.Context(), *req.Query, *req.Documents)
	if err != nil {
		Error(c, err)
		return
	}
	if ranked == nil {
		ranked = []rerank.RankedDocument{}
	}

	c.JSON(http.StatusOK, RerankResponse{RankedDocuments: ranked})
}
