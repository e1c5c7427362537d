// Package rerank 提供重排序服务
// 远程重排交给 Voyage AI，本地只负责校验、排序和截断
package rerank

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/ashwinyue/next-nlp/internal/service/types"
	"github.com/cloudwego/eino/schema"
)

// DefaultTopK 默认返回的最大文档数
const DefaultTopK = 20

// RankedDocument 重排结果
type RankedDocument struct {
	Document string  `json:"document"`
	Score    float64 `json:"score"`
}

// ========== 分数重排 ==========

// NewScoreReranker 创建分数重排器
// 按分数降序稳定排序，分数相同保持原顺序
func NewScoreReranker() types.Reranker {
	return &scoreReranker{}
}

type scoreReranker struct{}

func (r *scoreReranker) Rerank(ctx context.Context, query string, docs []*schema.Document) ([]*schema.Document, error) {
	if len(docs) <= 1 {
		return docs, nil
	}

	// 复制并按分数降序排序
	sorted := make([]*schema.Document, len(docs))
	copy(sorted, docs)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score() > sorted[j].Score()
	})

	return sorted, nil
}

// ========== 重排服务 ==========

// Service 重排服务：远程重排 + 分数排序 + topK 截断
type Service struct {
	reranker types.Reranker
	sorter   types.Reranker
	topK     int
}

// NewService 创建重排服务
func NewService(reranker types.Reranker, topK int) *Service {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Service{
		reranker: reranker,
		sorter:   NewScoreReranker(),
		topK:     topK,
	}
}

// Rank 按与 query 的相关度对 documents 重排
// 返回结果按分数非递增排列，长度不超过 topK 和输入文档数
func (s *Service) Rank(ctx context.Context, query string, documents []string) ([]RankedDocument, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query must not be empty", types.ErrInvalidInput)
	}
	if len(documents) == 0 {
		return nil, fmt.Errorf("%w: documents must not be empty", types.ErrInvalidInput)
	}

	docs := make([]*schema.Document, len(documents))
	for i, content := range documents {
		docs[i] = &schema.Document{ID: strconv.Itoa(i), Content: content}
	}

	reranked, err := s.reranker.Rerank(ctx, query, docs)
	if err != nil {
		return nil, err
	}

	for _, doc := range reranked {
		if score := doc.Score(); math.IsNaN(score) || math.IsInf(score, 0) {
			return nil, fmt.Errorf("%w: non-finite score for document %s", types.ErrUpstreamMalformed, doc.ID)
		}
	}

	sorted, err := s.sorter.Rerank(ctx, query, reranked)
	if err != nil {
		return nil, err
	}

	limit := min(s.topK, len(documents), len(sorted))
	result := make([]RankedDocument, 0, limit)
	for _, doc := range sorted[:limit] {
		result = append(result, RankedDocument{
			Document: doc.Content,
			Score:    doc.Score(),
		})
	}

	return result, nil
}
