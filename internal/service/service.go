package service

import (
	"fmt"

	"github.com/ashwinyue/next-nlp/internal/config"
	"github.com/ashwinyue/next-nlp/internal/metrics"
	"github.com/ashwinyue/next-nlp/internal/service/keyword"
	"github.com/ashwinyue/next-nlp/internal/service/rerank"
	"go.uber.org/zap"
)

// Services 服务集合
// 在进程启动时创建一次，通过 handler 注入到请求处理中
type Services struct {
	Keyword *keyword.Extractor
	Rerank  *rerank.Service

	Config  *config.Config
	Metrics *metrics.Collector
}

// NewServices 创建所有服务
// 分词模型在这里加载，耗时较长
func NewServices(cfg *config.Config, logger *zap.Logger, collector *metrics.Collector) (*Services, error) {
	segmenter, err := newSegmenter(cfg, logger, collector)
	if err != nil {
		return nil, fmt.Errorf("failed to init segmenter: %w", err)
	}

	reranker := newReranker(cfg, logger, collector)

	return &Services{
		Keyword: keyword.NewExtractor(segmenter),
		Rerank:  rerank.NewService(reranker, cfg.Voyage.TopK),
		Config:  cfg,
		Metrics: collector,
	}, nil
}
