package service

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ashwinyue/next-nlp/internal/config"
	"github.com/ashwinyue/next-nlp/internal/metrics"
	"github.com/ashwinyue/next-nlp/internal/service/rerank"
	"github.com/ashwinyue/next-nlp/internal/service/segment"
	"github.com/ashwinyue/next-nlp/internal/service/types"
	"go.uber.org/zap"
)

// newSegmenter 根据配置创建分词器
func newSegmenter(cfg *config.Config, logger *zap.Logger, collector *metrics.Collector) (types.Segmenter, error) {
	segCfg := cfg.Segment

	switch segCfg.Provider {
	case "gse":
		start := time.Now()
		tagger, err := segment.NewGseTagger(segCfg.DictFileList()...)
		if err != nil {
			return nil, err
		}
		logger.Info("gse dictionary loaded",
			zap.Strings("dict_files", segCfg.DictFileList()),
			zap.Duration("elapsed", time.Since(start)),
		)
		return newInstrumentedSegmenter("gse", segment.NewSilenced(tagger), logger, collector), nil
	case "ckip":
		client := segment.NewCKIPClient(segCfg.CKIP.BaseURL, newHTTPClient(segCfg.CKIP.Timeout))
		logger.Info("using remote ckip segmenter", zap.String("base_url", segCfg.CKIP.BaseURL))
		return newInstrumentedSegmenter("ckip", client, logger, collector), nil
	default:
		return nil, fmt.Errorf("unsupported segment provider: %s", segCfg.Provider)
	}
}

// newReranker 创建 Voyage 重排器
func newReranker(cfg *config.Config, logger *zap.Logger, collector *metrics.Collector) types.Reranker {
	voyageCfg := cfg.Voyage

	reranker := rerank.NewVoyageReranker(voyageCfg.APIKey,
		rerank.WithBaseURL(voyageCfg.BaseURL),
		rerank.WithModel(voyageCfg.Model),
		rerank.WithTopK(voyageCfg.TopK),
		rerank.WithHTTPClient(newHTTPClient(voyageCfg.Timeout)),
	)
	logger.Info("voyage reranker configured",
		zap.String("model", voyageCfg.Model),
		zap.Int("top_k", voyageCfg.TopK),
	)
	return newInstrumentedReranker("voyage", reranker, logger, collector)
}

// newHTTPClient 创建出站 HTTP 客户端，timeout 单位秒，0 表示不超时
func newHTTPClient(timeout int) *http.Client {
	return &http.Client{Timeout: time.Duration(timeout) * time.Second}
}
