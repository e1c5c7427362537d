package service

import (
	"context"
	"errors"
	"time"

	"github.com/ashwinyue/next-nlp/internal/metrics"
	"github.com/ashwinyue/next-nlp/internal/service/types"
	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"
)

// Outcome 把上游调用结果归类为指标标签
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.Is(err, types.ErrInvalidInput):
		return "invalid"
	case errors.Is(err, types.ErrUpstreamUnavailable):
		return "unavailable"
	case errors.Is(err, types.ErrUpstreamRejected):
		return "rejected"
	case errors.Is(err, types.ErrUpstreamMalformed):
		return "malformed"
	default:
		return "error"
	}
}

type instrumentedSegmenter struct {
	name      string
	inner     types.Segmenter
	logger    *zap.Logger
	collector *metrics.Collector
}

func newInstrumentedSegmenter(name string, inner types.Segmenter, logger *zap.Logger, collector *metrics.Collector) types.Segmenter {
	return &instrumentedSegmenter{
		name:      name,
		inner:     inner,
		logger:    logger.With(zap.String("upstream", name)),
		collector: collector,
	}
}

func (s *instrumentedSegmenter) Segment(ctx context.Context, texts []string) ([][]string, [][]string, error) {
	start := time.Now()
	ws, pos, err := s.inner.Segment(ctx, texts)
	s.observe(err, time.Since(start), zap.Int("texts", len(texts)))
	return ws, pos, err
}

func (s *instrumentedSegmenter) observe(err error, elapsed time.Duration, fields ...zap.Field) {
	outcome := Outcome(err)
	if s.collector != nil {
		s.collector.RecordUpstreamCall(s.name, outcome, elapsed)
	}
	fields = append(fields, zap.String("outcome", outcome), zap.Duration("elapsed", elapsed))
	if err != nil {
		s.logger.Warn("segment call failed", append(fields, zap.Error(err))...)
		return
	}
	s.logger.Debug("segment call", fields...)
}

type instrumentedReranker struct {
	name      string
	inner     types.Reranker
	logger    *zap.Logger
	collector *metrics.Collector
}

func newInstrumentedReranker(name string, inner types.Reranker, logger *zap.Logger, collector *metrics.Collector) types.Reranker {
	return &instrumentedReranker{
		name:      name,
		inner:     inner,
		logger:    logger.With(zap.String("upstream", name)),
		collector: collector,
	}
}

func (r *instrumentedReranker) Rerank(ctx context.Context, query string, docs []*schema.Document) ([]*schema.Document, error) {
	start := time.Now()
	result, err := r.inner.Rerank(ctx, query, docs)
	elapsed := time.Since(start)

	outcome := Outcome(err)
	if r.collector != nil {
		r.collector.RecordUpstreamCall(r.name, outcome, elapsed)
	}
	fields := []zap.Field{
		zap.Int("documents", len(docs)),
		zap.String("outcome", outcome),
		zap.Duration("elapsed", elapsed),
	}
	if err != nil {
		r.logger.Warn("rerank call failed", append(fields, zap.Error(err))...)
		return nil, err
	}
	r.logger.Debug("rerank call", append(fields, zap.Int("results", len(result)))...)
	return result, nil
}
