package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ashwinyue/next-nlp/internal/config"
	"github.com/ashwinyue/next-nlp/internal/metrics"
	"github.com/ashwinyue/next-nlp/internal/service/types"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{context.Canceled, "canceled"},
		{fmt.Errorf("wrap: %w", context.DeadlineExceeded), "canceled"},
		{fmt.Errorf("%w: x", types.ErrInvalidInput), "invalid"},
		{fmt.Errorf("%w: x", types.ErrUpstreamUnavailable), "unavailable"},
		{fmt.Errorf("%w: x", types.ErrUpstreamRejected), "rejected"},
		{fmt.Errorf("%w: x", types.ErrUpstreamMalformed), "malformed"},
		{errors.New("other"), "error"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Outcome(tt.err), fmt.Sprint(tt.err))
	}
}

type segmenterFunc func(ctx context.Context, texts []string) ([][]string, [][]string, error)

func (f segmenterFunc) Segment(ctx context.Context, texts []string) ([][]string, [][]string, error) {
	return f(ctx, texts)
}

func TestInstrumentedSegmenter(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	collector := metrics.NewCollector("svc_test")

	boom := fmt.Errorf("%w: model gone", types.ErrUpstreamUnavailable)
	calls := 0
	seg := newInstrumentedSegmenter("gse", segmenterFunc(func(ctx context.Context, texts []string) ([][]string, [][]string, error) {
		calls++
		if calls == 2 {
			return nil, nil, boom
		}
		return [][]string{{"夜市"}}, [][]string{{"Nc"}}, nil
	}), zap.New(core), collector)

	ws, _, err := seg.Segment(context.Background(), []string{"夜市"})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"夜市"}}, ws)

	_, _, err = seg.Segment(context.Background(), []string{"夜市"})
	assert.ErrorIs(t, err, boom)

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "segment call", logs.All()[0].Message)
	assert.Equal(t, "segment call failed", logs.All()[1].Message)
	assert.Equal(t, "unavailable", logs.All()[1].ContextMap()["outcome"])
}

type rerankerFunc func(ctx context.Context, query string, docs []*schema.Document) ([]*schema.Document, error)

func (f rerankerFunc) Rerank(ctx context.Context, query string, docs []*schema.Document) ([]*schema.Document, error) {
	return f(ctx, query, docs)
}

func TestInstrumentedReranker(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	r := newInstrumentedReranker("voyage", rerankerFunc(func(ctx context.Context, q string, docs []*schema.Document) ([]*schema.Document, error) {
		return docs, nil
	}), zap.New(core), nil)

	docs := []*schema.Document{{Content: "a"}}
	got, err := r.Rerank(context.Background(), "q", docs)
	require.NoError(t, err)
	assert.Equal(t, docs, got)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "voyage", logs.All()[0].ContextMap()["upstream"])
}

func TestNewServices_CKIP(t *testing.T) {
	ckip := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"ws":  [][]string{{"饒河街", "夜市", "好", "好吃"}},
			"pos": [][]string{{"Nc", "Nc", "VH", "VH"}},
		})
	}))
	defer ckip.Close()

	voyage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"index":1,"relevance_score":0.9},{"index":0,"relevance_score":0.1}]}`))
	}))
	defer voyage.Close()

	cfg := &config.Config{
		Segment: config.SegmentConfig{
			Provider: "ckip",
			CKIP:     config.CKIPConfig{BaseURL: ckip.URL},
		},
		Voyage: config.VoyageConfig{
			APIKey:  "k",
			BaseURL: voyage.URL,
			Model:   "rerank-2",
			TopK:    20,
		},
	}
	collector := metrics.NewCollector("svc_wiring")

	svcs, err := NewServices(cfg, zap.NewNop(), collector)
	require.NoError(t, err)

	keywords, err := svcs.Keyword.Extract(context.Background(), "饒河街夜市好好吃")
	require.NoError(t, err)
	assert.Equal(t, []string{"饒河街", "夜市", "好吃"}, keywords)

	ranked, err := svcs.Rerank.Rank(context.Background(), "夜市", []string{"臺北市", "夜市"})
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "夜市", ranked[0].Document)
	assert.Equal(t, 0.9, ranked[0].Score)
}

func TestNewServices_GseDictFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte("甲乙丙 1000 n\n"), 0o600))
	require.NoError(t, os.WriteFile(b, []byte("丁戊己 1000 n\n"), 0o600))

	cfg := &config.Config{
		Segment: config.SegmentConfig{
			Provider:  "gse",
			DictFiles: a + "," + b,
		},
		Voyage: config.VoyageConfig{APIKey: "test-key", TopK: 20},
	}

	svcs, err := NewServices(cfg, zap.NewNop(), nil)
	require.NoError(t, err)

	keywords, err := svcs.Keyword.Extract(context.Background(), "甲乙丙丁戊己")
	require.NoError(t, err)
	assert.Equal(t, []string{"甲乙丙", "丁戊己"}, keywords)
}

func TestNewServices_UnknownProvider(t *testing.T) {
	cfg := &config.Config{Segment: config.SegmentConfig{Provider: "jieba"}}
	_, err := NewServices(cfg, zap.NewNop(), nil)
	assert.Error(t, err)
}
