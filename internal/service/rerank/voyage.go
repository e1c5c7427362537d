package rerank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ashwinyue/next-nlp/internal/service/types"
	"github.com/cloudwego/eino/schema"
)

const (
	voyageBaseURL = "https://api.voyageai.com/v1"
	voyageModel   = "rerank-2"
)

// VoyageReranker 调用 Voyage AI rerank 接口的重排器
type VoyageReranker struct {
	apiKey  string
	baseURL string
	model   string
	topK    int
	client  *http.Client
}

// VoyageOption Voyage 重排器选项
type VoyageOption func(*VoyageReranker)

// WithBaseURL 设置 API 地址
func WithBaseURL(baseURL string) VoyageOption {
	return func(r *VoyageReranker) {
		if baseURL != "" {
			r.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithModel 设置重排模型
func WithModel(model string) VoyageOption {
	return func(r *VoyageReranker) {
		if model != "" {
			r.model = model
		}
	}
}

// WithTopK 设置返回的最大文档数
func WithTopK(topK int) VoyageOption {
	return func(r *VoyageReranker) {
		if topK > 0 {
			r.topK = topK
		}
	}
}

// WithHTTPClient 设置 HTTP 客户端
func WithHTTPClient(client *http.Client) VoyageOption {
	return func(r *VoyageReranker) {
		if client != nil {
			r.client = client
		}
	}
}

type voyageRequest struct {
	Query           string   `json:"query"`
	Documents       []string `json:"documents"`
	Model           string   `json:"model"`
	TopK            int      `json:"top_k,omitempty"`
	ReturnDocuments bool     `json:"return_documents"`
}

type voyageResponse struct {
	Data []struct {
		Index          int     `json:"index"`
		RelevanceScore float64 `json:"relevance_score"`
		Document       string  `json:"document"`
	} `json:"data"`
	Model string `json:"model"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

type voyageError struct {
	Detail string `json:"detail"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NewVoyageReranker 创建 Voyage 重排器
func NewVoyageReranker(apiKey string, opts ...VoyageOption) *VoyageReranker {
	r := &VoyageReranker{
		apiKey:  apiKey,
		baseURL: voyageBaseURL,
		model:   voyageModel,
		topK:    DefaultTopK,
		client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rerank 调用 Voyage 接口重排文档
// 返回的文档是输入文档的副本，带有 relevance_score，顺序与接口返回一致
func (r *VoyageReranker) Rerank(ctx context.Context, query string, docs []*schema.Document) ([]*schema.Document, error) {
	if r.apiKey == "" {
		return nil, fmt.Errorf("%w: voyage api key not set", types.ErrInvalidInput)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: no documents provided", types.ErrInvalidInput)
	}

	contents := make([]string, len(docs))
	for i, doc := range docs {
		contents[i] = doc.Content
	}

	body, err := json.Marshal(voyageRequest{
		Query:           query,
		Documents:       contents,
		Model:           r.model,
		TopK:            min(r.topK, len(docs)),
		ReturnDocuments: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/rerank", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+r.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: voyage request failed: %w", types.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read voyage response: %w", types.ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := string(respBody)
		var ve voyageError
		if json.Unmarshal(respBody, &ve) == nil {
			if ve.Detail != "" {
				msg = ve.Detail
			} else if ve.Error.Message != "" {
				msg = ve.Error.Message
			}
		}

		// 429 和 5xx 视为暂时不可用，其余 4xx 为请求被拒绝
		kind := types.ErrUpstreamRejected
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			kind = types.ErrUpstreamUnavailable
		}
		return nil, fmt.Errorf("%w: voyage api error (%d): %s", kind, resp.StatusCode, msg)
	}

	var voyageResp voyageResponse
	if err := json.Unmarshal(respBody, &voyageResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode voyage response: %w", types.ErrUpstreamMalformed, err)
	}

	result := make([]*schema.Document, 0, len(voyageResp.Data))
	for _, d := range voyageResp.Data {
		if d.Index < 0 || d.Index >= len(docs) {
			return nil, fmt.Errorf("%w: result index %d out of range [0, %d)", types.ErrUpstreamMalformed, d.Index, len(docs))
		}
		src := docs[d.Index]
		doc := &schema.Document{
			ID:      src.ID,
			Content: src.Content,
		}
		for k, v := range src.MetaData {
			if doc.MetaData == nil {
				doc.MetaData = make(map[string]any, len(src.MetaData))
			}
			doc.MetaData[k] = v
		}
		result = append(result, doc.WithScore(d.RelevanceScore))
	}

	return result, nil
}
