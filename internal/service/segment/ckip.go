package segment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ashwinyue/next-nlp/internal/service/types"
)

// CKIPClient 远程 CKIP 分词 + 词性标注服务客户端
// 服务端接口: POST {baseURL}/segment {"texts": [...]} -> {"ws": [[...]], "pos": [[...]]}
type CKIPClient struct {
	baseURL string
	client  *http.Client
}

type ckipRequest struct {
	Texts []string `json:"texts"`
}

type ckipResponse struct {
	WS  [][]string `json:"ws"`
	POS [][]string `json:"pos"`
}

type ckipError struct {
	Error string `json:"error"`
}

// NewCKIPClient 创建 CKIP 客户端，httpClient 为 nil 时使用无超时的默认客户端
func NewCKIPClient(baseURL string, httpClient *http.Client) *CKIPClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &CKIPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpClient,
	}
}

// Segment 调用远程服务进行分词和词性标注
func (c *CKIPClient) Segment(ctx context.Context, texts []string) ([][]string, [][]string, error) {
	body, err := json.Marshal(ckipRequest{Texts: texts})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/segment", bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: ckip request failed: %w", types.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to read ckip response: %w", types.ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := string(respBody)
		var ce ckipError
		if json.Unmarshal(respBody, &ce) == nil && ce.Error != "" {
			msg = ce.Error
		}
		kind := types.ErrUpstreamRejected
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			kind = types.ErrUpstreamUnavailable
		}
		return nil, nil, fmt.Errorf("%w: ckip error (%d): %s", kind, resp.StatusCode, msg)
	}

	var out ckipResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, nil, fmt.Errorf("%w: failed to decode ckip response: %w", types.ErrUpstreamMalformed, err)
	}

	if len(out.WS) != len(texts) || len(out.POS) != len(texts) {
		return nil, nil, fmt.Errorf("%w: expected %d sentences, got ws=%d pos=%d",
			types.ErrUpstreamMalformed, len(texts), len(out.WS), len(out.POS))
	}
	for i := range out.WS {
		if len(out.WS[i]) != len(out.POS[i]) {
			return nil, nil, fmt.Errorf("%w: sentence %d has %d words but %d tags",
				types.ErrUpstreamMalformed, i, len(out.WS[i]), len(out.POS[i]))
		}
	}

	return out.WS, out.POS, nil
}
