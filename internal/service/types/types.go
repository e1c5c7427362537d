// Package types 定义共享的类型、接口和错误
package types

import (
	"context"
	"errors"

	"github.com/cloudwego/eino/schema"
)

// Reranker 重排器接口
type Reranker interface {
	Rerank(ctx context.Context, query string, docs []*schema.Document) ([]*schema.Document, error)
}

// Segmenter 分词 + 词性标注接口
// 每个输入文本对应一组词和一组词性，两者长度一致
type Segmenter interface {
	Segment(ctx context.Context, texts []string) (ws [][]string, pos [][]string, err error)
}

// 适配器错误分类，HTTP 层据此选择状态码
var (
	// ErrInvalidInput 输入不合法
	ErrInvalidInput = errors.New("invalid input")
	// ErrUpstreamUnavailable 上游服务不可用（网络错误、429、5xx）
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrUpstreamRejected 上游服务拒绝请求（4xx）
	ErrUpstreamRejected = errors.New("upstream rejected request")
	// ErrUpstreamMalformed 上游响应格式错误
	ErrUpstreamMalformed = errors.New("upstream malformed response")
)
