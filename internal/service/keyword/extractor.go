package keyword

import (
	"context"
	"fmt"

	"github.com/ashwinyue/next-nlp/internal/service/types"
)

// Extractor 关键词提取器：分词 + 词性标注 + 词性过滤
type Extractor struct {
	segmenter types.Segmenter
}

// NewExtractor 创建关键词提取器
func NewExtractor(segmenter types.Segmenter) *Extractor {
	return &Extractor{segmenter: segmenter}
}

// Extract 提取文本中的关键词
// 文本作为一个整体送入分词器，只使用第一组结果
func (e *Extractor) Extract(ctx context.Context, text string) ([]string, error) {
	ws, pos, err := e.segmenter.Segment(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(ws) == 0 || len(pos) == 0 {
		return nil, fmt.Errorf("%w: segmenter returned no sentences", types.ErrUpstreamMalformed)
	}
	if len(ws[0]) != len(pos[0]) {
		return nil, fmt.Errorf("%w: %d words but %d tags", types.ErrUpstreamMalformed, len(ws[0]), len(pos[0]))
	}
	return Filter(ws[0], pos[0])
}
