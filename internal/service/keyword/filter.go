// Package keyword 提供基于词性的关键词过滤和提取
package keyword

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ashwinyue/next-nlp/internal/service/types"
)

// stopPOS 即使是名词也要排除的词性（Nep 指代定词、Nh 代名词、Nb 专有名词）
var stopPOS = map[string]struct{}{
	"Nep": {},
	"Nh":  {},
	"Nb":  {},
}

// Keep 判断单个词是否保留为关键词
// 词性以 V 或 N 开头、不在 stopPOS 中、且字数大于 1（按 Unicode 码点计）
func Keep(word, pos string) bool {
	if !strings.HasPrefix(pos, "V") && !strings.HasPrefix(pos, "N") {
		return false
	}
	if _, stop := stopPOS[pos]; stop {
		return false
	}
	return utf8.RuneCountInString(word) > 1
}

// Clean 过滤一句话的分词结果，保留的词以单个空格连接
func Clean(words, tags []string) (string, error) {
	if len(words) != len(tags) {
		return "", fmt.Errorf("%w: %d words but %d tags", types.ErrInvalidInput, len(words), len(tags))
	}

	kept := make([]string, 0, len(words))
	for i, word := range words {
		if Keep(word, tags[i]) {
			kept = append(kept, word)
		}
	}
	return strings.Join(kept, " "), nil
}

// Filter 过滤一句话的分词结果并按空白切分为关键词列表
// 保持输入顺序，不去重
func Filter(words, tags []string) ([]string, error) {
	cleaned, err := Clean(words, tags)
	if err != nil {
		return nil, err
	}
	keywords := strings.Fields(cleaned)
	if keywords == nil {
		keywords = []string{}
	}
	return keywords, nil
}
