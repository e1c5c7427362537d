package handler

import (
	"github.com/ashwinyue/next-nlp/internal/service"
)

// Handlers 处理器集合
type Handlers struct {
	Keyword *KeywordHandler
	Rerank  *RerankHandler
	System  *SystemHandler
}

// NewHandlers 创建所有处理器
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Keyword: NewKeywordHandler(svc.Keyword),
		Rerank:  NewRerankHandler(svc.Rerank),
		System:  NewSystemHandler(svc.Config),
	}
}
