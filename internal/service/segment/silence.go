package segment

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/ashwinyue/next-nlp/internal/service/types"
)

// streamMu 保护进程级的 os.Stdout / os.Stderr / log 输出替换
var streamMu sync.Mutex

// Silently 在静默状态下执行 fn
// 执行期间 os.Stdout、os.Stderr 指向空设备，标准库 log 输出被丢弃；
// 无论 fn 正常返回、返回错误还是 panic，原有的流都会被恢复
func Silently(fn func() error) error {
	streamMu.Lock()
	defer streamMu.Unlock()

	devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", os.DevNull, err)
	}
	defer devNull.Close()

	stdout, stderr := os.Stdout, os.Stderr
	logOutput := log.Writer()

	os.Stdout, os.Stderr = devNull, devNull
	log.SetOutput(io.Discard)
	defer func() {
		os.Stdout, os.Stderr = stdout, stderr
		log.SetOutput(logOutput)
	}()

	return fn()
}

// silenced 静默执行内部分词器的装饰器
type silenced struct {
	inner types.Segmenter
}

// NewSilenced 包装分词器，使其调用期间不向标准输出/错误写入任何内容
func NewSilenced(inner types.Segmenter) types.Segmenter {
	return &silenced{inner: inner}
}

func (s *silenced) Segment(ctx context.Context, texts []string) (ws [][]string, pos [][]string, err error) {
	silenceErr := Silently(func() error {
		ws, pos, err = s.inner.Segment(ctx, texts)
		return nil
	})
	if silenceErr != nil {
		return nil, nil, silenceErr
	}
	return ws, pos, err
}
