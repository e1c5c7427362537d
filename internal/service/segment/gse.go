// Package segment 提供中文分词与词性标注适配器
package segment

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-ego/gse"
)

// GseTagger 基于 gse 词典的进程内分词 + 词性标注器
// 词典在创建时加载一次，之后只读，可被并发调用
type GseTagger struct {
	seg gse.Segmenter
}

// NewGseTagger 加载词典并创建分词器
// dictFiles 为空时使用编译进二进制的 gse 内置中文词典，不依赖本机模块缓存
func NewGseTagger(dictFiles ...string) (*GseTagger, error) {
	t := &GseTagger{}
	err := Silently(func() error {
		var (
			seg gse.Segmenter
			err error
		)
		if len(dictFiles) == 0 {
			seg, err = gse.NewEmbed("zh")
		} else {
			// gse 只读取第一个参数并自行按逗号拆分，多个文件必须合并为一个参数
			seg, err = gse.New(strings.Join(dictFiles, ","))
		}
		if err != nil {
			return err
		}
		t.seg = seg
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load gse dictionary: %w", err)
	}
	return t, nil
}

// Segment 对每个文本分词，再对分词结果标注词性（CKIP 词性标记）
func (t *GseTagger) Segment(ctx context.Context, texts []string) ([][]string, [][]string, error) {
	ws := make([][]string, 0, len(texts))
	pos := make([][]string, 0, len(texts))

	for _, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		segs := t.seg.Pos(text, false)
		words := make([]string, 0, len(segs))
		tags := make([]string, 0, len(segs))
		for _, s := range segs {
			words = append(words, s.Text)
			tags = append(tags, CKIPTag(s.Pos))
		}
		ws = append(ws, words)
		pos = append(pos, tags)
	}

	return ws, pos, nil
}

// ictclasToCKIP gse (ICTCLAS / jieba) 词性到 CKIP 词性的映射
var ictclasToCKIP = map[string]string{
	// 名词
	"n":    "Na",
	"ng":   "Na",
	"an":   "Na",
	"vn":   "Nv",
	"nr":   "Nb",
	"nrfg": "Nb",
	"nrt":  "Nb",
	"nt":   "Nb",
	"nz":   "Nb",
	"ns":   "Nc",
	"s":    "Ncd",
	"f":    "Ncd",
	"t":    "Nd",
	"tg":   "Nd",
	"m":    "Neu",
	"mq":   "Neu",
	"q":    "Nf",
	"r":    "Nh",
	"rr":   "Nh",
	"rz":   "Nep",
	"rg":   "Nh",
	// 动词
	"v":  "VC",
	"vg": "VC",
	"vd": "VC",
	"vi": "VA",
	"vq": "VC",
	"a":  "VH",
	"ag": "VH",
	"z":  "VH",
	"b":  "A",
	// 虚词
	"d":  "D",
	"dg": "D",
	"ad": "D",
	"p":  "P",
	"c":  "Caa",
	"u":  "DE",
	"uj": "DE",
	"ud": "DE",
	"ug": "Di",
	"ul": "Di",
	"uz": "Di",
	"uv": "DE",
	"y":  "T",
	"e":  "I",
	"o":  "D",
	"h":  "FW",
	"k":  "FW",
	// 其他
	"eng": "FW",
	"x":   "FW",
	"w":   "PUNCT",
}

// CKIPTag 将 gse 词性转换为 CKIP 词性
// 未知词性按首字母归类，其余标记为 FW
func CKIPTag(tag string) string {
	tag = strings.ToLower(tag)
	if ckip, ok := ictclasToCKIP[tag]; ok {
		return ckip
	}
	switch {
	case strings.HasPrefix(tag, "n"):
		return "Na"
	case strings.HasPrefix(tag, "v"):
		return "VC"
	default:
		return "FW"
	}
}
