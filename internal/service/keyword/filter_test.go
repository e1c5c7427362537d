package keyword

import (
	"testing"

	"github.com/ashwinyue/next-nlp/internal/service/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeep(t *testing.T) {
	tests := []struct {
		name string
		word string
		pos  string
		want bool
	}{
		{name: "common noun", word: "房子", pos: "Na", want: true},
		{name: "verb", word: "跑步", pos: "VA", want: true},
		{name: "place noun", word: "台北", pos: "Nc", want: true},
		{name: "single char noun", word: "貓", pos: "Na", want: false},
		{name: "single char verb", word: "跑", pos: "VA", want: false},
		{name: "particle", word: "的", pos: "DE", want: false},
		{name: "adverb", word: "非常", pos: "D", want: false},
		{name: "proper noun", word: "王小明", pos: "Nb", want: false},
		{name: "pronoun", word: "我們", pos: "Nh", want: false},
		{name: "demonstrative", word: "這個", pos: "Nep", want: false},
		{name: "Nep prefix only is kept", word: "這些", pos: "Neqa", want: true},
		{name: "lowercase tag", word: "房子", pos: "na", want: false},
		{name: "empty word", word: "", pos: "Na", want: false},
		{name: "ascii word", word: "AI", pos: "FW", want: false},
		{name: "ascii noun", word: "AI", pos: "Na", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Keep(tt.word, tt.pos))
		})
	}
}

func TestKeep_CountsCodePoints(t *testing.T) {
	// "é" 由 e + 组合重音符组成，两个码点
	assert.True(t, Keep("e\u0301", "Na"))
	// 单个 4 字节码点
	assert.False(t, Keep("𠮷", "Na"))
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		words []string
		tags  []string
		want  []string
	}{
		{
			name:  "single char and particle dropped",
			words: []string{"貓", "跑", "的", "房子"},
			tags:  []string{"Na", "VA", "DE", "Na"},
			want:  []string{"房子"},
		},
		{
			name:  "order preserved and duplicates kept",
			words: []string{"夜市", "美食", "推薦", "夜市"},
			tags:  []string{"Nc", "Na", "VC", "Nc"},
			want:  []string{"夜市", "美食", "推薦", "夜市"},
		},
		{
			name:  "stop tags removed",
			words: []string{"我們", "這個", "王小明", "喜歡", "士林夜市"},
			tags:  []string{"Nh", "Nep", "Nb", "VK", "Nc"},
			want:  []string{"喜歡", "士林夜市"},
		},
		{
			name:  "empty input",
			words: []string{},
			tags:  []string{},
			want:  []string{},
		},
		{
			name:  "nil input",
			words: nil,
			tags:  nil,
			want:  []string{},
		},
		{
			name:  "word with inner space is re-split",
			words: []string{"New York", "城市"},
			tags:  []string{"Nc", "Na"},
			want:  []string{"New", "York", "城市"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Filter(tt.words, tt.tags)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilter_OnlyAllowedTags(t *testing.T) {
	words := []string{"台北", "好吃", "我們", "夜市", "的", "走路", "很", "林先生", "那裡"}
	tags := []string{"Nc", "VH", "Nh", "Nc", "DE", "VA", "Dfa", "Nb", "Ncd"}

	got, err := Filter(words, tags)
	require.NoError(t, err)

	index := make(map[string]string, len(words))
	for i, w := range words {
		index[w] = tags[i]
	}
	for _, kw := range got {
		tag := index[kw]
		assert.True(t, tag[0] == 'V' || tag[0] == 'N', "tag %s of %s", tag, kw)
		assert.NotContains(t, []string{"Nep", "Nh", "Nb"}, tag)
		assert.Greater(t, len([]rune(kw)), 1)
	}
	assert.Equal(t, []string{"台北", "好吃", "夜市", "走路", "那裡"}, got)
}

func TestClean(t *testing.T) {
	got, err := Clean([]string{"美食", "的", "推薦"}, []string{"Na", "DE", "VC"})
	require.NoError(t, err)
	assert.Equal(t, "美食 推薦", got)
}

func TestClean_LengthMismatch(t *testing.T) {
	_, err := Clean([]string{"美食", "推薦"}, []string{"Na"})
	assert.ErrorIs(t, err, types.ErrInvalidInput)

	_, err = Filter([]string{"美食"}, nil)
	assert.ErrorIs(t, err, types.ErrInvalidInput)
}
