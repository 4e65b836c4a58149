package phrasegen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-emoji-video/index"
	"github.com/gcbaptista/go-emoji-video/internal/lexicon"
	"github.com/gcbaptista/go-emoji-video/internal/tokenizer"
)

type fakeTagger map[string][]tokenizer.TaggedWord

func (f fakeTagger) Tag(text string) []tokenizer.TaggedWord {
	return f[text]
}

func w(text, pos string) tokenizer.TaggedWord {
	return tokenizer.TaggedWord{Text: text, Pos: pos}
}

func TestGenerate(t *testing.T) {
	b := index.NewBuilder()
	b.Add("1F96E", "🥮", []string{"月饼", "中秋节", "中秋节的月饼"})
	b.Add("1F431", "🐱", []string{"猫", "cat", "小猫 咪", "可爱的小猫咪"})
	b.Add("1F4F1", "📱", []string{"手机", "移动电话机"})

	tagger := fakeTagger{
		"中秋节的月饼": {w("中秋节", "t"), w("的", "uj"), w("月饼", "n")},
		"可爱的小猫咪": {w("可爱", "v"), w("的", "uj"), w("小猫咪", "n")},
		"移动电话机":  {w("移动", "vn"), w("电话机", "n")},
	}

	two, three := NewGenerator(tagger).Generate(b.Build())

	// 可爱 holds the stop character 可; 中秋节 is kept as a full keyword even
	// though its tag is not acceptable; 猫 and 小猫 咪 are not 2/3-char Han words.
	assert.Equal(t, []string{"手机", "月饼", "移动"}, two)
	assert.Equal(t, []string{"中秋节", "小猫咪", "电话机"}, three)
}

func TestGenerate_EmptyLexicon(t *testing.T) {
	two, three := NewGenerator(fakeTagger{}).Generate(index.NewBuilder().Build())
	assert.Empty(t, two)
	assert.Empty(t, three)
}

func TestWriteFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "2.json")
	require.NoError(t, WriteFile(path, []string{"手机", "月饼"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"手机\"", "non-ASCII is written verbatim")

	phrases, err := lexicon.LoadPhraseFile(path, index.TwoCharPhrase)
	require.NoError(t, err)
	assert.Equal(t, []string{"手机", "月饼"}, phrases)
}

func TestWriteFile_BadPath(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "2.json"), []string{"手机"})
	assert.Error(t, err)
}
