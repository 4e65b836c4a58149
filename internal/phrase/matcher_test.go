package phrase

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/gcbaptista/go-emoji-video/index"
)

func TestSplit(t *testing.T) {
	phrases := index.NewPhraseSet(
		[]string{"你好", "电脑", "脑子", "手机", "人工", "智能", "中秋"},
		[]string{"你好吗", "中秋节"},
	)
	m := NewMatcher(phrases)

	tests := []struct {
		name  string
		token string
		want  []string
	}{
		{"empty token", "", []string{}},
		{"single character", "猫", []string{"猫"}},
		{"whole three-char phrase", "你好吗", []string{"你好吗"}},
		{"three beats a two-char prefix", "你好吗啊", []string{"你好吗", "啊"}},
		{"rightmost two-char match wins", "我的电脑脑子", []string{"我", "的", "电", "脑", "脑子"}},
		{"left remainder is never phrase-matched", "他在研究人工智能", []string{"他", "在", "研", "究", "人", "工", "智能"}},
		{"right remainder is matched again", "手机我手机", []string{"手", "机", "我", "手机"}},
		{"phrase then trailing chars", "新手机", []string{"新", "手机"}},
		{"three-char phrase anywhere beats two", "中秋节手机", []string{"中秋节", "手机"}},
		{"no phrase falls back to characters", "卧闻海棠花", []string{"卧", "闻", "海", "棠", "花"}},
		{"ascii letters", "cat", []string{"c", "a", "t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Split(tt.token)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

func TestSplit_RightRemainderRecursion(t *testing.T) {
	// After "电脑" is taken from the right, the remainder "脑子" left of it
	// is emitted char by char; "脑子" to the right of a match is still found.
	m := NewMatcher(index.NewPhraseSet([]string{"电脑", "脑子"}, nil))

	got := m.Split("脑子电脑")
	want := []string{"脑", "子", "电脑"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split = %v, want %v", got, want)
	}

	m3 := NewMatcher(index.NewPhraseSet([]string{"脑子"}, []string{"我的电"}))
	got = m3.Split("我的电脑子")
	want = []string{"我的电", "脑子"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split = %v, want %v", got, want)
	}
}

func TestSplit_NilPhraseSet(t *testing.T) {
	got := NewMatcher(nil).Split("你好")
	want := []string{"你", "好"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split = %v, want %v", got, want)
	}
}

func TestSplit_Completeness(t *testing.T) {
	alphabet := []rune("你好吗电脑子手机中秋节ab1")
	phrases := index.NewPhraseSet(
		[]string{"你好", "电脑", "脑子", "手机", "ab"},
		[]string{"你好吗", "中秋节", "b1a"},
	)
	m := NewMatcher(phrases)

	rng := rand.New(rand.NewSource(42))
	inputs := []string{"", "\xff\xfe你好", "你\xff好", string([]rune{0x1F600}) + "手机"}
	for i := 0; i < 500; i++ {
		n := rng.Intn(12)
		var b strings.Builder
		for j := 0; j < n; j++ {
			b.WriteRune(alphabet[rng.Intn(len(alphabet))])
		}
		inputs = append(inputs, b.String())
	}

	for _, in := range inputs {
		parts := m.Split(in)
		if got := strings.Join(parts, ""); got != in {
			t.Fatalf("Split(%q) = %v, concatenation %q does not reproduce the token", in, parts, got)
		}
		for _, p := range parts {
			if p == "" {
				t.Fatalf("Split(%q) produced an empty part: %v", in, parts)
			}
		}
	}
}
