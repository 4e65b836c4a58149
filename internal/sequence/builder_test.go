package sequence

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalErrors "github.com/gcbaptista/go-emoji-video/internal/errors"
	"github.com/gcbaptista/go-emoji-video/model"
)

func TestBuild_Cycling(t *testing.T) {
	tests := []struct {
		name       string
		tokens     []string
		candidates [][]string
		charCounts []int
		want       []model.Slot
	}{
		{
			name:       "one candidate per character",
			tokens:     []string{"你好"},
			candidates: [][]string{{"X", "Y"}},
			charCounts: []int{2},
			want:       []model.Slot{model.MatchedSlot("X"), model.MatchedSlot("Y")},
		},
		{
			name:       "single candidate repeats",
			tokens:     []string{"你好"},
			candidates: [][]string{{"X"}},
			charCounts: []int{2},
			want:       []model.Slot{model.MatchedSlot("X"), model.MatchedSlot("X")},
		},
		{
			name:       "extra candidates are unused",
			tokens:     []string{"猫"},
			candidates: [][]string{{"X", "Y", "Z"}},
			charCounts: []int{1},
			want:       []model.Slot{model.MatchedSlot("X")},
		},
		{
			name:       "wraps around",
			tokens:     []string{"中秋节"},
			candidates: [][]string{{"X", "Y"}},
			charCounts: []int{3},
			want:       []model.Slot{model.MatchedSlot("X"), model.MatchedSlot("Y"), model.MatchedSlot("X")},
		},
		{
			name:       "mixed matched and unmatched tokens",
			tokens:     []string{"我", "手机"},
			candidates: [][]string{{}, {"P"}},
			charCounts: []int{1, 2},
			want:       []model.Slot{model.NoMatch, model.MatchedSlot("P"), model.MatchedSlot("P")},
		},
		{
			name:       "zero-width token contributes nothing",
			tokens:     []string{"", "猫"},
			candidates: [][]string{{"X"}, {"C"}},
			charCounts: []int{0, 1},
			want:       []model.Slot{model.MatchedSlot("C")},
		},
	}

	b := NewBuilder()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := b.Build(tt.tokens, tt.candidates, tt.charCounts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, seq.Slots)

			total := 0
			for _, n := range tt.charCounts {
				total += n
			}
			assert.Equal(t, total, seq.Len())
			assert.False(t, seq.AllNoMatch)
			assert.Empty(t, seq.Warning)
		})
	}
}

func TestBuild_AllNoMatch(t *testing.T) {
	seq, err := NewBuilder().Build([]string{"你"}, [][]string{{}}, []int{1})
	require.NoError(t, err, "an all no-match sequence is a warning, not an error")

	assert.Equal(t, []model.Slot{model.NoMatch}, seq.Slots)
	assert.True(t, seq.AllNoMatch)
	assert.Equal(t, AllNoMatchWarning, seq.Warning)
	assert.Zero(t, seq.Matched)
	assert.Equal(t, []string{""}, seq.Identifiers())
}

func TestBuild_Validation(t *testing.T) {
	tests := []struct {
		name       string
		tokens     []string
		candidates [][]string
		charCounts []int
	}{
		{"fewer char counts than tokens", []string{"a", "b"}, [][]string{{"X"}, {"Y"}}, []int{1}},
		{"fewer candidate lists than tokens", []string{"a", "b"}, [][]string{{"X"}}, []int{1, 1}},
		{"zero total characters", []string{"a"}, [][]string{{"X"}}, []int{0}},
		{"no tokens at all", []string{}, [][]string{}, []int{}},
		{"negative char count", []string{"a", "b"}, [][]string{{"X"}, {"Y"}}, []int{2, -1}},
		{"empty selected identifier", []string{"a"}, [][]string{{""}}, []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := NewBuilder().Build(tt.tokens, tt.candidates, tt.charCounts)
			assert.Nil(t, seq)
			require.Error(t, err)
			assert.True(t, errors.Is(err, internalErrors.ErrInvalidInput))

			var validationErr *internalErrors.ValidationError
			assert.True(t, errors.As(err, &validationErr))
		})
	}
}
