// Package sequence expands per-token pictogram selections into one slot per
// character, the layout rendering consumes.
package sequence

import (
	"fmt"

	"github.com/gcbaptista/go-emoji-video/internal/errors"
	"github.com/gcbaptista/go-emoji-video/model"
)

// AllNoMatchWarning is set on a Sequence none of whose slots matched.
const AllNoMatchWarning = "no pictogram matched any character, the rendered video would be empty"

// Builder builds positional sequences. It is stateless.
type Builder struct{}

// NewBuilder creates a Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build lays out candidates over character slots. Token i occupies
// charCounts[i] slots filled by cycling through candidates[i]; a token without
// candidates fills its slots with model.NoMatch.
//
// The three inputs must have equal length and charCounts must be non-negative
// with a positive sum, otherwise an errors.ValidationError is returned.
// A sequence without any matched slot is returned with AllNoMatch set.
func (b *Builder) Build(tokens []string, candidates [][]string, charCounts []int) (*model.Sequence, error) {
	if len(tokens) != len(candidates) || len(tokens) != len(charCounts) {
		return nil, errors.NewValidationError("tokens",
			fmt.Sprintf("got %d tokens, %d candidate lists and %d character counts, they must be equal",
				len(tokens), len(candidates), len(charCounts)))
	}

	total := 0
	for i, n := range charCounts {
		if n < 0 {
			return nil, errors.NewValidationError("char_counts",
				fmt.Sprintf("character count %d for token '%s' is negative", n, tokens[i]))
		}
		total += n
	}
	if total == 0 {
		return nil, errors.NewValidationError("char_counts", "total character count must be positive")
	}

	seq := &model.Sequence{Slots: make([]model.Slot, 0, total)}
	for i, n := range charCounts {
		cands := candidates[i]
		for _, id := range cands {
			if id == "" {
				return nil, errors.NewValidationError("selections",
					fmt.Sprintf("empty identifier selected for token '%s'", tokens[i]))
			}
		}
		if len(cands) == 0 {
			for p := 0; p < n; p++ {
				seq.Slots = append(seq.Slots, model.NoMatch)
			}
			continue
		}
		for p := 0; p < n; p++ {
			seq.Slots = append(seq.Slots, model.MatchedSlot(cands[p%len(cands)]))
		}
		seq.Matched += n
	}

	if seq.Matched == 0 {
		seq.AllNoMatch = true
		seq.Warning = AllNoMatchWarning
	}
	return seq, nil
}
