package index

import (
	"sort"
	"unicode/utf8"
)

// Phrase lengths, in characters, that priority phrase sets hold.
const (
	TwoCharPhrase   = 2
	ThreeCharPhrase = 3
)

// PhraseSet holds the priority phrases: known-good 2-character and
// 3-character tokens. The two sets are disjoint by length. A PhraseSet is
// immutable once created.
type PhraseSet struct {
	Two   map[string]struct{}
	Three map[string]struct{}
}

// NewPhraseSet builds a PhraseSet. Entries whose length does not match their
// set are ignored; use ValidPhrase to find them beforehand.
func NewPhraseSet(two, three []string) *PhraseSet {
	return &PhraseSet{
		Two:   toSet(two, TwoCharPhrase),
		Three: toSet(three, ThreeCharPhrase),
	}
}

func toSet(phrases []string, length int) map[string]struct{} {
	set := make(map[string]struct{}, len(phrases))
	for _, p := range phrases {
		if ValidPhrase(p, length) {
			set[p] = struct{}{}
		}
	}
	return set
}

// ValidPhrase reports whether phrase is valid UTF-8 of exactly length characters.
func ValidPhrase(phrase string, length int) bool {
	return utf8.ValidString(phrase) && utf8.RuneCountInString(phrase) == length
}

// Contains reports whether phrase is a priority phrase of its own length.
func (p *PhraseSet) Contains(phrase string) bool {
	if p == nil {
		return false
	}
	switch utf8.RuneCountInString(phrase) {
	case TwoCharPhrase:
		_, ok := p.Two[phrase]
		return ok
	case ThreeCharPhrase:
		_, ok := p.Three[phrase]
		return ok
	}
	return false
}

// Len returns the sizes of the 2-character and 3-character sets.
func (p *PhraseSet) Len() (two, three int) {
	if p == nil {
		return 0, 0
	}
	return len(p.Two), len(p.Three)
}

// Sorted returns both sets as sorted slices.
func (p *PhraseSet) Sorted() (two, three []string) {
	if p == nil {
		return []string{}, []string{}
	}
	return sortedKeys(p.Two), sortedKeys(p.Three)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
