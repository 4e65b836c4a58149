// Package phrase splits tokens around embedded priority phrases.
package phrase

import (
	"unicode/utf8"

	"github.com/gcbaptista/go-emoji-video/index"
)

// Matcher splits a token into single characters and priority phrases.
// It only reads its PhraseSet and is safe for concurrent use.
type Matcher struct {
	phrases *index.PhraseSet
}

// NewMatcher creates a Matcher over phrases. A nil set matches nothing.
func NewMatcher(phrases *index.PhraseSet) *Matcher {
	return &Matcher{phrases: phrases}
}

// Split reconstructs token as a concatenation of single characters and
// priority phrases. Repeatedly, over the unprocessed remainder:
//
//  1. find the best phrase: 3-character phrases before 2-character ones and,
//     within a length, the rightmost occurrence;
//  2. emit the characters left of it one by one, then the phrase, and
//     continue with the remainder right of it;
//  3. with no phrase anywhere in the remainder, emit it character by character.
//
// Concatenating the result always gives back token. Empty input gives an
// empty, non-nil slice.
func (m *Matcher) Split(token string) []string {
	parts := make([]string, 0, utf8.RuneCountInString(token))

	rest := token
	for rest != "" {
		bounds := runeBounds(rest)
		start, end, ok := m.bestMatch(rest, bounds)
		if !ok {
			// No phrase in rest means none in any of its suffixes either.
			return appendChars(parts, rest, bounds)
		}
		parts = appendChars(parts, rest[:start], runeBounds(rest[:start]))
		parts = append(parts, rest[start:end])
		rest = rest[end:]
	}
	return parts
}

// bestMatch returns the byte range of the longest, rightmost priority phrase in s.
// bounds holds the byte offset of every character start plus len(s).
func (m *Matcher) bestMatch(s string, bounds []int) (start, end int, ok bool) {
	chars := len(bounds) - 1
	for length := index.ThreeCharPhrase; length >= index.TwoCharPhrase; length-- {
		for i := chars - length; i >= 0; i-- {
			candidate := s[bounds[i]:bounds[i+length]]
			if m.phrases.Contains(candidate) {
				return bounds[i], bounds[i+length], true
			}
		}
	}
	return 0, 0, false
}

func appendChars(parts []string, s string, bounds []int) []string {
	for i := 0; i+1 < len(bounds); i++ {
		parts = append(parts, s[bounds[i]:bounds[i+1]])
	}
	return parts
}

// runeBounds returns the byte offset of each character in s followed by len(s).
// Invalid bytes count as one character each.
func runeBounds(s string) []int {
	bounds := make([]int, 0, len(s)+1)
	for i := 0; i < len(s); {
		bounds = append(bounds, i)
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return append(bounds, len(s))
}
