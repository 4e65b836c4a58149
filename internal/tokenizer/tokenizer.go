package tokenizer

import (
	"regexp"
	"unicode/utf8"

	"github.com/gcbaptista/go-emoji-video/index"
	"github.com/gcbaptista/go-emoji-video/internal/phrase"
)

// disallowedRegex matches everything but CJK unified ideographs
// (U+4E00..U+9FA5) and ASCII letters and digits.
var disallowedRegex = regexp.MustCompile(`[^\x{4E00}-\x{9FA5}a-zA-Z0-9]+`)

// Clean drops every character Tokenize does not index. Dropped characters
// leave no boundary behind: "你,好" cleans to "你好".
func Clean(text string) string {
	return disallowedRegex.ReplaceAllString(text, "")
}

// Tokenizer turns free text into the tokens that are searched against the
// lexicon. It holds no mutable state and is safe for concurrent use.
type Tokenizer struct {
	segmenter Segmenter
	phrases   *index.PhraseSet
	matcher   *phrase.Matcher
}

// New creates a Tokenizer. phrases may be nil, which disables phrase matching.
func New(segmenter Segmenter, phrases *index.PhraseSet) *Tokenizer {
	return &Tokenizer{
		segmenter: segmenter,
		phrases:   phrases,
		matcher:   phrase.NewMatcher(phrases),
	}
}

// Tokenize cleans text, segments it and re-splits every segment that is not
// itself a priority phrase around the phrases it contains.
// The tokens concatenate back to Clean(text).
func (t *Tokenizer) Tokenize(text string) []string {
	tokens := make([]string, 0) // Empty slice, not nil
	cleaned := Clean(text)
	if cleaned == "" {
		return tokens
	}

	for _, segment := range t.segmenter.Segment(cleaned) {
		if segment == "" {
			continue
		}
		if t.isPriorityPhrase(segment) {
			tokens = append(tokens, segment)
			continue
		}
		tokens = append(tokens, t.matcher.Split(segment)...)
	}
	return tokens
}

func (t *Tokenizer) isPriorityPhrase(segment string) bool {
	n := utf8.RuneCountInString(segment)
	return (n == index.TwoCharPhrase || n == index.ThreeCharPhrase) && t.phrases.Contains(segment)
}
